package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/smarttutor/backend/internal/model"
	"github.com/smarttutor/backend/internal/repository/inmem"
	"github.com/smarttutor/backend/internal/service"
)

const testSecret = "test-secret"

type recordingNotifier struct{}

func (recordingNotifier) BookingCreated(context.Context, *model.Booking)       {}
func (recordingNotifier) BookingStatusChanged(context.Context, *model.Booking) {}
func (recordingNotifier) BookingReminder(context.Context, *model.Booking)      {}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	users := inmem.NewUserStore(
		&model.User{ID: "student-1", Name: "Ada", Email: "ada@example.com", Role: model.RoleStudent},
		&model.User{ID: "tutor-1", Name: "Alan", Email: "alan@example.com", Role: model.RoleTutor},
		&model.User{ID: "admin-1", Name: "Root", Email: "root@example.com", Role: model.RoleAdmin},
	)
	services := inmem.NewServiceStore(
		&model.Service{ID: "svc-1", Title: "1-on-1 Mentoring", Category: "1-on-1 Mentoring", Price: 5000, Duration: 60, IsActive: true},
	)
	bookings := inmem.NewBookingStore()

	logger := zaptest.NewLogger(t)
	notifier := &recordingNotifier{}
	bookingSvc := service.NewBookingService(bookings, users, services, notifier, logger)
	userSvc := service.NewUserService(users, logger)
	catalogSvc := service.NewCatalogService(services, logger)

	return NewServer(testSecret, logger, bookingSvc, userSvc, catalogSvc)
}

func token(t *testing.T, userID string, role model.Role) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, s *Server, method, path, tok, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if tok != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

const createBody = `{"service_id":"svc-1","tutor_id":"tutor-1","date":"2025-03-01","start_time":"14:00"}`

func TestCreateBookingEndpoint(t *testing.T) {
	s := newTestServer(t)
	studentTok := token(t, "student-1", model.RoleStudent)

	rec := do(t, s, http.MethodPost, "/api/bookings", studentTok, createBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var b model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, model.BookingStatusPending, b.Status)
	assert.Equal(t, "15:00", b.EndTime)
	assert.Equal(t, 5000, b.Amount)
	assert.Equal(t, "student-1", b.StudentID)
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/bookings", "", createBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/bookings", "not-a-token", createBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBookingValidation(t *testing.T) {
	s := newTestServer(t)
	studentTok := token(t, "student-1", model.RoleStudent)

	rec := do(t, s, http.MethodPost, "/api/bookings", studentTok, `{"service_id":"svc-1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.KindValidation, resp.Kind)
	assert.ElementsMatch(t, []string{"tutor_id", "date", "start_time"}, resp.Fields)
}

func TestCreateBookingConflict(t *testing.T) {
	s := newTestServer(t)
	studentTok := token(t, "student-1", model.RoleStudent)

	rec := do(t, s, http.MethodPost, "/api/bookings", studentTok, createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/bookings", studentTok, createBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBookingStatusAndFeedbackEndpoints(t *testing.T) {
	s := newTestServer(t)
	studentTok := token(t, "student-1", model.RoleStudent)
	tutorTok := token(t, "tutor-1", model.RoleTutor)

	rec := do(t, s, http.MethodPost, "/api/bookings", studentTok, createBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var b model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))

	statusPath := fmt.Sprintf("/api/bookings/%s/status", b.ID)
	feedbackPath := fmt.Sprintf("/api/bookings/%s/feedback", b.ID)

	// feedback before completion is an invalid state
	rec = do(t, s, http.MethodPost, feedbackPath, studentTok, `{"rating":5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPut, statusPath, tutorTok, `{"status":"confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// pending -> completed would skip confirmation; already confirmed here
	rec = do(t, s, http.MethodPut, statusPath, tutorTok, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, model.PaymentStatusCompleted, b.PaymentStatus)

	rec = do(t, s, http.MethodPost, feedbackPath, studentTok, `{"rating":5,"review":"great"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// resubmission rejected
	rec = do(t, s, http.MethodPost, feedbackPath, studentTok, `{"rating":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// tutor aggregate is visible on the public listing
	rec = do(t, s, http.MethodGet, "/api/tutors", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tutors []*model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tutors))
	require.Len(t, tutors, 1)
	assert.Equal(t, 5.0, tutors[0].AverageRating)
}

func TestListBookingsAdminOnly(t *testing.T) {
	s := newTestServer(t)
	studentTok := token(t, "student-1", model.RoleStudent)
	adminTok := token(t, "admin-1", model.RoleAdmin)

	rec := do(t, s, http.MethodPost, "/api/bookings", studentTok, createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/bookings", studentTok, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/bookings", adminTok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []*model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 1)

	rec = do(t, s, http.MethodGet, "/api/bookings/my", studentTok, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/services", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var services []*model.Service
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &services))
	assert.Len(t, services, 1)

	rec = do(t, s, http.MethodGet, "/api/services/svc-1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/services/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
