package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarttutor/backend/internal/model"
)

func seedConfirmed(t *testing.T, f *fixture, id string, start time.Time) {
	t.Helper()
	b := &model.Booking{
		ID:            id,
		ServiceID:     "svc-1",
		StudentID:     "student-1",
		TutorID:       "tutor-1",
		Date:          start.UTC().Format(time.DateOnly),
		StartTime:     start.UTC().Format("15:04"),
		EndTime:       "23:59",
		Status:        model.BookingStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		Amount:        5000,
	}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	_, err := f.bookings.UpdateStatus(context.Background(), id, model.BookingStatusPending, model.BookingStatusConfirmed, false)
	require.NoError(t, err)
}

func TestSendDueReminders(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()

	seedConfirmed(t, f, "soon", now.Add(2*time.Hour))
	seedConfirmed(t, f, "far", now.Add(72*time.Hour))

	require.NoError(t, f.svc.SendDueReminders(context.Background(), 24*time.Hour))

	assert.Equal(t, []string{"soon"}, f.notifier.reminded)

	// a second sweep does not notify again
	require.NoError(t, f.svc.SendDueReminders(context.Background(), 24*time.Hour))
	assert.Equal(t, []string{"soon"}, f.notifier.reminded)
}
