package api

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/smarttutor/backend/internal/model"
)

type errorResponse struct {
	Kind    model.ErrorKind `json:"kind,omitempty"`
	Message string          `json:"message"`
	Fields  []string        `json:"fields,omitempty"`
}

func (s *Server) respondError(c echo.Context, err error) error {
	var domainErr *model.Error
	if errors.As(err, &domainErr) {
		return c.JSON(statusFor(domainErr.Kind), errorResponse{
			Kind:    domainErr.Kind,
			Message: err.Error(),
			Fields:  domainErr.Fields,
		})
	}

	s.logger.Error("unhandled error",
		zap.String("path", c.Request().URL.Path),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse{Message: "server error"})
}

func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindConflict:
		return http.StatusConflict
	case model.KindInvalidTransition, model.KindInvalidState:
		return http.StatusUnprocessableEntity
	case model.KindAuthorization:
		return http.StatusForbidden
	case model.KindPersistence:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return model.NewValidationError(fields...)
	}
	return model.NewValidationError()
}
