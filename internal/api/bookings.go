package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smarttutor/backend/internal/model"
	"github.com/smarttutor/backend/internal/service"
)

type createBookingRequest struct {
	ServiceID   string `json:"service_id" validate:"required"`
	TutorID     string `json:"tutor_id" validate:"required"`
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	Notes       string `json:"notes"`
	MeetingLink string `json:"meeting_link"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type feedbackRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review"`
}

func (s *Server) createBooking(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return s.respondError(c, model.NewValidationError("body"))
	}
	if err := c.Validate(&req); err != nil {
		return s.respondError(c, err)
	}

	booking, err := s.bookings.Create(c.Request().Context(), actorFrom(c), service.CreateBookingInput{
		ServiceID:   req.ServiceID,
		TutorID:     req.TutorID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Notes:       req.Notes,
		MeetingLink: req.MeetingLink,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (s *Server) listBookings(c echo.Context) error {
	bookings, err := s.bookings.ListAll(c.Request().Context(), actorFrom(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (s *Server) listMyBookings(c echo.Context) error {
	bookings, err := s.bookings.ListForActor(c.Request().Context(), actorFrom(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (s *Server) getBooking(c echo.Context) error {
	booking, err := s.bookings.Get(c.Request().Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (s *Server) updateBookingStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return s.respondError(c, model.NewValidationError("body"))
	}
	if err := c.Validate(&req); err != nil {
		return s.respondError(c, err)
	}

	booking, err := s.bookings.UpdateStatus(c.Request().Context(), actorFrom(c), c.Param("id"), model.BookingStatus(req.Status))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (s *Server) submitFeedback(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return s.respondError(c, model.NewValidationError("body"))
	}
	if err := c.Validate(&req); err != nil {
		return s.respondError(c, err)
	}

	booking, err := s.bookings.SubmitFeedback(c.Request().Context(), actorFrom(c), c.Param("id"), req.Rating, req.Review)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}
