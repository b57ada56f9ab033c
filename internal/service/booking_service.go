package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smarttutor/backend/internal/model"
	"github.com/smarttutor/backend/internal/service/ports"
)

// BookingService runs the booking workflow and the status lifecycle.
type BookingService struct {
	bookings ports.BookingStore
	users    ports.UserStore
	services ports.ServiceStore
	notifier ports.Notifier
	logger   *zap.Logger
}

func NewBookingService(
	bookings ports.BookingStore,
	users ports.UserStore,
	services ports.ServiceStore,
	notifier ports.Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		users:    users,
		services: services,
		notifier: notifier,
		logger:   logger,
	}
}

type CreateBookingInput struct {
	ServiceID   string
	TutorID     string
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	Notes       string
	MeetingLink string
}

// Create books a slot for the acting student. New bookings always start at
// pending; the amount is snapshotted from the service price and never
// recomputed afterwards.
func (s *BookingService) Create(ctx context.Context, actor model.Actor, in CreateBookingInput) (*model.Booking, error) {
	var missing []string
	if in.ServiceID == "" {
		missing = append(missing, "service_id")
	}
	if in.TutorID == "" {
		missing = append(missing, "tutor_id")
	}
	if in.Date == "" {
		missing = append(missing, "date")
	}
	if in.StartTime == "" {
		missing = append(missing, "start_time")
	}
	if len(missing) > 0 {
		return nil, model.NewValidationError(missing...)
	}

	key, err := model.NewSlotKey(in.TutorID, in.Date, in.StartTime)
	if err != nil {
		return nil, err
	}

	svc, err := s.services.GetByID(ctx, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("resolve service: %w", err)
	}
	if svc == nil {
		return nil, model.ErrServiceNotFound
	}

	endTime, err := key.EndTime(svc.Duration)
	if err != nil {
		return nil, err
	}

	tutor, err := s.users.GetByID(ctx, key.TutorID)
	if err != nil {
		return nil, fmt.Errorf("resolve tutor: %w", err)
	}
	if tutor == nil || tutor.Role != model.RoleTutor {
		return nil, model.ErrTutorNotFound
	}

	// Fast-path availability check. The store's uniqueness guarantee is the
	// backstop when two requests pass this read for the same slot.
	occupied, err := s.bookings.FindBySlot(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if occupied != nil {
		return nil, model.ErrSlotTaken
	}

	booking := &model.Booking{
		ID:            uuid.NewString(),
		ServiceID:     svc.ID,
		StudentID:     actor.ID,
		TutorID:       tutor.ID,
		Date:          key.Date,
		StartTime:     key.Start,
		EndTime:       endTime,
		Status:        model.BookingStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		Amount:        svc.Price,
		Notes:         in.Notes,
		MeetingLink:   in.MeetingLink,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	booking.Service = svc
	booking.Tutor = tutor

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("student_id", actor.ID),
		zap.String("tutor_id", tutor.ID),
		zap.String("date", key.Date),
		zap.String("start_time", key.Start),
		zap.Int("amount", booking.Amount),
	)

	go s.notifier.BookingCreated(context.WithoutCancel(ctx), booking)

	return booking, nil
}

// UpdateStatus applies one lifecycle transition on behalf of the actor.
// Moving to completed also completes the payment in the same store operation.
func (s *BookingService) UpdateStatus(ctx context.Context, actor model.Actor, bookingID string, to model.BookingStatus) (*model.Booking, error) {
	if !model.ValidBookingStatus(to) {
		return nil, model.NewValidationError("status")
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, model.ErrBookingNotFound
	}

	if !actorMayManage(actor, booking) {
		return nil, fmt.Errorf("%w: only the booking's student, tutor or an admin may change its status", model.ErrNotPermitted)
	}

	if !model.CanTransition(booking.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, booking.Status, to)
	}

	completePayment := to == model.BookingStatusCompleted
	updated, err := s.bookings.UpdateStatus(ctx, booking.ID, booking.Status, to, completePayment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking status updated",
		zap.String("booking_id", booking.ID),
		zap.String("actor_id", actor.ID),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(to)),
	)

	go s.notifier.BookingStatusChanged(context.WithoutCancel(ctx), updated)

	return updated, nil
}

// SubmitFeedback attaches the student's one-time feedback to a completed
// booking and folds the rating into the tutor's aggregate.
func (s *BookingService) SubmitFeedback(ctx context.Context, actor model.Actor, bookingID string, rating int, review string) (*model.Booking, error) {
	if rating < 1 || rating > 5 {
		return nil, model.NewValidationError("rating")
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, model.ErrBookingNotFound
	}

	if actor.ID != booking.StudentID {
		return nil, fmt.Errorf("%w: only the student may leave feedback", model.ErrNotPermitted)
	}
	if booking.Feedback != nil {
		return nil, model.ErrFeedbackExists
	}
	if booking.Status != model.BookingStatusCompleted {
		return nil, model.ErrFeedbackNotAllowed
	}

	updated, err := s.bookings.SetFeedback(ctx, booking.ID, model.Feedback{
		Rating:      rating,
		Review:      review,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	avg, err := s.users.ApplyRating(ctx, booking.TutorID, rating)
	if err != nil {
		return nil, fmt.Errorf("apply rating: %w", err)
	}

	s.logger.Info("feedback submitted",
		zap.String("booking_id", booking.ID),
		zap.String("tutor_id", booking.TutorID),
		zap.Int("rating", rating),
		zap.Float64("tutor_average", avg),
	)

	return updated, nil
}

// Get returns one booking to a participant or an admin.
func (s *BookingService) Get(ctx context.Context, actor model.Actor, bookingID string) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, model.ErrBookingNotFound
	}
	if !actorMayManage(actor, booking) {
		return nil, fmt.Errorf("%w: not a participant of this booking", model.ErrNotPermitted)
	}
	return booking, nil
}

// ListAll returns every booking; admin only.
func (s *BookingService) ListAll(ctx context.Context, actor model.Actor) ([]*model.Booking, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", model.ErrNotPermitted)
	}
	return s.bookings.ListAll(ctx)
}

// ListForActor returns the actor's bookings, on either side of the session.
func (s *BookingService) ListForActor(ctx context.Context, actor model.Actor) ([]*model.Booking, error) {
	return s.bookings.ListByUser(ctx, actor.ID)
}

// SendDueReminders notifies participants of confirmed bookings starting
// within the window and marks them reminded. Called by the background sweep.
func (s *BookingService) SendDueReminders(ctx context.Context, window time.Duration) error {
	due, err := s.bookings.ListDueReminders(ctx, time.Now().UTC(), window)
	if err != nil {
		return fmt.Errorf("list due reminders: %w", err)
	}

	for _, b := range due {
		s.notifier.BookingReminder(ctx, b)
		if err := s.bookings.MarkReminderSent(ctx, b.ID); err != nil {
			s.logger.Error("mark reminder sent",
				zap.String("booking_id", b.ID),
				zap.Error(err),
			)
		}
	}

	if len(due) > 0 {
		s.logger.Info("booking reminders sent", zap.Int("count", len(due)))
	}
	return nil
}

func actorMayManage(actor model.Actor, b *model.Booking) bool {
	return actor.IsAdmin() || actor.ID == b.StudentID || actor.ID == b.TutorID
}
