package ports

import (
	"context"
	"time"

	"github.com/smarttutor/backend/internal/model"
)

// BookingStore is the reservation persistence contract. Implementations must
// guarantee that at most one non-cancelled booking exists per slot key, even
// under concurrent Create calls, and must surface model.ErrSlotTaken when the
// guarantee rejects an insert.
type BookingStore interface {
	// Create persists a new booking. Fails with model.ErrSlotTaken when the
	// slot already holds a non-cancelled booking.
	Create(ctx context.Context, b *model.Booking) error

	// GetByID returns the booking or (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*model.Booking, error)

	// FindBySlot returns the non-cancelled booking occupying the slot,
	// or (nil, nil) when the slot is free.
	FindBySlot(ctx context.Context, key model.SlotKey) (*model.Booking, error)

	// UpdateStatus moves the booking from -> to in a single compare-and-set.
	// completePayment additionally sets payment_status to completed in the
	// same statement. Fails with model.ErrBookingNotFound or, when the row
	// moved away from `from` concurrently, model.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus, completePayment bool) (*model.Booking, error)

	// SetFeedback attaches feedback once; only completed, feedback-less
	// bookings accept it.
	SetFeedback(ctx context.Context, id string, fb model.Feedback) (*model.Booking, error)

	ListAll(ctx context.Context) ([]*model.Booking, error)

	// ListByUser returns bookings where the user is the student or the tutor,
	// newest first.
	ListByUser(ctx context.Context, userID string) ([]*model.Booking, error)

	// ListDueReminders returns confirmed, un-reminded bookings starting
	// within [now, now+window].
	ListDueReminders(ctx context.Context, now time.Time, window time.Duration) ([]*model.Booking, error)

	MarkReminderSent(ctx context.Context, id string) error
}
