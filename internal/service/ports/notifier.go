package ports

import (
	"context"

	"github.com/smarttutor/backend/internal/model"
)

// Notifier dispatches fire-and-forget messages to booking participants.
// Implementations log delivery failures and never return them.
type Notifier interface {
	BookingCreated(ctx context.Context, b *model.Booking)
	BookingStatusChanged(ctx context.Context, b *model.Booking)
	BookingReminder(ctx context.Context, b *model.Booking)
}
