package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/smarttutor/backend/internal/model"
	"github.com/smarttutor/backend/internal/service/ports"
)

// ConsoleNotifier writes notifications to the log. Used in development when
// no sendgrid key is configured.
type ConsoleNotifier struct {
	users  ports.UserStore
	logger *zap.Logger
}

var _ ports.Notifier = (*ConsoleNotifier)(nil)

func NewConsoleNotifier(users ports.UserStore, logger *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{users: users, logger: logger}
}

func (n *ConsoleNotifier) BookingCreated(ctx context.Context, b *model.Booking) {
	n.log(ctx, b, bookingCreatedMessage(b))
}

func (n *ConsoleNotifier) BookingStatusChanged(ctx context.Context, b *model.Booking) {
	n.log(ctx, b, statusChangedMessage(b))
}

func (n *ConsoleNotifier) BookingReminder(ctx context.Context, b *model.Booking) {
	n.log(ctx, b, reminderMessage(b))
}

func (n *ConsoleNotifier) log(ctx context.Context, b *model.Booking, msg message) {
	for _, u := range resolveRecipients(ctx, n.users, n.logger, b) {
		n.logger.Info("notification",
			zap.String("to", u.Email),
			zap.String("subject", msg.subject),
			zap.String("body", msg.body),
		)
	}
}
