package notify

import (
	"context"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/smarttutor/backend/internal/model"
	"github.com/smarttutor/backend/internal/service/ports"
)

// EmailNotifier delivers booking notifications by email through sendgrid.
type EmailNotifier struct {
	client *sendgrid.Client
	from   *mail.Email
	users  ports.UserStore
	logger *zap.Logger
}

var _ ports.Notifier = (*EmailNotifier)(nil)

func NewEmailNotifier(apiKey, fromName, fromAddr string, users ports.UserStore, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddr),
		users:  users,
		logger: logger,
	}
}

func (n *EmailNotifier) BookingCreated(ctx context.Context, b *model.Booking) {
	n.send(ctx, b, bookingCreatedMessage(b))
}

func (n *EmailNotifier) BookingStatusChanged(ctx context.Context, b *model.Booking) {
	n.send(ctx, b, statusChangedMessage(b))
}

func (n *EmailNotifier) BookingReminder(ctx context.Context, b *model.Booking) {
	n.send(ctx, b, reminderMessage(b))
}

func (n *EmailNotifier) send(ctx context.Context, b *model.Booking, msg message) {
	for _, u := range resolveRecipients(ctx, n.users, n.logger, b) {
		email := mail.NewSingleEmail(n.from, msg.subject, mail.NewEmail(u.Name, u.Email), msg.body, "")
		resp, err := n.client.SendWithContext(ctx, email)
		if err != nil {
			n.logger.Error("send notification email",
				zap.String("booking_id", b.ID),
				zap.String("to", u.Email),
				zap.Error(err),
			)
			continue
		}
		if resp.StatusCode >= 400 {
			n.logger.Error("notification email rejected",
				zap.String("booking_id", b.ID),
				zap.String("to", u.Email),
				zap.Int("status", resp.StatusCode),
			)
		}
	}
}
