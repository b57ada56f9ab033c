// Package notify implements the fire-and-forget notification collaborator.
// Delivery failures are logged and never reach the booking workflow.
package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/smarttutor/backend/internal/model"
	"github.com/smarttutor/backend/internal/service/ports"
)

type message struct {
	subject string
	body    string
}

func bookingCreatedMessage(b *model.Booking) message {
	return message{
		subject: "New session booked",
		body: fmt.Sprintf("A session was booked for %s at %s-%s (booking %s).",
			b.Date, b.StartTime, b.EndTime, b.ID),
	}
}

func statusChangedMessage(b *model.Booking) message {
	return message{
		subject: fmt.Sprintf("Booking %s", b.Status),
		body: fmt.Sprintf("Your session on %s at %s is now %s.",
			b.Date, b.StartTime, b.Status),
	}
}

func reminderMessage(b *model.Booking) message {
	return message{
		subject: "Upcoming session reminder",
		body: fmt.Sprintf("Reminder: your session on %s starts at %s.",
			b.Date, b.StartTime),
	}
}

// resolveRecipients loads both participants, skipping ones that cannot be
// found. A missing user is a log line, not an error.
func resolveRecipients(ctx context.Context, users ports.UserStore, logger *zap.Logger, b *model.Booking) []*model.User {
	var recipients []*model.User
	for _, id := range []string{b.StudentID, b.TutorID} {
		u, err := users.GetByID(ctx, id)
		if err != nil || u == nil {
			logger.Warn("notification recipient unavailable",
				zap.String("user_id", id),
				zap.String("booking_id", b.ID),
				zap.Error(err),
			)
			continue
		}
		recipients = append(recipients, u)
	}
	return recipients
}
