package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smarttutor/backend/internal/model"
	"github.com/smarttutor/backend/internal/repository/base"
)

const bookingColumns = `id, service_id, student_id, tutor_id, date, start_time, end_time,
	status, payment_status, amount, notes, meeting_link,
	feedback_rating, feedback_review, feedback_at, reminder_sent, created_at, updated_at`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// Create inserts the booking inside a transaction. The slot is re-checked
// under the transaction and the partial unique index on
// (tutor_id, date, start_time) WHERE status <> 'cancelled' rejects whichever
// concurrent insert loses the race.
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) error {
	return r.Do(ctx, func(ctx context.Context) error {
		tx, err := r.Pool().Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		var occupied string
		err = tx.QueryRow(ctx, `
			SELECT id FROM bookings
			WHERE tutor_id = $1 AND date = $2 AND start_time = $3 AND status <> 'cancelled'
			LIMIT 1
		`, b.TutorID, b.Date, b.StartTime).Scan(&occupied)
		if err == nil {
			return model.ErrSlotTaken
		}
		if !base.IsNotFound(err) {
			return fmt.Errorf("check slot: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO bookings (id, service_id, student_id, tutor_id, date, start_time, end_time,
				status, payment_status, amount, notes, meeting_link)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING created_at, updated_at
		`,
			b.ID, b.ServiceID, b.StudentID, b.TutorID, b.Date, b.StartTime, b.EndTime,
			b.Status, b.PaymentStatus, b.Amount, b.Notes, b.MeetingLink,
		).Scan(&b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			if base.IsUniqueViolation(err) {
				return model.ErrSlotTaken
			}
			return fmt.Errorf("create booking: %w", err)
		}

		return tx.Commit(ctx)
	})
}

// GetByID returns the booking or nil when absent.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking *model.Booking
	err := r.Do(ctx, func(ctx context.Context) error {
		row := r.Pool().QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
		b, err := scanBooking(row)
		if err != nil {
			if base.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("get booking by id: %w", err)
		}
		booking = b
		return nil
	})
	return booking, err
}

// FindBySlot returns the non-cancelled booking holding the slot, or nil.
func (r *BookingRepository) FindBySlot(ctx context.Context, key model.SlotKey) (*model.Booking, error) {
	var booking *model.Booking
	err := r.Do(ctx, func(ctx context.Context) error {
		row := r.Pool().QueryRow(ctx, `
			SELECT `+bookingColumns+` FROM bookings
			WHERE tutor_id = $1 AND date = $2 AND start_time = $3 AND status <> 'cancelled'
			LIMIT 1
		`, key.TutorID, key.Date, key.Start)
		b, err := scanBooking(row)
		if err != nil {
			if base.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("find booking by slot: %w", err)
		}
		booking = b
		return nil
	})
	return booking, err
}

// UpdateStatus moves the booking from -> to as a compare-and-set. When the
// row is gone or no longer in `from`, the follow-up read distinguishes
// not-found from a transition lost to a concurrent writer.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus, completePayment bool) (*model.Booking, error) {
	var booking *model.Booking
	err := r.Do(ctx, func(ctx context.Context) error {
		row := r.Pool().QueryRow(ctx, `
			UPDATE bookings
			SET status = $3,
			    payment_status = CASE WHEN $4 THEN 'completed' ELSE payment_status END,
			    updated_at = now()
			WHERE id = $1 AND status = $2
			RETURNING `+bookingColumns+`
		`, id, from, to, completePayment)

		b, err := scanBooking(row)
		if err == nil {
			booking = b
			return nil
		}
		if !base.IsNotFound(err) {
			return fmt.Errorf("update booking status: %w", err)
		}

		var current model.BookingStatus
		err = r.Pool().QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&current)
		if err != nil {
			if base.IsNotFound(err) {
				return model.ErrBookingNotFound
			}
			return fmt.Errorf("recheck booking status: %w", err)
		}
		return fmt.Errorf("%w: booking moved to %s", model.ErrInvalidTransition, current)
	})
	return booking, err
}

// SetFeedback attaches feedback exactly once to a completed booking.
func (r *BookingRepository) SetFeedback(ctx context.Context, id string, fb model.Feedback) (*model.Booking, error) {
	var booking *model.Booking
	err := r.Do(ctx, func(ctx context.Context) error {
		row := r.Pool().QueryRow(ctx, `
			UPDATE bookings
			SET feedback_rating = $2, feedback_review = $3, feedback_at = $4, updated_at = now()
			WHERE id = $1 AND status = 'completed' AND feedback_rating IS NULL
			RETURNING `+bookingColumns+`
		`, id, fb.Rating, fb.Review, fb.SubmittedAt)

		b, err := scanBooking(row)
		if err == nil {
			booking = b
			return nil
		}
		if !base.IsNotFound(err) {
			return fmt.Errorf("set feedback: %w", err)
		}

		var status model.BookingStatus
		var hasFeedback bool
		err = r.Pool().QueryRow(ctx, `
			SELECT status, feedback_rating IS NOT NULL FROM bookings WHERE id = $1
		`, id).Scan(&status, &hasFeedback)
		if err != nil {
			if base.IsNotFound(err) {
				return model.ErrBookingNotFound
			}
			return fmt.Errorf("recheck booking feedback: %w", err)
		}
		if hasFeedback {
			return model.ErrFeedbackExists
		}
		return model.ErrFeedbackNotAllowed
	})
	return booking, err
}

// ListAll returns every booking, newest first.
func (r *BookingRepository) ListAll(ctx context.Context) ([]*model.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
}

// ListByUser returns bookings where the user is either side, newest first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return r.list(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE student_id = $1 OR tutor_id = $1
		ORDER BY date DESC, start_time DESC
	`, userID)
}

// ListDueReminders returns confirmed, un-reminded bookings starting within
// [now, now+window].
func (r *BookingRepository) ListDueReminders(ctx context.Context, now time.Time, window time.Duration) ([]*model.Booking, error) {
	return r.list(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE status = 'confirmed'
		  AND NOT reminder_sent
		  AND date + start_time::time >= $1
		  AND date + start_time::time <= $2
		ORDER BY date, start_time
	`, now, now.Add(window))
}

// MarkReminderSent flags the booking so the sweep does not notify twice.
func (r *BookingRepository) MarkReminderSent(ctx context.Context, id string) error {
	return r.Do(ctx, func(ctx context.Context) error {
		affected, err := r.Pool().Exec(ctx, `UPDATE bookings SET reminder_sent = TRUE WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("mark reminder sent: %w", err)
		}
		if affected.RowsAffected() == 0 {
			return model.ErrBookingNotFound
		}
		return nil
	})
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*model.Booking, error) {
	var bookings []*model.Booking
	err := r.Do(ctx, func(ctx context.Context) error {
		rows, err := r.Pool().Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}
		defer rows.Close()

		bookings = bookings[:0]
		for rows.Next() {
			b, err := scanBooking(rows)
			if err != nil {
				return fmt.Errorf("scan booking: %w", err)
			}
			bookings = append(bookings, b)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var (
		b      model.Booking
		date   time.Time
		rating *int
		review *string
		fbAt   *time.Time
	)

	err := row.Scan(
		&b.ID, &b.ServiceID, &b.StudentID, &b.TutorID, &date, &b.StartTime, &b.EndTime,
		&b.Status, &b.PaymentStatus, &b.Amount, &b.Notes, &b.MeetingLink,
		&rating, &review, &fbAt, &b.ReminderSent, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Date = date.Format(time.DateOnly)
	if rating != nil {
		fb := model.Feedback{Rating: *rating, SubmittedAt: *fbAt}
		if review != nil {
			fb.Review = *review
		}
		b.Feedback = &fb
	}
	return &b, nil
}
