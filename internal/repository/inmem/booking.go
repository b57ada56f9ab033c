// Package inmem provides map-backed implementations of the store ports with
// the same error contracts as the postgres repositories. They back the unit
// tests; the booking store holds its mutex across check+insert so the
// one-live-booking-per-slot guarantee survives concurrent callers.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/smarttutor/backend/internal/model"
)

type BookingStore struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking
}

func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[string]*model.Booking)}
}

func (s *BookingStore) Create(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := b.SlotKey()
	for _, existing := range s.bookings {
		if existing.Status.Active() && existing.SlotKey() == key {
			return model.ErrSlotTaken
		}
	}

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	s.bookings[b.ID] = clone(b)
	return nil
}

func (s *BookingStore) GetByID(_ context.Context, id string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	return clone(b), nil
}

func (s *BookingStore) FindBySlot(_ context.Context, key model.SlotKey) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.Status.Active() && b.SlotKey() == key {
			return clone(b), nil
		}
	}
	return nil, nil
}

func (s *BookingStore) UpdateStatus(_ context.Context, id string, from, to model.BookingStatus, completePayment bool) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, model.ErrBookingNotFound
	}
	if b.Status != from {
		return nil, fmt.Errorf("%w: booking moved to %s", model.ErrInvalidTransition, b.Status)
	}

	b.Status = to
	if completePayment {
		b.PaymentStatus = model.PaymentStatusCompleted
	}
	b.UpdatedAt = time.Now().UTC()
	return clone(b), nil
}

func (s *BookingStore) SetFeedback(_ context.Context, id string, fb model.Feedback) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, model.ErrBookingNotFound
	}
	if b.Feedback != nil {
		return nil, model.ErrFeedbackExists
	}
	if b.Status != model.BookingStatusCompleted {
		return nil, model.ErrFeedbackNotAllowed
	}

	b.Feedback = &fb
	b.UpdatedAt = time.Now().UTC()
	return clone(b), nil
}

func (s *BookingStore) ListAll(_ context.Context) ([]*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(*model.Booking) bool { return true }), nil
}

func (s *BookingStore) ListByUser(_ context.Context, userID string) ([]*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(b *model.Booking) bool {
		return b.StudentID == userID || b.TutorID == userID
	}), nil
}

func (s *BookingStore) ListDueReminders(_ context.Context, now time.Time, window time.Duration) ([]*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(b *model.Booking) bool {
		if b.Status != model.BookingStatusConfirmed || b.ReminderSent {
			return false
		}
		start, err := b.SlotKey().StartsAt(time.UTC)
		if err != nil {
			return false
		}
		return !start.Before(now) && !start.After(now.Add(window))
	}), nil
}

func (s *BookingStore) MarkReminderSent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return model.ErrBookingNotFound
	}
	b.ReminderSent = true
	return nil
}

func (s *BookingStore) collect(keep func(*model.Booking) bool) []*model.Booking {
	var out []*model.Booking
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, clone(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func clone(b *model.Booking) *model.Booking {
	cp := *b
	if b.Feedback != nil {
		fb := *b.Feedback
		cp.Feedback = &fb
	}
	return &cp
}
