package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusUpcoming  BookingStatus = "upcoming" // entry-state alias of pending
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Feedback is attached by the student after a completed session, at most once.
type Feedback struct {
	Rating      int       `json:"rating"`
	Review      string    `json:"review"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Booking struct {
	ID            string        `json:"id"`
	ServiceID     string        `json:"service_id"`
	StudentID     string        `json:"student_id"`
	TutorID       string        `json:"tutor_id"`
	Date          string        `json:"date"`       // YYYY-MM-DD
	StartTime     string        `json:"start_time"` // HH:MM
	EndTime       string        `json:"end_time"`   // HH:MM, start + service duration
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Amount        int           `json:"amount"` // cents, snapshot of the service price at creation
	Notes         string        `json:"notes,omitempty"`
	MeetingLink   string        `json:"meeting_link,omitempty"`
	Feedback      *Feedback     `json:"feedback,omitempty"`
	ReminderSent  bool          `json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Populated summaries, not persisted on the booking row.
	Service *Service `json:"service,omitempty"`
	Student *User    `json:"student,omitempty"`
	Tutor   *User    `json:"tutor,omitempty"`
}

// SlotKey returns the canonical slot identity of the booking.
func (b *Booking) SlotKey() SlotKey {
	return SlotKey{TutorID: b.TutorID, Date: b.Date, Start: b.StartTime}
}

// Active reports whether the booking still occupies its slot.
func (s BookingStatus) Active() bool {
	return s != BookingStatusCancelled
}

// Terminal reports whether no further transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

func (s BookingStatus) canonical() BookingStatus {
	if s == BookingStatusUpcoming {
		return BookingStatusPending
	}
	return s
}

var transitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransition reports whether the lifecycle allows from -> to.
// upcoming behaves exactly like pending on both sides.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from.canonical()] {
		if next == to.canonical() {
			return true
		}
	}
	return false
}

// ValidBookingStatus reports whether s is one of the known lifecycle states.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusUpcoming, BookingStatusConfirmed,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}
