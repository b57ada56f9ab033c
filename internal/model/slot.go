package model

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// SlotKey is the canonical identity of a requested session slot. Two requests
// for the same tutor, calendar date and start time produce equal keys.
type SlotKey struct {
	TutorID string
	Date    string // YYYY-MM-DD
	Start   string // HH:MM, 24-hour
}

// NewSlotKey parses and canonicalizes the slot triple.
func NewSlotKey(tutorID, date, start string) (SlotKey, error) {
	if tutorID == "" {
		return SlotKey{}, fmt.Errorf("%w: tutor is required", ErrInvalidSlot)
	}

	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return SlotKey{}, fmt.Errorf("%w: bad date %q", ErrInvalidSlot, date)
	}

	t, err := time.Parse(clockLayout, start)
	if err != nil {
		return SlotKey{}, fmt.Errorf("%w: bad start time %q", ErrInvalidSlot, start)
	}

	return SlotKey{
		TutorID: tutorID,
		Date:    d.Format(time.DateOnly),
		Start:   t.Format(clockLayout),
	}, nil
}

// EndTime returns the wall-clock end of a session of the given length.
// Sessions must fit inside the slot's calendar date: a duration that would
// run to or past midnight is rejected.
func (k SlotKey) EndTime(durationMinutes int) (string, error) {
	if durationMinutes <= 0 {
		return "", fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidDuration, durationMinutes)
	}

	t, err := time.Parse(clockLayout, k.Start)
	if err != nil {
		return "", fmt.Errorf("%w: bad start time %q", ErrInvalidSlot, k.Start)
	}

	total := t.Hour()*60 + t.Minute() + durationMinutes
	if total >= 24*60 {
		return "", fmt.Errorf("%w: session starting at %s with %d minutes would cross midnight", ErrInvalidDuration, k.Start, durationMinutes)
	}

	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}

// StartsAt combines the date and start time into an instant in loc.
func (k SlotKey) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly+" "+clockLayout, k.Date+" "+k.Start, loc)
}
