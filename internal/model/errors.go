package model

import (
	"errors"
	"strings"
)

// ErrorKind classifies a domain error so transports can map it to a
// status code without string matching.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindConflict          ErrorKind = "conflict"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindInvalidState      ErrorKind = "invalid_state"
	KindAuthorization     ErrorKind = "authorization"
	KindPersistence       ErrorKind = "persistence"
)

// Error is a kind-tagged domain error. Sentinels below are compared with
// errors.Is; wrapping them with fmt.Errorf("%w: detail", ...) keeps both the
// identity and the kind.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []string // populated for validation errors
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return e.Message + ": " + strings.Join(e.Fields, ", ")
	}
	return e.Message
}

var (
	ErrInvalidSlot        = &Error{Kind: KindValidation, Message: "invalid slot"}
	ErrInvalidDuration    = &Error{Kind: KindValidation, Message: "invalid duration"}
	ErrServiceNotFound    = &Error{Kind: KindNotFound, Message: "service not found"}
	ErrTutorNotFound      = &Error{Kind: KindNotFound, Message: "tutor not found"}
	ErrBookingNotFound    = &Error{Kind: KindNotFound, Message: "booking not found"}
	ErrSlotTaken          = &Error{Kind: KindConflict, Message: "slot already booked"}
	ErrInvalidTransition  = &Error{Kind: KindInvalidTransition, Message: "invalid status transition"}
	ErrFeedbackExists     = &Error{Kind: KindInvalidState, Message: "feedback already submitted"}
	ErrFeedbackNotAllowed = &Error{Kind: KindInvalidState, Message: "feedback is only allowed for completed sessions"}
	ErrNotPermitted       = &Error{Kind: KindAuthorization, Message: "not permitted"}
	ErrStoreUnavailable   = &Error{Kind: KindPersistence, Message: "store unavailable"}
)

// NewValidationError reports the missing or malformed input fields.
func NewValidationError(fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid request", Fields: fields}
}

// KindOf extracts the kind from err, or "" if err carries no domain error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
