package domain

import (
	"errors"

	"salon/internal/calendar"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrUnknownService    = calendar.ErrUnknownService
	ErrSlotUnavailable   = errors.New("requested slot is not available")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("appointment not found")
	ErrStoreUnavailable  = errors.New("appointment store unavailable")
)

// ValidationError names the request field that was missing or malformed.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindUnknownService    ErrorKind = "unknown_service"
	KindSlotUnavailable   ErrorKind = "slot_unavailable"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindNotFound          ErrorKind = "not_found"
	KindStoreUnavailable  ErrorKind = "store_unavailable"
	KindInternal          ErrorKind = "internal"
)

func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrUnknownService):
		return KindUnknownService
	case errors.Is(err, ErrSlotUnavailable):
		return KindSlotUnavailable
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	default:
		return KindInternal
	}
}
