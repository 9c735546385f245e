package lifecycle

import (
	"errors"
	"fmt"

	"hotelbooking/internal/domain"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthorized      = errors.New("actor not allowed to perform transition")
	ErrMissingReason     = errors.New("cancellation reason is required")
	ErrTerminalState     = errors.New("booking is in a terminal state")

	ErrInvalidStayDates = errors.New("check-out must be at least one night after check-in")
	ErrInvalidAmount    = errors.New("invalid monetary amount")
	ErrInconsistent     = errors.New("booking violates lifecycle invariants")
)

// TransitionError carries the attempted pair alongside one of the sentinel errors above.
type TransitionError struct {
	From domain.BookingStatus
	To   domain.BookingStatus
	Err  error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s -> %s: %v", e.From, e.To, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

func transitionError(from, to domain.BookingStatus, err error) error {
	return &TransitionError{From: from, To: to, Err: err}
}
