package payment

import "errors"

var (
	ErrNotFound            = errors.New("booking not found")
	ErrBookingCancelled    = errors.New("booking is cancelled")
	ErrInvalidPaymentState = errors.New("payment status does not allow this change")
)
