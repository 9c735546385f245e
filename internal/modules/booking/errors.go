package booking

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotAvailable = errors.New("room not available for the selected dates")
	ErrNotFound     = errors.New("booking not found")
	ErrRoomNotFound = errors.New("room not found")
	ErrForbidden    = errors.New("forbidden")
	ErrCapacity     = errors.New("guest count exceeds room capacity")
)
