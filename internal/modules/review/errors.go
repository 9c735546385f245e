package review

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrReviewNotAllowed = errors.New("review requires a finished stay")
	ErrConflict         = errors.New("booking already reviewed")
)
