package booking

import "errors"

var (
	ErrInvalidDates     = errors.New("check-out date must be after check-in date")
	ErrSubmitInProgress = errors.New("booking submission already in progress")
	ErrCreateFailed     = errors.New("booking creation failed")
)
