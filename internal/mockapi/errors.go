package mockapi

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("booking already exists")
	ErrInvalidDates    = errors.New("check-out date must be after check-in date")
	ErrUnknownProperty = errors.New("property does not exist")
	ErrInvalidStatus   = errors.New("status must be confirmed, pending or cancelled")
)
