package hotel

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("hotel not found")
	ErrForbidden   = errors.New("forbidden")
	ErrHasBookings = errors.New("hotel has active bookings")
)
