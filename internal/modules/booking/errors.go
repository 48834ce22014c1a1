package booking

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("booking not found")
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrForbidden        = errors.New("forbidden")
	ErrNotAvailable     = errors.New("dates not available")
	ErrOverbooking      = errors.New("overbooking constraint violation")
	ErrHotelUnavailable = errors.New("hotel not open for booking")

	ErrTerminalStatus          = errors.New("booking already finalized")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrCancellationWindow      = errors.New("cancellable only 48h or more before check-in")
)
