package user

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
	ErrForbidden  = errors.New("forbidden")
	ErrEmailTaken = errors.New("email already registered")
	ErrLastAdmin  = errors.New("cannot remove the last admin")
)
