package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrDateUnavailable    = errors.New("date unavailable")
	ErrForbidden          = errors.New("forbidden")
	ErrGateway            = errors.New("payment gateway failure")
)
