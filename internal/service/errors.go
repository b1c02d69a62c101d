package service

import "errors"

var (
	ErrForbidden = errors.New("forbidden: insufficient permissions")

	// ErrOutstandingAppointment is returned when a patient who already holds
	// a future appointment tries to book another one.
	ErrOutstandingAppointment = errors.New("patient already has an outstanding appointment")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("account is temporarily locked due to multiple failed login attempts")
	ErrAccountInactive    = errors.New("account is inactive")
)
