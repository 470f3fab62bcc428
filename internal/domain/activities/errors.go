package activities

import "errors"

var (
	// ErrNotFound is returned for an unknown activity name.
	ErrNotFound = errors.New("activity not found")
	// ErrAlreadyRegistered signals a duplicate signup.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrCapacityExceeded signals a full roster.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrNotRegistered signals an unregister for a non-member.
	ErrNotRegistered = errors.New("not registered")
	// ErrInvalidInput signals failed input validation.
	ErrInvalidInput = errors.New("invalid input")
)
