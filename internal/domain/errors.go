package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidName     = errors.New("invalid tag name")
	ErrConflict        = errors.New("conflicting concurrent write")
	ErrUnauthorized    = errors.New("caller not resolved to a profile")
	ErrNotOwner        = errors.New("caller does not own the project")
	ErrInvalidDecision = errors.New("invalid swipe decision")
)
