package errors

import "errors"

var (
	ErrNotFound       = errors.New("payment not found")
	ErrInvalidID      = errors.New("invalid payment ID format")
	ErrDuplicateEvent = errors.New("provider event already processed")
)
