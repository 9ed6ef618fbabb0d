package errors

import "errors"

var (
	ErrNotFound  = errors.New("pet not found")
	ErrInvalidID = errors.New("invalid pet ID format")
)
