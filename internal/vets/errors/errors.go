package errors

import "errors"

var (
	ErrNotFound = errors.New("vet not found")

	ErrInvalidID = errors.New("invalid vet ID format")

	ErrDuplicateLicense = errors.New("license number already registered")
)
