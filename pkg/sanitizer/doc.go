// Package sanitizer provides input normalization for clinic data.
//
// All normalization functions are idempotent. Invalid input is handled
// gracefully, typically by returning empty strings or empty slices rather
// than errors, so callers can rely on validation to reject what remains.
//
// Normalization includes:
//   - Phone numbers: convert to E.164 format (+[country][number])
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Cities and specializations: lowercase, strip special characters
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
