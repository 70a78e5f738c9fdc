package services

import "errors"

// Sentinel errors classify service failures for the handler layer. Anything
// not matching one of these is treated as an external-service failure (500).
var (
	// ErrValidation covers malformed input and business-rule rejections.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound covers references to absent rows.
	ErrNotFound = errors.New("not found")
	// ErrForbidden covers authenticated callers acting on rows they do not own.
	ErrForbidden = errors.New("permission denied")
)
