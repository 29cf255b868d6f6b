package shortlink

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned for empty, oversized or malformed target URLs.
	ErrInvalidURL = errors.New("invalid target url")
	// ErrNotFound is returned when no link matches.
	ErrNotFound = errors.New("short link not found")
	// ErrConstraintViolation is the parent of the storage conflict errors.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrRetriesExhausted is returned when no free code was drawn in time.
	ErrRetriesExhausted = errors.New("short code generation retries exhausted")
)

var (
	ErrCodeTaken   = fmt.Errorf("%w: short code already taken", ErrConstraintViolation)
	ErrTargetTaken = fmt.Errorf("%w: target url already registered", ErrConstraintViolation)
)
