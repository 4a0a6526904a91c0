package expense

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every error caused by bad add input.
	ErrInvalidInput = errors.New("invalid input")

	ErrEmptyDescription   = fmt.Errorf("%w: empty description", ErrInvalidInput)
	ErrInvalidDescription = fmt.Errorf("%w: description is not valid UTF-8", ErrInvalidInput)
	ErrEmptyAmount        = fmt.Errorf("%w: empty amount", ErrInvalidInput)
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidInput)
	ErrUnknownCategory    = fmt.Errorf("%w: unknown category", ErrInvalidInput)

	ErrNotFound          = errors.New("expense not found")
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)
