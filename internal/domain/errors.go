package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced by services. The HTTP layer owns the mapping to
// status codes; everything else wraps these sentinels with fmt.Errorf("%w").
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
