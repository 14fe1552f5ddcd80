package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrForbidden marks access to a resource owned by another coach.
	ErrForbidden = errors.New("forbidden")
)

// QuotaExceededError is returned as a plain value when a plan limit would be
// breached. The message is user-facing and already localized.
type QuotaExceededError struct {
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("Límite de semanas (%d) alcanzado.", e.Limit)
}

func IsQuotaExceeded(err error) bool {
	var qe *QuotaExceededError
	return errors.As(err, &qe)
}
