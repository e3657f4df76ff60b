package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("not allowed to perform this action")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrDuplicateApplication = errors.New("already applied to this job")
	ErrIneligibleApplicant  = errors.New("not eligible to apply")
	ErrStoreUnavailable     = errors.New("data store unavailable")
	ErrConcurrentUpdate     = errors.New("job was modified concurrently")
	ErrValidation           = errors.New("invalid input")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserExists           = errors.New("user already exists")
)

var (
	ErrJobNotFound         = fmt.Errorf("job %w", ErrNotFound)
	ErrApplicationNotFound = fmt.Errorf("application %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)

	// ErrSubmissionInProgress is returned while another request for the same
	// (job, professional) pair holds the apply guard. The outcome of that
	// request is not known yet, so callers retry instead of treating it as a
	// duplicate.
	ErrSubmissionInProgress = fmt.Errorf("application submission in progress: %w", ErrConcurrentUpdate)
)

// IneligibleError carries the first failing eligibility condition.
type IneligibleError struct {
	Reason IneligibilityReason
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrIneligibleApplicant, e.Reason.Message())
}

func (e *IneligibleError) Unwrap() error { return ErrIneligibleApplicant }

// ValidationError wraps ErrValidation with a field-level message.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsRetryable reports whether the caller may retry the operation with backoff.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrConcurrentUpdate)
}
