package ports

import (
	"context"

	"github.com/revit/marketplace/internal/core/domain"
)

// Transactor runs fn as a single atomic unit against the store. Repository
// calls made with the ctx passed to fn take part in the transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ApplyGuard serialises concurrent submissions for the same (job,
// professional) pair. Acquire fails with domain.ErrSubmissionInProgress while
// another submission holds the guard.
type ApplyGuard interface {
	Acquire(ctx context.Context, jobID, professionalID string) (release func(), err error)
}

// EventPublisher hands job events to the activity pipeline. Publish must not
// block the caller on persistence.
type EventPublisher interface {
	Publish(event domain.JobEvent)
}
