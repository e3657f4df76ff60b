package ports

import (
	"context"

	"github.com/revit/marketplace/internal/core/domain"
)

// JobFilter carries the query parameters for listing jobs. Empty fields are
// not filtered on. Results are always ordered by created_at descending.
type JobFilter struct {
	ClientID       string
	ProfessionalID string
	Category       string
	Status         domain.JobStatus
}

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	// Create inserts j and sets its ID.
	Create(ctx context.Context, j *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
	// Apply performs a compare-and-set on the job's version (and status when
	// change.ExpectedStatus is set), bumps the version, refreshes updated_at and
	// appends a history entry. A lost race returns domain.ErrConcurrentUpdate.
	Apply(ctx context.Context, id string, change domain.JobChange) (*domain.Job, error)
	// ReserveApplicationSlot increments application_count while the job is
	// still open. It returns domain.ErrInvalidTransition when it is not.
	ReserveApplicationSlot(ctx context.Context, id string) error
}
