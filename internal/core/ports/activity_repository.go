package ports

import (
	"context"

	"github.com/revit/marketplace/internal/core/domain"
)

// ActivityRepository persists the per-job audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.JobEvent) error
	// ListByJob returns the job's events, newest first.
	ListByJob(ctx context.Context, jobID string) ([]*domain.JobEvent, error)
}
