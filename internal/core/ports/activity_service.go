package ports

import (
	"context"

	"github.com/revit/marketplace/internal/core/domain"
)

// ActivityService records and lists job events.
type ActivityService interface {
	// Record persists a single event. Called by the dispatcher workers.
	Record(ctx context.Context, event domain.JobEvent) error
	ListActivity(ctx context.Context, actor domain.Principal, jobID string) ([]*domain.JobEvent, error)
}
