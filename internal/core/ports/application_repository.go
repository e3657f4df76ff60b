package ports

import (
	"context"
	"time"

	"github.com/revit/marketplace/internal/core/domain"
)

// ApplicationFilter carries the query parameters for listing applications.
// Results are always ordered by created_at descending.
type ApplicationFilter struct {
	JobID          string
	ProfessionalID string
	Status         domain.ApplicationStatus
}

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	// Create inserts a and sets its ID. A second application for the same
	// (job, professional) pair returns domain.ErrDuplicateApplication.
	Create(ctx context.Context, a *domain.Application) error
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]*domain.Application, error)
	// UpdateStatus moves the application from one status to another. When the
	// stored status is not from it returns domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, at time.Time) error
	// RejectPending rejects every pending application of jobID except exceptID
	// and returns the ids it changed.
	RejectPending(ctx context.Context, jobID, exceptID string, at time.Time) ([]string, error)
}
