package ports

import (
	"context"

	"github.com/revit/marketplace/internal/core/domain"
)

// Eligibility is the outcome of the apply predicate for one user and job.
type Eligibility struct {
	Eligible bool
	Reason   domain.IneligibilityReason
	Message  string
}

// DecisionResult describes everything an accept or reject changed.
type DecisionResult struct {
	Application *domain.Application
	Job         *domain.Job
	// RejectedIDs lists the sibling applications auto-rejected by an accept.
	RejectedIDs []string
}

// ApplicationService defines use-case operations for applying and reviewing.
type ApplicationService interface {
	CheckEligibility(ctx context.Context, actor domain.Principal, jobID string) (*Eligibility, error)
	Submit(ctx context.Context, actor domain.Principal, jobID, message string) (*domain.Application, error)
	// GetApplication returns one application to its applicant or to the owner
	// of the job it was submitted to.
	GetApplication(ctx context.Context, actor domain.Principal, applicationID string) (*domain.Application, error)
	// ListForJob returns a job's applications to its owner, newest first.
	ListForJob(ctx context.Context, actor domain.Principal, jobID string) ([]*domain.Application, error)
	// ListMine returns the acting professional's applications, newest first.
	ListMine(ctx context.Context, actor domain.Principal) ([]*domain.Application, error)
	Decide(ctx context.Context, actor domain.Principal, applicationID string, decision domain.Decision) (*DecisionResult, error)
}
