package ports

import (
	"context"

	"github.com/revit/marketplace/internal/core/domain"
)

// CreateJobInput carries all data needed to post a new job.
type CreateJobInput struct {
	Title       string
	Description string
	Category    string
	Budget      float64
	Location    string
}

// JobService defines use-case operations for the job lifecycle.
type JobService interface {
	CreateJob(ctx context.Context, actor domain.Principal, input CreateJobInput) (*domain.Job, error)
	GetJob(ctx context.Context, actor domain.Principal, jobID string) (*domain.Job, error)
	// ListOpenJobs returns open jobs, optionally restricted to one category.
	ListOpenJobs(ctx context.Context, actor domain.Principal, category string) ([]*domain.Job, error)
	// ListClientJobs returns the jobs posted by the acting client.
	ListClientJobs(ctx context.Context, actor domain.Principal) ([]*domain.Job, error)
	// ListMatchingJobs returns open jobs whose category equals the acting
	// professional's profession.
	ListMatchingJobs(ctx context.Context, actor domain.Principal) ([]*domain.Job, error)
	SetStatus(ctx context.Context, actor domain.Principal, jobID string, status domain.JobStatus) (*domain.Job, error)
	AssignProfessional(ctx context.Context, actor domain.Principal, jobID, professionalID string) (*domain.Job, error)
}
