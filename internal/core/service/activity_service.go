package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
)

type activityService struct {
	jobs     ports.JobRepository
	activity ports.ActivityRepository
	log      zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(jobs ports.JobRepository, activity ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{jobs: jobs, activity: activity, log: log}
}

// Record persists a single job event to the activity trail.
func (s *activityService) Record(ctx context.Context, event domain.JobEvent) error {
	if event.JobID == "" {
		return domain.ValidationError("event without job id")
	}
	if err := s.activity.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	s.log.Debug().
		Str("job_id", event.JobID).
		Str("type", string(event.Type)).
		Str("application_id", event.ApplicationID).
		Msg("activity recorded")
	return nil
}

// ListActivity returns a job's events to its client or assigned professional.
func (s *activityService) ListActivity(ctx context.Context, actor domain.Principal, jobID string) ([]*domain.JobEvent, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(actor.UserID) && (job.ProfessionalID == "" || job.ProfessionalID != actor.UserID) {
		return nil, fmt.Errorf("list activity: %w", domain.ErrUnauthorized)
	}
	return s.activity.ListByJob(ctx, job.ID)
}
