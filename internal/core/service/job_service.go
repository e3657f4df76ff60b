package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
)

const (
	minTitleLen       = 5
	minDescriptionLen = 20
	minLocationLen    = 3
)

type JobService struct {
	jobs   ports.JobRepository
	users  ports.UserRepository
	events ports.EventPublisher
	logger zerolog.Logger
	now    func() time.Time
}

func NewJobService(jobs ports.JobRepository, users ports.UserRepository, events ports.EventPublisher, logger zerolog.Logger) *JobService {
	if events == nil {
		events = nopPublisher{}
	}
	return &JobService{
		jobs:   jobs,
		users:  users,
		events: events,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateJob posts a new job on behalf of a client. The job always starts open
// with no professional assigned.
func (s *JobService) CreateJob(ctx context.Context, actor domain.Principal, input ports.CreateJobInput) (*domain.Job, error) {
	if !actor.IsClient() {
		return nil, fmt.Errorf("create job: %w", domain.ErrUnauthorized)
	}
	if err := validateJobInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	job := &domain.Job{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Budget:      input.Budget,
		Category:    domain.NormalizeCategory(input.Category),
		Location:    strings.TrimSpace(input.Location),
		Status:      domain.JobOpen,
		ClientID:    actor.UserID,
		Version:     1,
		StatusHistory: []domain.JobStatusEntry{
			{Status: domain.JobOpen, Timestamp: now, ActorID: actor.UserID},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		s.logger.Error().Err(err).Str("client_id", actor.UserID).Msg("failed to create job")
		return nil, err
	}

	s.logger.Info().Str("job_id", job.ID).Str("client_id", actor.UserID).Str("category", job.Category).Msg("job created")
	s.events.Publish(domain.JobEvent{
		JobID:      job.ID,
		Type:       domain.EventJobCreated,
		ActorID:    actor.UserID,
		To:         string(domain.JobOpen),
		OccurredAt: now,
	})
	return job, nil
}

func validateJobInput(in ports.CreateJobInput) error {
	switch {
	case utf8.RuneCountInString(strings.TrimSpace(in.Title)) < minTitleLen:
		return domain.ValidationError("title must be at least %d characters", minTitleLen)
	case utf8.RuneCountInString(strings.TrimSpace(in.Description)) < minDescriptionLen:
		return domain.ValidationError("description must be at least %d characters", minDescriptionLen)
	case in.Budget <= 0:
		return domain.ValidationError("budget must be greater than 0")
	case !domain.IsKnownCategory(in.Category):
		return domain.ValidationError("category must be one of: %s", strings.Join(domain.Categories, ", "))
	case utf8.RuneCountInString(strings.TrimSpace(in.Location)) < minLocationLen:
		return domain.ValidationError("location must be at least %d characters", minLocationLen)
	}
	return nil
}

func (s *JobService) GetJob(ctx context.Context, actor domain.Principal, jobID string) (*domain.Job, error) {
	if !actor.Authenticated() {
		return nil, fmt.Errorf("get job: %w", domain.ErrUnauthorized)
	}
	return s.jobs.FindByID(ctx, jobID)
}

func (s *JobService) ListOpenJobs(ctx context.Context, actor domain.Principal, category string) ([]*domain.Job, error) {
	if !actor.Authenticated() {
		return nil, fmt.Errorf("list jobs: %w", domain.ErrUnauthorized)
	}
	return s.jobs.List(ctx, ports.JobFilter{
		Status:   domain.JobOpen,
		Category: domain.NormalizeCategory(category),
	})
}

func (s *JobService) ListClientJobs(ctx context.Context, actor domain.Principal) ([]*domain.Job, error) {
	if !actor.IsClient() {
		return nil, fmt.Errorf("list client jobs: %w", domain.ErrUnauthorized)
	}
	return s.jobs.List(ctx, ports.JobFilter{ClientID: actor.UserID})
}

// ListMatchingJobs returns open jobs whose category equals the professional's
// declared profession, compared case-insensitively.
func (s *JobService) ListMatchingJobs(ctx context.Context, actor domain.Principal) ([]*domain.Job, error) {
	if !actor.IsProfessional() {
		return nil, fmt.Errorf("list matching jobs: %w", domain.ErrUnauthorized)
	}
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	profession := domain.NormalizeCategory(user.Profession)
	if profession == "" {
		return []*domain.Job{}, nil
	}
	return s.jobs.List(ctx, ports.JobFilter{Status: domain.JobOpen, Category: profession})
}

// SetStatus moves a job along the lifecycle. Only the owning client may call
// it, and only transitions in the lifecycle table are accepted. Assignment
// goes through AssignProfessional or an accepted application instead.
func (s *JobService) SetStatus(ctx context.Context, actor domain.Principal, jobID string, status domain.JobStatus) (*domain.Job, error) {
	if !status.Valid() {
		return nil, domain.ValidationError("unknown job status %q", status)
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(actor.UserID) {
		return nil, fmt.Errorf("set status: %w", domain.ErrUnauthorized)
	}
	if status == domain.JobAssigned {
		return nil, fmt.Errorf("set status: %w: assignment requires a professional", domain.ErrInvalidTransition)
	}
	if !job.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("set status: %w (from %s to %s)", domain.ErrInvalidTransition, job.Status, status)
	}

	now := s.now()
	updated, err := s.jobs.Apply(ctx, job.ID, domain.JobChange{
		ExpectedVersion: job.Version,
		ExpectedStatus:  job.Status,
		Status:          status,
		ActorID:         actor.UserID,
		At:              now,
	})
	if err != nil {
		return nil, classifyLostRace(ctx, s.jobs, job.ID, job.Status, err)
	}

	s.logger.Info().Str("job_id", job.ID).Str("from", string(job.Status)).Str("to", string(status)).Msg("job status changed")
	s.events.Publish(domain.JobEvent{
		JobID:      job.ID,
		Type:       domain.EventJobStatusChanged,
		ActorID:    actor.UserID,
		From:       string(job.Status),
		To:         string(status),
		OccurredAt: now,
	})
	return updated, nil
}

// AssignProfessional sets the professional and moves an open job to assigned
// in a single update.
func (s *JobService) AssignProfessional(ctx context.Context, actor domain.Principal, jobID, professionalID string) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(actor.UserID) {
		return nil, fmt.Errorf("assign professional: %w", domain.ErrUnauthorized)
	}
	if job.Status != domain.JobOpen {
		return nil, fmt.Errorf("assign professional: %w (job is %s)", domain.ErrInvalidTransition, job.Status)
	}

	pro, err := s.users.FindByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if !pro.IsProfessional() {
		return nil, domain.ValidationError("user %s is not a professional", professionalID)
	}

	now := s.now()
	updated, err := s.jobs.Apply(ctx, job.ID, domain.JobChange{
		ExpectedVersion: job.Version,
		ExpectedStatus:  domain.JobOpen,
		Status:          domain.JobAssigned,
		ProfessionalID:  pro.ID,
		ActorID:         actor.UserID,
		At:              now,
	})
	if err != nil {
		return nil, classifyLostRace(ctx, s.jobs, job.ID, domain.JobOpen, err)
	}

	s.logger.Info().Str("job_id", job.ID).Str("professional_id", pro.ID).Msg("professional assigned")
	s.events.Publish(domain.JobEvent{
		JobID:      job.ID,
		Type:       domain.EventJobAssigned,
		ActorID:    actor.UserID,
		From:       string(domain.JobOpen),
		To:         string(domain.JobAssigned),
		OccurredAt: now,
	})
	return updated, nil
}

// classifyLostRace reclassifies a failed compare-and-set. If the job has since
// left the status the caller saw, the request is an invalid transition rather
// than a retryable conflict.
func classifyLostRace(ctx context.Context, jobs ports.JobRepository, jobID string, seen domain.JobStatus, err error) error {
	if !errors.Is(err, domain.ErrConcurrentUpdate) {
		return err
	}
	current, findErr := jobs.FindByID(ctx, jobID)
	if findErr != nil {
		return err
	}
	if current.Status != seen {
		return fmt.Errorf("%w: job is now %s", domain.ErrInvalidTransition, current.Status)
	}
	return err
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.JobEvent) {}
