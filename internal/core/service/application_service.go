package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
)

type ApplicationService struct {
	jobs   ports.JobRepository
	apps   ports.ApplicationRepository
	users  ports.UserRepository
	tx     ports.Transactor
	guard  ports.ApplyGuard
	events ports.EventPublisher
	logger zerolog.Logger
	now    func() time.Time
}

func NewApplicationService(
	jobs ports.JobRepository,
	apps ports.ApplicationRepository,
	users ports.UserRepository,
	tx ports.Transactor,
	guard ports.ApplyGuard,
	events ports.EventPublisher,
	logger zerolog.Logger,
) *ApplicationService {
	if events == nil {
		events = nopPublisher{}
	}
	return &ApplicationService{
		jobs:   jobs,
		apps:   apps,
		users:  users,
		tx:     tx,
		guard:  guard,
		events: events,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CheckEligibility evaluates the apply predicate without side effects.
func (s *ApplicationService) CheckEligibility(ctx context.Context, actor domain.Principal, jobID string) (*ports.Eligibility, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	reason, _, err := s.evaluate(ctx, actor, job)
	if err != nil {
		return nil, err
	}
	return &ports.Eligibility{
		Eligible: reason == domain.ReasonNone,
		Reason:   reason,
		Message:  reason.Message(),
	}, nil
}

// evaluate loads what the eligibility ladder needs and runs it.
func (s *ApplicationService) evaluate(ctx context.Context, actor domain.Principal, job *domain.Job) (domain.IneligibilityReason, *domain.User, error) {
	if !actor.Authenticated() {
		return domain.ReasonNotLoggedIn, nil, nil
	}
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ReasonNotLoggedIn, nil, nil
		}
		return domain.ReasonNone, nil, err
	}

	var existing []*domain.Application
	if user.IsProfessional() {
		existing, err = s.apps.List(ctx, ports.ApplicationFilter{JobID: job.ID, ProfessionalID: user.ID})
		if err != nil {
			return domain.ReasonNone, nil, err
		}
	}
	return domain.CanApply(user, job, existing), user, nil
}

// Submit creates a pending application for the acting professional. The
// eligibility ladder is re-evaluated here, and the insert runs under the apply
// guard and a transaction that only succeeds while the job is still open.
func (s *ApplicationService) Submit(ctx context.Context, actor domain.Principal, jobID, message string) (*domain.Application, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ValidationError("message is required")
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	reason, user, err := s.evaluate(ctx, actor, job)
	if err != nil {
		return nil, err
	}
	if err := domain.EligibilityError(reason); err != nil {
		s.logger.Debug().Str("job_id", job.ID).Str("user_id", actor.UserID).Str("reason", string(reason)).Msg("application refused")
		return nil, err
	}

	release, err := s.guard.Acquire(ctx, job.ID, user.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	now := s.now()
	app := &domain.Application{
		JobID:          job.ID,
		ProfessionalID: user.ID,
		Applicant:      domain.SnapshotOf(user),
		Message:        message,
		Status:         domain.ApplicationPending,
		CreatedAt:      now,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.jobs.ReserveApplicationSlot(ctx, job.ID); err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				return domain.EligibilityError(domain.ReasonJobClosed)
			}
			return err
		}
		return s.apps.Create(ctx, app)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("application_id", app.ID).Str("job_id", job.ID).Str("professional_id", user.ID).Msg("application submitted")
	s.events.Publish(domain.JobEvent{
		JobID:         job.ID,
		Type:          domain.EventApplicationSubmitted,
		ActorID:       user.ID,
		ApplicationID: app.ID,
		To:            string(domain.ApplicationPending),
		OccurredAt:    now,
	})
	return app, nil
}

func (s *ApplicationService) GetApplication(ctx context.Context, actor domain.Principal, applicationID string) (*domain.Application, error) {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if actor.IsProfessional() && app.ProfessionalID == actor.UserID {
		return app, nil
	}
	job, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(actor.UserID) {
		return nil, fmt.Errorf("get application: %w", domain.ErrUnauthorized)
	}
	return app, nil
}

func (s *ApplicationService) ListForJob(ctx context.Context, actor domain.Principal, jobID string) ([]*domain.Application, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(actor.UserID) {
		return nil, fmt.Errorf("list applications: %w", domain.ErrUnauthorized)
	}
	return s.apps.List(ctx, ports.ApplicationFilter{JobID: job.ID})
}

func (s *ApplicationService) ListMine(ctx context.Context, actor domain.Principal) ([]*domain.Application, error) {
	if !actor.IsProfessional() {
		return nil, fmt.Errorf("list my applications: %w", domain.ErrUnauthorized)
	}
	return s.apps.List(ctx, ports.ApplicationFilter{ProfessionalID: actor.UserID})
}

// Decide accepts or rejects a pending application on an open job.
//
// Accepting is a single transactional unit: the application becomes accepted,
// the job moves to assigned with the applicant as its professional, and every
// other pending application for the job is rejected.
func (s *ApplicationService) Decide(ctx context.Context, actor domain.Principal, applicationID string, decision domain.Decision) (*ports.DecisionResult, error) {
	if !decision.Valid() {
		return nil, domain.ValidationError("decision must be accept or reject")
	}

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(actor.UserID) {
		return nil, fmt.Errorf("decide application: %w", domain.ErrUnauthorized)
	}
	if job.Status != domain.JobOpen {
		return nil, fmt.Errorf("decide application: %w (job is %s)", domain.ErrInvalidTransition, job.Status)
	}
	if app.Status != domain.ApplicationPending {
		return nil, fmt.Errorf("decide application: %w (application is %s)", domain.ErrInvalidTransition, app.Status)
	}

	now := s.now()
	if decision == domain.DecisionReject {
		return s.reject(ctx, actor, app, job, now)
	}

	var (
		assigned    *domain.Job
		rejectedIDs []string
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		assigned, err = s.jobs.Apply(ctx, job.ID, domain.JobChange{
			ExpectedVersion: job.Version,
			ExpectedStatus:  domain.JobOpen,
			Status:          domain.JobAssigned,
			ProfessionalID:  app.ProfessionalID,
			ActorID:         actor.UserID,
			Notes:           "accepted application " + app.ID,
			At:              now,
		})
		if err != nil {
			return err
		}
		if err := s.apps.UpdateStatus(ctx, app.ID, domain.ApplicationPending, domain.ApplicationAccepted, now); err != nil {
			return err
		}
		rejectedIDs, err = s.apps.RejectPending(ctx, job.ID, app.ID, now)
		return err
	})
	if err != nil {
		return nil, classifyLostRace(ctx, s.jobs, job.ID, domain.JobOpen, err)
	}

	app.Status = domain.ApplicationAccepted
	app.UpdatedAt = now

	s.logger.Info().
		Str("application_id", app.ID).
		Str("job_id", job.ID).
		Str("professional_id", app.ProfessionalID).
		Int("auto_rejected", len(rejectedIDs)).
		Msg("application accepted")

	s.events.Publish(domain.JobEvent{
		JobID: job.ID, Type: domain.EventApplicationAccepted, ActorID: actor.UserID, ApplicationID: app.ID,
		From: string(domain.ApplicationPending), To: string(domain.ApplicationAccepted), OccurredAt: now,
	})
	s.events.Publish(domain.JobEvent{
		JobID: job.ID, Type: domain.EventJobAssigned, ActorID: actor.UserID, ApplicationID: app.ID,
		From: string(domain.JobOpen), To: string(domain.JobAssigned), OccurredAt: now,
	})
	for _, id := range rejectedIDs {
		s.events.Publish(domain.JobEvent{
			JobID: job.ID, Type: domain.EventApplicationRejected, ActorID: actor.UserID, ApplicationID: id,
			From: string(domain.ApplicationPending), To: string(domain.ApplicationRejected), OccurredAt: now,
		})
	}

	return &ports.DecisionResult{Application: app, Job: assigned, RejectedIDs: rejectedIDs}, nil
}

func (s *ApplicationService) reject(ctx context.Context, actor domain.Principal, app *domain.Application, job *domain.Job, now time.Time) (*ports.DecisionResult, error) {
	if err := s.apps.UpdateStatus(ctx, app.ID, domain.ApplicationPending, domain.ApplicationRejected, now); err != nil {
		return nil, err
	}
	app.Status = domain.ApplicationRejected
	app.UpdatedAt = now

	s.logger.Info().Str("application_id", app.ID).Str("job_id", job.ID).Msg("application rejected")
	s.events.Publish(domain.JobEvent{
		JobID: job.ID, Type: domain.EventApplicationRejected, ActorID: actor.UserID, ApplicationID: app.ID,
		From: string(domain.ApplicationPending), To: string(domain.ApplicationRejected), OccurredAt: now,
	})
	return &ports.DecisionResult{Application: app, Job: job}, nil
}
