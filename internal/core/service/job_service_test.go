package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
)

func validJobInput(category string) ports.CreateJobInput {
	return ports.CreateJobInput{
		Title:       "Fix kitchen sink",
		Description: "The kitchen sink drains slowly and leaks under the cabinet.",
		Category:    category,
		Budget:      150,
		Location:    "Austin, TX",
	}
}

func TestJobService_CreateJob_StartsOpen(t *testing.T) {
	env := newTestEnv(t)
	owner := env.client(t, "carla")

	job, err := env.jobs.CreateJob(context.Background(), owner, validJobInput("Plumber"))
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.ID == "" {
		t.Fatalf("expected id")
	}
	if job.Status != domain.JobOpen || job.ProfessionalID != "" {
		t.Fatalf("new job must be open and unassigned, got %s/%q", job.Status, job.ProfessionalID)
	}
	if job.Category != "plumber" {
		t.Fatalf("category should be normalized, got %q", job.Category)
	}
	if job.ClientID != owner.UserID || job.Version != 1 {
		t.Fatalf("unexpected owner/version: %+v", job)
	}
	if len(job.StatusHistory) != 1 || job.StatusHistory[0].Status != domain.JobOpen {
		t.Fatalf("expected initial history entry, got %+v", job.StatusHistory)
	}
	if got := env.events.types(); len(got) != 1 || got[0] != domain.EventJobCreated {
		t.Fatalf("expected job_created event, got %v", got)
	}
}

func TestJobService_CreateJob_OnlyClients(t *testing.T) {
	env := newTestEnv(t)
	pro := env.pro(t, "pete", "plumber")

	_, err := env.jobs.CreateJob(context.Background(), pro, validJobInput("plumber"))
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	_, err = env.jobs.CreateJob(context.Background(), domain.Principal{}, validJobInput("plumber"))
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for anonymous, got %v", err)
	}
}

func TestJobService_CreateJob_Validation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.client(t, "carla")

	cases := map[string]func(in *ports.CreateJobInput){
		"short title":       func(in *ports.CreateJobInput) { in.Title = "Fix" },
		"short description": func(in *ports.CreateJobInput) { in.Description = "Leaky sink" },
		"zero budget":       func(in *ports.CreateJobInput) { in.Budget = 0 },
		"negative budget":   func(in *ports.CreateJobInput) { in.Budget = -10 },
		"unknown category":  func(in *ports.CreateJobInput) { in.Category = "astronaut" },
		"short location":    func(in *ports.CreateJobInput) { in.Location = "NY" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validJobInput("plumber")
			mutate(&in)
			_, err := env.jobs.CreateJob(context.Background(), owner, in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestJobService_SetStatus_FollowsLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.client(t, "carla")
	pro := env.pro(t, "pete", "plumber")
	job := env.postJob(t, owner, "plumber")

	if _, err := env.jobs.SetStatus(ctx, owner, job.ID, domain.JobInProgress); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("open → in_progress must be rejected, got %v", err)
	}

	if _, err := env.jobs.AssignProfessional(ctx, owner, job.ID, pro.UserID); err != nil {
		t.Fatalf("AssignProfessional: %v", err)
	}
	started, err := env.jobs.SetStatus(ctx, owner, job.ID, domain.JobInProgress)
	if err != nil {
		t.Fatalf("assigned → in_progress: %v", err)
	}
	if started.ProfessionalID != pro.UserID {
		t.Fatalf("professional must be kept after assignment")
	}
	done, err := env.jobs.SetStatus(ctx, owner, job.ID, domain.JobCompleted)
	if err != nil {
		t.Fatalf("in_progress → completed: %v", err)
	}
	if done.Version != 4 || len(done.StatusHistory) != 4 {
		t.Fatalf("expected 4 versions/history entries, got %d/%d", done.Version, len(done.StatusHistory))
	}

	for _, next := range []domain.JobStatus{domain.JobOpen, domain.JobCancelled, domain.JobInProgress} {
		if _, err := env.jobs.SetStatus(ctx, owner, job.ID, next); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("completed → %s must be rejected, got %v", next, err)
		}
	}
	if env.job(t, job.ID).Status != domain.JobCompleted {
		t.Fatalf("terminal job must not change")
	}
}

func TestJobService_SetStatus_CancelFromOpen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.client(t, "carla")
	job := env.postJob(t, owner, "painter")

	cancelled, err := env.jobs.SetStatus(ctx, owner, job.ID, domain.JobCancelled)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if cancelled.Status != domain.JobCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if _, err := env.jobs.SetStatus(ctx, owner, job.ID, domain.JobOpen); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("cancelled → open must be rejected, got %v", err)
	}
}

func TestJobService_SetStatus_Guards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.client(t, "carla")
	other := env.client(t, "otto")
	job := env.postJob(t, owner, "painter")

	if _, err := env.jobs.SetStatus(ctx, other, job.ID, domain.JobCancelled); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("non-owner must be rejected, got %v", err)
	}
	if _, err := env.jobs.SetStatus(ctx, owner, job.ID, domain.JobAssigned); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("assignment without professional must be rejected, got %v", err)
	}
	if _, err := env.jobs.SetStatus(ctx, owner, job.ID, "archived"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown status must be a validation error, got %v", err)
	}
	if _, err := env.jobs.SetStatus(ctx, owner, "missing", domain.JobCancelled); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing job must be NotFound, got %v", err)
	}
	if env.job(t, job.ID).Status != domain.JobOpen {
		t.Fatalf("rejected calls must not change the job")
	}
}

func TestJobService_AssignProfessional(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.client(t, "carla")
	pro := env.pro(t, "pete", "plumber")
	otherClient := env.client(t, "otto")
	job := env.postJob(t, owner, "plumber")

	if _, err := env.jobs.AssignProfessional(ctx, owner, job.ID, otherClient.UserID); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("assigning a client must fail validation, got %v", err)
	}

	assigned, err := env.jobs.AssignProfessional(ctx, owner, job.ID, pro.UserID)
	if err != nil {
		t.Fatalf("AssignProfessional: %v", err)
	}
	if assigned.Status != domain.JobAssigned || assigned.ProfessionalID != pro.UserID {
		t.Fatalf("unexpected job after assign: %+v", assigned)
	}

	if _, err := env.jobs.AssignProfessional(ctx, owner, job.ID, pro.UserID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("second assignment must be rejected, got %v", err)
	}
}

func TestJobService_ListClientJobs_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.client(t, "carla")
	other := env.client(t, "otto")

	first := env.postJob(t, owner, "plumber")
	env.postJob(t, other, "plumber")
	second := env.postJob(t, owner, "painter")

	jobs, err := env.jobs.ListClientJobs(ctx, owner)
	if err != nil {
		t.Fatalf("ListClientJobs: %v", err)
	}
	if len(jobs) != 2 || jobs[0].ID != second.ID || jobs[1].ID != first.ID {
		t.Fatalf("expected [second, first], got %v", jobIDs(jobs))
	}

	pro := env.pro(t, "pete", "plumber")
	if _, err := env.jobs.ListClientJobs(ctx, pro); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("professionals have no client dashboard, got %v", err)
	}
}

func TestJobService_ListMatchingJobs_CaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.client(t, "carla")
	pro := env.pro(t, "pete", " PLUMBER ")

	match := env.postJob(t, owner, "Plumber")
	env.postJob(t, owner, "electrician")
	closed := env.postJob(t, owner, "plumber")
	if _, err := env.jobs.SetStatus(ctx, owner, closed.ID, domain.JobCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	jobs, err := env.jobs.ListMatchingJobs(ctx, pro)
	if err != nil {
		t.Fatalf("ListMatchingJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != match.ID {
		t.Fatalf("expected only the open plumber job, got %v", jobIDs(jobs))
	}

	if _, err := env.jobs.ListMatchingJobs(ctx, owner); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("clients cannot list matching jobs, got %v", err)
	}
}

func TestJobService_ListOpenJobs_FiltersCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.client(t, "carla")
	pro := env.pro(t, "pete", "plumber")

	env.postJob(t, owner, "plumber")
	env.postJob(t, owner, "electrician")

	all, err := env.jobs.ListOpenJobs(ctx, pro, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 open jobs, got %d (%v)", len(all), err)
	}
	electric, err := env.jobs.ListOpenJobs(ctx, pro, "Electrician")
	if err != nil || len(electric) != 1 || electric[0].Category != "electrician" {
		t.Fatalf("expected the electrician job, got %v (%v)", jobIDs(electric), err)
	}
	if _, err := env.jobs.ListOpenJobs(ctx, domain.Principal{}, ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous browse must be rejected, got %v", err)
	}
}

func TestJobService_ConcurrentCancelAndAssign_OneWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.client(t, "carla")
	pro := env.pro(t, "pete", "plumber")
	job := env.postJob(t, owner, "plumber")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = env.jobs.SetStatus(ctx, owner, job.ID, domain.JobCancelled)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = env.jobs.AssignProfessional(ctx, owner, job.ID, pro.UserID)
	}()
	wg.Wait()

	final := env.job(t, job.ID)
	switch final.Status {
	case domain.JobCancelled:
		if errs[0] != nil {
			t.Fatalf("cancel won but reported %v", errs[0])
		}
	case domain.JobAssigned:
		if errs[1] != nil || final.ProfessionalID != pro.UserID {
			t.Fatalf("assign won but reported %v", errs[1])
		}
	default:
		t.Fatalf("unexpected final status %s", final.Status)
	}
	// The loser either saw the winner's status (InvalidTransition) or raced it.
	// From assigned, cancellation is legal, so both may succeed in sequence.
	if final.Status == domain.JobAssigned && errs[0] == nil {
		t.Fatalf("cancel reported success but job is assigned")
	}
}

func jobIDs(jobs []*domain.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}
