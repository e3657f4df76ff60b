package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/infrastructure/db/memory"
)

// recordingPublisher captures published events in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.JobEvent
}

func (p *recordingPublisher) Publish(e domain.JobEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []domain.JobEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.JobEventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// fakeClock hands out strictly increasing timestamps.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

type testEnv struct {
	store  *memory.Store
	guard  *memory.LocalGuard
	events *recordingPublisher
	jobs   *JobService
	apps   *ApplicationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	events := &recordingPublisher{}
	clock := newFakeClock()
	guard := memory.NewLocalGuard()

	jobs := NewJobService(store.Jobs(), store.Users(), events, zerolog.Nop())
	jobs.now = clock.Now
	apps := NewApplicationService(
		store.Jobs(), store.Applications(), store.Users(), store, guard, events, zerolog.Nop(),
	)
	apps.now = clock.Now

	return &testEnv{store: store, guard: guard, events: events, jobs: jobs, apps: apps}
}

func (env *testEnv) addUser(t *testing.T, name, role, profession string) domain.Principal {
	t.Helper()
	u, err := env.store.Users().Create(context.Background(), &domain.User{
		Email:      name + "@example.com",
		Name:       name,
		Phone:      "555-0100",
		UserType:   role,
		Profession: profession,
		Experience: "5 years",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return domain.Principal{UserID: u.ID, Email: u.Email, Role: role}
}

func (env *testEnv) client(t *testing.T, name string) domain.Principal {
	return env.addUser(t, name, domain.RoleClient, "")
}

func (env *testEnv) pro(t *testing.T, name, profession string) domain.Principal {
	return env.addUser(t, name, domain.RoleProfessional, profession)
}

func (env *testEnv) postJob(t *testing.T, owner domain.Principal, category string) *domain.Job {
	t.Helper()
	job, err := env.jobs.CreateJob(context.Background(), owner, validJobInput(category))
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func (env *testEnv) apply(t *testing.T, pro domain.Principal, jobID string) *domain.Application {
	t.Helper()
	app, err := env.apps.Submit(context.Background(), pro, jobID, "I can start on Monday.")
	if err != nil {
		t.Fatalf("submit application: %v", err)
	}
	return app
}

func (env *testEnv) job(t *testing.T, id string) *domain.Job {
	t.Helper()
	j, err := env.store.Jobs().FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find job: %v", err)
	}
	return j
}

func (env *testEnv) application(t *testing.T, id string) *domain.Application {
	t.Helper()
	a, err := env.store.Applications().FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find application: %v", err)
	}
	return a
}
