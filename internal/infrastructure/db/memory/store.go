// Package memory is an in-process implementation of the repository ports.
// It backs STORE_DRIVER=memory for local development and the service tests.
//
// Transactions hold the store's single lock for their whole duration and roll
// every collection back when the callback fails.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/revit/marketplace/internal/core/domain"
)

type txKey struct{}

// Store holds the users, jobs, applications and activity collections.
type Store struct {
	mu     sync.Mutex
	seq    int64
	order  map[string]int64
	users  map[string]*domain.User
	jobs   map[string]*domain.Job
	apps   map[string]*domain.Application
	events []*domain.JobEvent
	now    func() time.Time
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		order: make(map[string]int64),
		users: make(map[string]*domain.User),
		jobs:  make(map[string]*domain.Job),
		apps:  make(map[string]*domain.Application),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithinTransaction runs fn while holding the store lock. Nested calls join
// the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock acquires the store lock unless ctx already runs inside a transaction.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) newID() string {
	s.seq++
	id := uuid.NewString()
	s.order[id] = s.seq
	return id
}

// newerFirst orders by created_at descending, then by insertion order.
func (s *Store) newerFirst(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return s.order[idA] > s.order[idB]
}

type snapshot struct {
	seq    int64
	order  map[string]int64
	users  map[string]*domain.User
	jobs   map[string]*domain.Job
	apps   map[string]*domain.Application
	events []*domain.JobEvent
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		seq:    s.seq,
		order:  make(map[string]int64, len(s.order)),
		users:  make(map[string]*domain.User, len(s.users)),
		jobs:   make(map[string]*domain.Job, len(s.jobs)),
		apps:   make(map[string]*domain.Application, len(s.apps)),
		events: append([]*domain.JobEvent(nil), s.events...),
	}
	for k, v := range s.order {
		snap.order[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = cloneUser(v)
	}
	for k, v := range s.jobs {
		snap.jobs[k] = cloneJob(v)
	}
	for k, v := range s.apps {
		snap.apps[k] = cloneApplication(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.seq = snap.seq
	s.order = snap.order
	s.users = snap.users
	s.jobs = snap.jobs
	s.apps = snap.apps
	s.events = snap.events
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneJob(j *domain.Job) *domain.Job {
	c := *j
	c.StatusHistory = append([]domain.JobStatusEntry(nil), j.StatusHistory...)
	return &c
}

func cloneApplication(a *domain.Application) *domain.Application {
	c := *a
	return &c
}

func sortJobs(s *Store, jobs []*domain.Job) {
	sort.Slice(jobs, func(i, k int) bool {
		return s.newerFirst(jobs[i].CreatedAt, jobs[k].CreatedAt, jobs[i].ID, jobs[k].ID)
	})
}

func sortApplications(s *Store, apps []*domain.Application) {
	sort.Slice(apps, func(i, k int) bool {
		return s.newerFirst(apps[i].CreatedAt, apps[k].CreatedAt, apps[i].ID, apps[k].ID)
	})
}
