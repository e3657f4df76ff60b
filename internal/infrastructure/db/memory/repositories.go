package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
)

// Users returns the users collection as a ports.UserRepository.
func (s *Store) Users() ports.UserRepository { return &userRepo{s: s} }

// Jobs returns the jobs collection as a ports.JobRepository.
func (s *Store) Jobs() ports.JobRepository { return &jobRepo{s: s} }

// Applications returns the applications collection as a ports.ApplicationRepository.
func (s *Store) Applications() ports.ApplicationRepository { return &applicationRepo{s: s} }

// Activity returns the activity trail as a ports.ActivityRepository.
func (s *Store) Activity() ports.ActivityRepository { return &activityRepo{s: s} }

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	defer r.s.lock(ctx)()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	stored := cloneUser(user)
	stored.ID = r.s.newID()
	r.s.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	defer r.s.lock(ctx)()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	defer r.s.lock(ctx)()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

type jobRepo struct{ s *Store }

func (r *jobRepo) Create(ctx context.Context, j *domain.Job) error {
	defer r.s.lock(ctx)()
	j.ID = r.s.newID()
	r.s.jobs[j.ID] = cloneJob(j)
	return nil
}

func (r *jobRepo) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	defer r.s.lock(ctx)()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *jobRepo) List(ctx context.Context, f ports.JobFilter) ([]*domain.Job, error) {
	defer r.s.lock(ctx)()
	out := []*domain.Job{}
	for _, j := range r.s.jobs {
		if f.ClientID != "" && j.ClientID != f.ClientID {
			continue
		}
		if f.ProfessionalID != "" && j.ProfessionalID != f.ProfessionalID {
			continue
		}
		if f.Category != "" && j.Category != f.Category {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		out = append(out, cloneJob(j))
	}
	sortJobs(r.s, out)
	return out, nil
}

func (r *jobRepo) Apply(ctx context.Context, id string, c domain.JobChange) (*domain.Job, error) {
	defer r.s.lock(ctx)()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	if j.Version != c.ExpectedVersion || (c.ExpectedStatus != "" && j.Status != c.ExpectedStatus) {
		return nil, fmt.Errorf("apply job change: %w", domain.ErrConcurrentUpdate)
	}

	at := c.At
	if at.IsZero() {
		at = r.s.now()
	}
	j.Status = c.Status
	if c.ProfessionalID != "" {
		j.ProfessionalID = c.ProfessionalID
	}
	j.Version++
	j.UpdatedAt = at
	j.StatusHistory = append(j.StatusHistory, domain.JobStatusEntry{
		Status:    c.Status,
		Timestamp: at,
		ActorID:   c.ActorID,
		Notes:     c.Notes,
	})
	return cloneJob(j), nil
}

func (r *jobRepo) ReserveApplicationSlot(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	j, ok := r.s.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	if j.Status != domain.JobOpen {
		return fmt.Errorf("reserve application slot: %w (job is %s)", domain.ErrInvalidTransition, j.Status)
	}
	j.ApplicationCount++
	return nil
}

type applicationRepo struct{ s *Store }

func (r *applicationRepo) Create(ctx context.Context, a *domain.Application) error {
	defer r.s.lock(ctx)()
	for _, existing := range r.s.apps {
		if existing.JobID == a.JobID && existing.ProfessionalID == a.ProfessionalID {
			return domain.ErrDuplicateApplication
		}
	}
	a.ID = r.s.newID()
	r.s.apps[a.ID] = cloneApplication(a)
	return nil
}

func (r *applicationRepo) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	defer r.s.lock(ctx)()
	a, ok := r.s.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return cloneApplication(a), nil
}

func (r *applicationRepo) List(ctx context.Context, f ports.ApplicationFilter) ([]*domain.Application, error) {
	defer r.s.lock(ctx)()
	out := []*domain.Application{}
	for _, a := range r.s.apps {
		if f.JobID != "" && a.JobID != f.JobID {
			continue
		}
		if f.ProfessionalID != "" && a.ProfessionalID != f.ProfessionalID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, cloneApplication(a))
	}
	sortApplications(r.s, out)
	return out, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, at time.Time) error {
	defer r.s.lock(ctx)()
	a, ok := r.s.apps[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	if a.Status != from {
		return fmt.Errorf("update application: %w (application is %s)", domain.ErrInvalidTransition, a.Status)
	}
	a.Status = to
	a.UpdatedAt = at
	return nil
}

func (r *applicationRepo) RejectPending(ctx context.Context, jobID, exceptID string, at time.Time) ([]string, error) {
	defer r.s.lock(ctx)()
	var ids []string
	for id, a := range r.s.apps {
		if a.JobID != jobID || id == exceptID || a.Status != domain.ApplicationPending {
			continue
		}
		a.Status = domain.ApplicationRejected
		a.UpdatedAt = at
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, k int) bool { return r.s.order[ids[i]] < r.s.order[ids[k]] })
	return ids, nil
}

type activityRepo struct{ s *Store }

func (r *activityRepo) Insert(ctx context.Context, e *domain.JobEvent) error {
	defer r.s.lock(ctx)()
	stored := *e
	stored.ID = r.s.newID()
	e.ID = stored.ID
	r.s.events = append(r.s.events, &stored)
	return nil
}

func (r *activityRepo) ListByJob(ctx context.Context, jobID string) ([]*domain.JobEvent, error) {
	defer r.s.lock(ctx)()
	out := []*domain.JobEvent{}
	for i := len(r.s.events) - 1; i >= 0; i-- {
		if e := r.s.events[i]; e.JobID == jobID {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}
