package domain

import (
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobAssigned   JobStatus = "assigned"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// jobTransitions defines the allowed state machine transitions.
// Completed and cancelled have no outgoing edges.
var jobTransitions = map[JobStatus][]JobStatus{
	JobOpen:       {JobAssigned, JobCancelled},
	JobAssigned:   {JobInProgress, JobCancelled},
	JobInProgress: {JobCompleted, JobCancelled},
}

// Valid reports whether s is a member of the job status enumeration.
func (s JobStatus) Valid() bool {
	switch s {
	case JobOpen, JobAssigned, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s JobStatus) IsTerminal() bool {
	return s.Valid() && len(jobTransitions[s]) == 0
}

// IsValidTransition is the free-function form of CanTransitionTo.
func IsValidTransition(from, to JobStatus) bool {
	return from.CanTransitionTo(to)
}

// Categories is the fixed set of trades a job can be posted under. A
// professional's declared profession is matched against these.
var Categories = []string{
	"plumber",
	"electrician",
	"carpenter",
	"painter",
	"hvac",
	"roofer",
	"landscaper",
	"cleaner",
	"handyman",
	"mason",
}

// NormalizeCategory lowercases and trims a category or profession string.
func NormalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsKnownCategory reports whether s, once normalized, is in Categories.
func IsKnownCategory(s string) bool {
	n := NormalizeCategory(s)
	for _, c := range Categories {
		if c == n {
			return true
		}
	}
	return false
}

// JobStatusEntry records a single status transition on a job.
type JobStatusEntry struct {
	Status    JobStatus `json:"status" bson:"status"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	ActorID   string    `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Job is a unit of requested work posted by a client.
type Job struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	Title            string           `json:"title" bson:"title"`
	Description      string           `json:"description" bson:"description"`
	Budget           float64          `json:"budget" bson:"budget"`
	Category         string           `json:"category" bson:"category"`
	Location         string           `json:"location" bson:"location"`
	Status           JobStatus        `json:"status" bson:"status"`
	ClientID         string           `json:"client_id" bson:"client_id"`
	ProfessionalID   string           `json:"professional_id,omitempty" bson:"professional_id,omitempty"`
	ApplicationCount int              `json:"application_count" bson:"application_count"`
	Version          int64            `json:"version" bson:"version"`
	StatusHistory    []JobStatusEntry `json:"status_history" bson:"status_history"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" bson:"updated_at"`
}

// IsOwnedBy reports whether userID is the client that posted the job.
func (j *Job) IsOwnedBy(userID string) bool {
	return userID != "" && j.ClientID == userID
}

// JobChange is a compare-and-set mutation of a job. It applies only when the
// stored job still has ExpectedVersion and, if set, ExpectedStatus.
type JobChange struct {
	ExpectedVersion int64
	ExpectedStatus  JobStatus
	Status          JobStatus
	ProfessionalID  string
	ActorID         string
	Notes           string
	At              time.Time
}
