package domain

import "time"

// JobEventType classifies an entry in a job's activity feed.
type JobEventType string

const (
	EventJobCreated           JobEventType = "job_created"
	EventJobStatusChanged     JobEventType = "job_status_changed"
	EventJobAssigned          JobEventType = "job_assigned"
	EventApplicationSubmitted JobEventType = "application_submitted"
	EventApplicationAccepted  JobEventType = "application_accepted"
	EventApplicationRejected  JobEventType = "application_rejected"
)

// JobEvent records a state change on a job or one of its applications.
type JobEvent struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	JobID         string       `json:"job_id" bson:"job_id"`
	Type          JobEventType `json:"type" bson:"type"`
	ActorID       string       `json:"actor_id" bson:"actor_id"`
	ApplicationID string       `json:"application_id,omitempty" bson:"application_id,omitempty"`
	From          string       `json:"from,omitempty" bson:"from,omitempty"`
	To            string       `json:"to,omitempty" bson:"to,omitempty"`
	OccurredAt    time.Time    `json:"occurred_at" bson:"occurred_at"`
}
