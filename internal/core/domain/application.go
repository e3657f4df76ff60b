package domain

import "time"

// ApplicationStatus represents the review state of an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// CanTransitionTo reports whether an application may move from s to next.
// Only pending applications can be decided; decisions are final.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	return s == ApplicationPending && (next == ApplicationAccepted || next == ApplicationRejected)
}

// Decision is the client's verdict on an application.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// Valid reports whether d is accept or reject.
func (d Decision) Valid() bool {
	return d == DecisionAccept || d == DecisionReject
}

// ApplicantSnapshot is the applicant's profile as it was when the application
// was submitted. It is a historical record and is not refreshed when the
// user later edits their profile.
type ApplicantSnapshot struct {
	Name       string `json:"professional_name" bson:"professional_name"`
	Email      string `json:"professional_email" bson:"professional_email"`
	Phone      string `json:"professional_phone" bson:"professional_phone"`
	Profession string `json:"professional_profession" bson:"professional_profession"`
	Experience string `json:"professional_experience" bson:"professional_experience"`
}

// SnapshotOf captures the applicant fields of u.
func SnapshotOf(u *User) ApplicantSnapshot {
	return ApplicantSnapshot{
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Profession: u.Profession,
		Experience: u.Experience,
	}
}

// Application is a professional's bid on a job.
type Application struct {
	ID             string            `json:"id" bson:"_id,omitempty"`
	JobID          string            `json:"job_id" bson:"job_id"`
	ProfessionalID string            `json:"professional_id" bson:"professional_id"`
	Applicant      ApplicantSnapshot `json:"applicant" bson:",inline"`
	Message        string            `json:"message" bson:"message"`
	Status         ApplicationStatus `json:"status" bson:"status"`
	CreatedAt      time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
