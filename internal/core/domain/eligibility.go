package domain

// IneligibilityReason names why a user may not apply to a job.
type IneligibilityReason string

const (
	ReasonNone               IneligibilityReason = ""
	ReasonNotLoggedIn        IneligibilityReason = "not_logged_in"
	ReasonWrongRole          IneligibilityReason = "wrong_role"
	ReasonJobClosed          IneligibilityReason = "job_closed"
	ReasonAlreadyApplied     IneligibilityReason = "already_applied"
	ReasonProfessionMismatch IneligibilityReason = "profession_mismatch"
)

var reasonMessages = map[IneligibilityReason]string{
	ReasonNotLoggedIn:        "Please sign in to apply for this job.",
	ReasonWrongRole:          "Only professionals can apply for jobs.",
	ReasonJobClosed:          "This job is no longer accepting applications.",
	ReasonAlreadyApplied:     "You have already applied for this job.",
	ReasonProfessionMismatch: "This job requires a different profession.",
}

// Message returns the user-facing text for r.
func (r IneligibilityReason) Message() string {
	return reasonMessages[r]
}

// CanApply evaluates the eligibility ladder in order and returns the first
// failing reason, or ReasonNone when user may apply to job.
func CanApply(user *User, job *Job, existing []*Application) IneligibilityReason {
	if user == nil || user.ID == "" {
		return ReasonNotLoggedIn
	}
	if !user.IsProfessional() {
		return ReasonWrongRole
	}
	if job.Status != JobOpen {
		return ReasonJobClosed
	}
	for _, a := range existing {
		if a.ProfessionalID == user.ID && a.JobID == job.ID {
			return ReasonAlreadyApplied
		}
	}
	if NormalizeCategory(user.Profession) != NormalizeCategory(job.Category) {
		return ReasonProfessionMismatch
	}
	return ReasonNone
}

// EligibilityError converts a failing reason to the error callers surface.
// An already-applied user gets ErrDuplicateApplication; every other reason
// yields an *IneligibleError.
func EligibilityError(r IneligibilityReason) error {
	switch r {
	case ReasonNone:
		return nil
	case ReasonAlreadyApplied:
		return ErrDuplicateApplication
	default:
		return &IneligibleError{Reason: r}
	}
}
