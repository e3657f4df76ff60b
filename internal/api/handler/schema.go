package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Reason string `json:"reason,omitempty"`
}

// --- Auth ---

type registerRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=8"`
	Name       string `json:"name"       validate:"required"`
	Phone      string `json:"phone"`
	UserType   string `json:"user_type"  validate:"required,oneof=client professional"`
	Profession string `json:"profession" validate:"required_if=UserType professional"`
	Experience string `json:"experience"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// --- Profile ---

type updateProfileRequest struct {
	Name       *string `json:"name"       validate:"omitempty,min=1"`
	Phone      *string `json:"phone"`
	Profession *string `json:"profession"`
	Experience *string `json:"experience"`
}

type userResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	UserType   string    `json:"user_type"`
	Profession string    `json:"profession,omitempty"`
	Experience string    `json:"experience,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// --- Jobs ---

type createJobRequest struct {
	Title       string  `json:"title"       validate:"required,min=5"`
	Description string  `json:"description" validate:"required,min=20"`
	Category    string  `json:"category"    validate:"required"`
	Budget      float64 `json:"budget"      validate:"required,gt=0"`
	Location    string  `json:"location"    validate:"required,min=3"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open assigned in_progress completed cancelled"`
}

type assignRequest struct {
	ProfessionalID string `json:"professional_id" validate:"required"`
}

type jobLinks struct {
	Self         string `json:"self"`
	Applications string `json:"applications"`
	Activity     string `json:"activity"`
}

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actor_id,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

type jobResponse struct {
	ID               string                      `json:"id"`
	Title            string                      `json:"title"`
	Description      string                      `json:"description"`
	Budget           float64                     `json:"budget"`
	Category         string                      `json:"category"`
	Location         string                      `json:"location"`
	Status           string                      `json:"status"`
	ClientID         string                      `json:"client_id"`
	ProfessionalID   string                      `json:"professional_id,omitempty"`
	ApplicationCount int                         `json:"application_count"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
	StatusHistory    []statusHistoryItemResponse `json:"status_history,omitempty"`
	Links            jobLinks                    `json:"_links"`
}

type jobListResponse struct {
	Jobs  []jobResponse `json:"jobs"`
	Total int           `json:"total"`
}

type eligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
}

// --- Applications ---

type submitApplicationRequest struct {
	Message string `json:"message" validate:"required"`
}

type decisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}

type applicantResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Profession string `json:"profession"`
	Experience string `json:"experience,omitempty"`
}

type applicationResponse struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id"`
	ProfessionalID string            `json:"professional_id"`
	Applicant      applicantResponse `json:"applicant"`
	Message        string            `json:"message"`
	Status         string            `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      *time.Time        `json:"updated_at,omitempty"`
}

type applicationListResponse struct {
	Applications []applicationResponse `json:"applications"`
	Total        int                   `json:"total"`
}

type decisionResponse struct {
	Application applicationResponse `json:"application"`
	Job         jobResponse         `json:"job"`
	RejectedIDs []string            `json:"auto_rejected_ids"`
}

// --- Activity ---

type activityResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ActorID       string    `json:"actor_id"`
	ApplicationID string    `json:"application_id,omitempty"`
	From          string    `json:"from,omitempty"`
	To            string    `json:"to,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type activityListResponse struct {
	JobID  string             `json:"job_id"`
	Events []activityResponse `json:"events"`
}
