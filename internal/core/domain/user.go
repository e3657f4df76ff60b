package domain

import "time"

const (
	RoleClient       = "client"
	RoleProfessional = "professional"
)

// User models an authenticated actor in the marketplace.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	UserType     string    `json:"user_type"`
	Profession   string    `json:"profession,omitempty"`
	Experience   string    `json:"experience,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsProfessional reports whether the user can apply to jobs.
func (u *User) IsProfessional() bool {
	return u != nil && u.UserType == RoleProfessional
}

// Principal is the authenticated caller of a core operation. It is passed
// explicitly to every service method.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// IsClient reports whether p acts as a client.
func (p Principal) IsClient() bool { return p.UserID != "" && p.Role == RoleClient }

// IsProfessional reports whether p acts as a professional.
func (p Principal) IsProfessional() bool { return p.UserID != "" && p.Role == RoleProfessional }

// Authenticated reports whether p identifies a user.
func (p Principal) Authenticated() bool { return p.UserID != "" }
