package ports

import (
	"context"

	"github.com/revit/marketplace/internal/core/domain"
)

// UpdateProfileInput holds optional profile edits; nil fields are unchanged.
type UpdateProfileInput struct {
	Name       *string
	Phone      *string
	Profession *string
	Experience *string
}

// ProfileService reads and edits the acting user's own profile.
type ProfileService interface {
	GetProfile(ctx context.Context, actor domain.Principal) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor domain.Principal, input UpdateProfileInput) (*domain.User, error)
}
