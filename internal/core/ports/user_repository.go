package ports

import (
	"context"

	"github.com/revit/marketplace/internal/core/domain"
)

// UserRepository defines persistence operations for marketplace users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
