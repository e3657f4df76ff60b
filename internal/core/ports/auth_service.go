package ports

import (
	"context"

	"github.com/revit/marketplace/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Phone      string
	UserType   string
	Profession string
	Experience string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
