package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
)

type ProfileService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewProfileService(users ports.UserRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, logger: logger}
}

func (s *ProfileService) GetProfile(ctx context.Context, actor domain.Principal) (*domain.User, error) {
	if !actor.Authenticated() {
		return nil, fmt.Errorf("get profile: %w", domain.ErrUnauthorized)
	}
	return s.users.FindByID(ctx, actor.UserID)
}

// UpdateProfile edits the caller's profile. Applications submitted earlier
// keep the snapshot taken at submission time.
func (s *ProfileService) UpdateProfile(ctx context.Context, actor domain.Principal, in ports.UpdateProfileInput) (*domain.User, error) {
	if !actor.Authenticated() {
		return nil, fmt.Errorf("update profile: %w", domain.ErrUnauthorized)
	}
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ValidationError("name cannot be empty")
		}
		user.Name = name
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Profession != nil {
		if !user.IsProfessional() {
			return nil, domain.ValidationError("only professionals declare a profession")
		}
		if !domain.IsKnownCategory(*in.Profession) {
			return nil, domain.ValidationError("profession must be one of: %s", strings.Join(domain.Categories, ", "))
		}
		user.Profession = domain.NormalizeCategory(*in.Profession)
	}
	if in.Experience != nil {
		user.Experience = strings.TrimSpace(*in.Experience)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}
