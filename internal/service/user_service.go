package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/creativehub-api/internal/models"
	"github.com/creativehub-api/internal/repository"
	"github.com/rs/zerolog"
)

// userService is the concrete implementation of UserService
type userService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newUserService(repos *repository.Repositories, log zerolog.Logger) *userService {
	return &userService{
		repos: repos,
		log:   log.With().Str("service", "user").Logger(),
	}
}

// AdminList returns users with the dashboard's filter
// (all/active/inactive/admins) and search over pseudo and email.
func (s *userService) AdminList(ctx context.Context, search, filter string) ([]*models.User, error) {
	users, err := s.repos.User.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.User, 0, len(users))
	needle := strings.ToLower(search)
	for _, u := range users {
		switch filter {
		case "active":
			if !u.Active {
				continue
			}
		case "inactive":
			if u.Active {
				continue
			}
		case "admins":
			if !u.IsAdmin() {
				continue
			}
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Pseudo), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		filtered = append(filtered, u)
	}

	return filtered, nil
}

// ToggleActive flips a user's active flag and returns the updated user
func (s *userService) ToggleActive(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.repos.User.SetActive(ctx, id, !user.Active); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.Active = !user.Active

	s.log.Info().Int64("user_id", id).Bool("active", user.Active).Msg("User active flag toggled")
	return user, nil
}
