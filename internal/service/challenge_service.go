package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/creativehub-api/internal/models"
	"github.com/creativehub-api/internal/repository"
	"github.com/creativehub-api/internal/security"
	"github.com/creativehub-api/internal/validation"
	"github.com/rs/zerolog"
)

// challengeService is the concrete implementation of ChallengeService
type challengeService struct {
	repos    *repository.Repositories
	comments CommentService
	csrf     *security.CSRF
	log      zerolog.Logger
}

func newChallengeService(repos *repository.Repositories, comments CommentService, csrf *security.CSRF, log zerolog.Logger) *challengeService {
	return &challengeService{
		repos:    repos,
		comments: comments,
		csrf:     csrf,
		log:      log.With().Str("service", "challenge").Logger(),
	}
}

// SubmitChallengeRequest carries one challenge create or edit through
// the form flow.
type SubmitChallengeRequest struct {
	Actor      *models.User
	Submission validation.ChallengeSubmission
}

// Create validates and persists a new challenge owned by the actor.
func (s *challengeService) Create(ctx context.Context, req *SubmitChallengeRequest) (*models.Challenge, error) {
	sub := req.Submission
	if !s.csrf.IsValid(security.TokenChallenge, sub.Token) {
		return nil, ErrCsrfMismatch
	}
	if errs := sub.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validation.Combined(errs))
	}

	deadline, _ := sub.Deadline()
	categoryID := sub.CategoryID()
	now := time.Now()
	challenge := &models.Challenge{
		Title:       strings.TrimSpace(sub.Title),
		Description: sub.Description,
		CategoryID:  &categoryID,
		UserID:      req.Actor.ID,
		Deadline:    deadline,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repos.Challenge.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to save challenge: %w", err)
	}

	s.log.Info().
		Int64("challenge_id", challenge.ID).
		Int64("user_id", req.Actor.ID).
		Msg("Challenge created")
	return challenge, nil
}

// Update rewrites a challenge's form fields. Only the owner or an admin
// may edit.
func (s *challengeService) Update(ctx context.Context, id int64, req *SubmitChallengeRequest) (*models.Challenge, error) {
	challenge, err := s.repos.Challenge.GetActive(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}
	if challenge.UserID != req.Actor.ID && !req.Actor.IsAdmin() {
		return nil, ErrForbidden
	}

	sub := req.Submission
	if !s.csrf.IsValid(security.TokenChallenge, sub.Token) {
		return nil, ErrCsrfMismatch
	}
	if errs := sub.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validation.Combined(errs))
	}

	deadline, _ := sub.Deadline()
	categoryID := sub.CategoryID()
	challenge.Title = strings.TrimSpace(sub.Title)
	challenge.Description = sub.Description
	challenge.CategoryID = &categoryID
	challenge.Deadline = deadline
	challenge.UpdatedAt = time.Now()

	if err := s.repos.Challenge.Update(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to update challenge: %w", err)
	}

	s.log.Info().
		Int64("challenge_id", challenge.ID).
		Int64("actor_id", req.Actor.ID).
		Msg("Challenge updated")
	return challenge, nil
}

// List returns active challenges for the index plus their vote/comment
// counters.
func (s *challengeService) List(ctx context.Context, categoryID int64, sortBy string) ([]*models.Challenge, map[int64]models.ChallengeStat, error) {
	challenges, err := s.repos.Challenge.ListActive(ctx, categoryID, sortBy)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	stats := make(map[int64]models.ChallengeStat, len(challenges))
	for _, c := range challenges {
		votes, err := s.repos.Vote.CountByChallenge(ctx, c.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to count votes: %w", err)
		}
		comments, err := s.repos.Challenge.CountComments(ctx, c.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to count comments: %w", err)
		}
		stats[c.ID] = models.ChallengeStat{VoteCount: votes, CommentCount: comments}
	}

	return challenges, stats, nil
}

// Categories returns all categories for the index filter
func (s *challengeService) Categories(ctx context.Context) ([]*models.Category, error) {
	return s.repos.Category.List(ctx)
}

// View assembles the challenge page view model: the active challenge,
// its vote count and its comment tree.
func (s *challengeService) View(ctx context.Context, id int64) (*models.ChallengeView, error) {
	challenge, err := s.repos.Challenge.GetActive(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}

	votes, err := s.repos.Vote.CountByChallenge(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	tree, err := s.comments.TreeForChallenge(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.ChallengeView{
		Challenge: *challenge,
		VoteCount: votes,
		Comments:  tree,
	}, nil
}

// SoftDelete deactivates a challenge. Only the owner or an admin may
// do it, and the per-challenge CSRF token must match.
func (s *challengeService) SoftDelete(ctx context.Context, id int64, actor *models.User, token string) error {
	challenge, err := s.repos.Challenge.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load challenge: %w", err)
	}
	if challenge == nil {
		return ErrChallengeNotFound
	}

	if challenge.UserID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}

	if !s.csrf.IsValid(security.ActionTokenID("delete_challenge", id), token) {
		return ErrCsrfMismatch
	}

	if err := s.repos.Challenge.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to deactivate challenge: %w", err)
	}

	s.log.Info().Int64("challenge_id", id).Int64("actor_id", actor.ID).Msg("Challenge deactivated")
	return nil
}

// ToggleActive flips a challenge's active flag after checking the
// per-challenge CSRF token. An admin uses it to reactivate a
// soft-deleted challenge as well as to pull one offline.
func (s *challengeService) ToggleActive(ctx context.Context, id int64, token string) (*models.Challenge, error) {
	challenge, err := s.repos.Challenge.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}

	if !s.csrf.IsValid(security.ActionTokenID("toggle_challenge", id), token) {
		return nil, ErrCsrfMismatch
	}

	if err := s.repos.Challenge.SetActive(ctx, id, !challenge.IsActive); err != nil {
		return nil, fmt.Errorf("failed to update challenge: %w", err)
	}
	challenge.IsActive = !challenge.IsActive

	s.log.Info().Int64("challenge_id", id).Bool("active", challenge.IsActive).Msg("Challenge active flag toggled")
	return challenge, nil
}

// AdminList returns all challenges with the dashboard's filter
// (all/active/inactive) and text search over title and description.
func (s *challengeService) AdminList(ctx context.Context, search, filter string) ([]*models.Challenge, error) {
	challenges, err := s.repos.Challenge.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Challenge, 0, len(challenges))
	needle := strings.ToLower(search)
	for _, c := range challenges {
		if filter == "active" && !c.IsActive {
			continue
		}
		if filter == "inactive" && c.IsActive {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Title), needle) &&
			!strings.Contains(strings.ToLower(c.Description), needle) {
			continue
		}
		filtered = append(filtered, c)
	}

	return filtered, nil
}
