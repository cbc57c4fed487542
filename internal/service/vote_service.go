package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creativehub-api/internal/models"
	"github.com/creativehub-api/internal/repository"
	"github.com/rs/zerolog"
)

// voteService is the concrete implementation of VoteService
type voteService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newVoteService(repos *repository.Repositories, log zerolog.Logger) *voteService {
	return &voteService{
		repos: repos,
		log:   log.With().Str("service", "vote").Logger(),
	}
}

// Add records one vote for (user, challenge). A duplicate add is
// rejected by the storage-layer uniqueness constraint and reported
// together with the current count so the caller can resync its display.
func (s *voteService) Add(ctx context.Context, userID, challengeID int64) (*models.VoteResult, error) {
	active, err := s.repos.Challenge.GetActive(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	if active == nil {
		return nil, ErrChallengeNotFound
	}

	vote := &models.Vote{
		ChallengeID: challengeID,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
	err = s.repos.Vote.Create(ctx, vote)
	if errors.Is(err, repository.ErrDuplicateVote) {
		count, countErr := s.repos.Vote.CountByChallenge(ctx, challengeID)
		if countErr != nil {
			return nil, fmt.Errorf("failed to count votes: %w", countErr)
		}
		return &models.VoteResult{
			Success:   false,
			Message:   "You have already voted for this challenge.",
			VoteCount: count,
		}, repository.ErrDuplicateVote
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}

	count, err := s.repos.Vote.CountByChallenge(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	s.log.Info().
		Int64("user_id", userID).
		Int64("challenge_id", challengeID).
		Int("vote_count", count).
		Msg("Vote added")

	return &models.VoteResult{
		Success:   true,
		Message:   "Vote added successfully.",
		VoteCount: count,
	}, nil
}

// Remove deletes the user's vote on a challenge. Removing a vote that
// does not exist is rejected, not ignored.
func (s *voteService) Remove(ctx context.Context, userID, challengeID int64) (*models.VoteResult, error) {
	active, err := s.repos.Challenge.GetActive(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	if active == nil {
		return nil, ErrChallengeNotFound
	}

	err = s.repos.Vote.Delete(ctx, userID, challengeID)
	if errors.Is(err, repository.ErrVoteNotFound) {
		count, countErr := s.repos.Vote.CountByChallenge(ctx, challengeID)
		if countErr != nil {
			return nil, fmt.Errorf("failed to count votes: %w", countErr)
		}
		return &models.VoteResult{
			Success:   false,
			Message:   "You have not voted for this challenge.",
			VoteCount: count,
		}, repository.ErrVoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete vote: %w", err)
	}

	count, err := s.repos.Vote.CountByChallenge(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	s.log.Info().
		Int64("user_id", userID).
		Int64("challenge_id", challengeID).
		Int("vote_count", count).
		Msg("Vote removed")

	return &models.VoteResult{
		Success:   true,
		Message:   "Vote removed successfully.",
		VoteCount: count,
	}, nil
}
