package repository

import (
	"context"

	"github.com/creativehub-api/internal/database"
	"github.com/creativehub-api/internal/models"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for unique_violation
const uniqueViolation = "23505"

// voteRepo is the concrete implementation of VoteRepository
type voteRepo struct {
	db *database.DB
}

// NewVoteRepo creates a new vote repository
func NewVoteRepo(db *database.DB) VoteRepository {
	return &voteRepo{db: db}
}

// Create inserts a new vote. The at-most-one-vote invariant is enforced
// by the unique index on (user_id, challenge_id), not by a prior
// existence check, so a concurrent duplicate insert loses here too.
func (r *voteRepo) Create(ctx context.Context, vote *models.Vote) error {
	query := `
		INSERT INTO votes (challenge_id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		vote.ChallengeID, vote.UserID, vote.CreatedAt,
	).Scan(&vote.ID)
	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
		return ErrDuplicateVote
	}
	return err
}

// Delete removes a user's vote on a challenge
func (r *voteRepo) Delete(ctx context.Context, userID, challengeID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM votes WHERE user_id = $1 AND challenge_id = $2`,
		userID, challengeID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVoteNotFound
	}
	return nil
}

// CountByChallenge returns the current vote count for a challenge
func (r *voteRepo) CountByChallenge(ctx context.Context, challengeID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM votes WHERE challenge_id = $1", challengeID,
	).Scan(&count)
	return count, err
}

// Count returns the total number of votes
func (r *voteRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM votes").Scan(&count)
	return count, err
}
