package repository

import (
	"context"
	"database/sql"

	"github.com/creativehub-api/internal/database"
	"github.com/creativehub-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment and fills in the generated ID
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (challenge_id, user_id, parent_comment_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		comment.ChallengeID, comment.UserID, comment.ParentID, comment.Content,
		comment.CreatedAt, comment.UpdatedAt,
	).Scan(&comment.ID)
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `
		SELECT id, challenge_id, user_id, parent_comment_id, content, created_at, updated_at
		FROM comments WHERE id = $1
	`
	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.ChallengeID, &comment.UserID, &comment.ParentID,
		&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListByChallenge returns every comment on a challenge in arrival order.
// The tree builder relies on this ordering for stable tie-breaking.
func (r *commentRepo) ListByChallenge(ctx context.Context, challengeID int64) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.challenge_id, c.user_id, c.parent_comment_id, c.content,
		       c.created_at, c.updated_at, u.pseudo
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.challenge_id = $1
		ORDER BY c.id
	`
	return r.scanComments(ctx, query, challengeID)
}

// ListAll returns every comment, newest first, for the admin dashboard
func (r *commentRepo) ListAll(ctx context.Context) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.challenge_id, c.user_id, c.parent_comment_id, c.content,
		       c.created_at, c.updated_at, u.pseudo
		FROM comments c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at DESC
	`
	return r.scanComments(ctx, query)
}

func (r *commentRepo) scanComments(ctx context.Context, query string, args ...interface{}) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.ChallengeID, &comment.UserID, &comment.ParentID,
			&comment.Content, &comment.CreatedAt, &comment.UpdatedAt, &comment.AuthorName,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}

	return comments, rows.Err()
}

// Delete hard-deletes a comment. Replies pointing at it are detached by
// the ON DELETE SET NULL constraint and become roots.
func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
