package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/creativehub-api/internal/database"
	"github.com/creativehub-api/internal/models"
)

// challengeRepo is the concrete implementation of ChallengeRepository
type challengeRepo struct {
	db *database.DB
}

// NewChallengeRepo creates a new challenge repository
func NewChallengeRepo(db *database.DB) ChallengeRepository {
	return &challengeRepo{db: db}
}

const challengeColumns = `id, title, description, category_id, user_id, deadline, is_active, created_at, updated_at`

// Create inserts a new challenge and fills in the generated ID
func (r *challengeRepo) Create(ctx context.Context, challenge *models.Challenge) error {
	query := `
		INSERT INTO challenges (title, description, category_id, user_id, deadline, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		challenge.Title, challenge.Description, challenge.CategoryID, challenge.UserID,
		challenge.Deadline, challenge.IsActive, challenge.CreatedAt, challenge.UpdatedAt,
	).Scan(&challenge.ID)
}

// Update rewrites a challenge's editable fields
func (r *challengeRepo) Update(ctx context.Context, challenge *models.Challenge) error {
	query := `
		UPDATE challenges
		SET title = $1, description = $2, category_id = $3, deadline = $4, updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query,
		challenge.Title, challenge.Description, challenge.CategoryID,
		challenge.Deadline, challenge.UpdatedAt, challenge.ID,
	)
	return err
}

// GetActive retrieves a challenge by ID only if it is still active.
// Inactive (soft-deleted) challenges are invisible to the public flow.
func (r *challengeRepo) GetActive(ctx context.Context, id int64) (*models.Challenge, error) {
	query := fmt.Sprintf(`SELECT %s FROM challenges WHERE id = $1 AND is_active = TRUE`, challengeColumns)
	return r.scanOne(ctx, query, id)
}

// GetByID retrieves a challenge regardless of its active flag
func (r *challengeRepo) GetByID(ctx context.Context, id int64) (*models.Challenge, error) {
	query := fmt.Sprintf(`SELECT %s FROM challenges WHERE id = $1`, challengeColumns)
	return r.scanOne(ctx, query, id)
}

func (r *challengeRepo) scanOne(ctx context.Context, query string, args ...interface{}) (*models.Challenge, error) {
	var c models.Challenge
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.Title, &c.Description, &c.CategoryID, &c.UserID,
		&c.Deadline, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListActive returns active challenges, optionally filtered by category
// and ordered per sortBy (recent by default, popular = most voted,
// oldest = creation ascending).
func (r *challengeRepo) ListActive(ctx context.Context, categoryID int64, sortBy string) ([]*models.Challenge, error) {
	query := `
		SELECT c.id, c.title, c.description, c.category_id, c.user_id, c.deadline,
		       c.is_active, c.created_at, c.updated_at
		FROM challenges c
		LEFT JOIN votes v ON v.challenge_id = c.id
		WHERE c.is_active = TRUE
	`
	var args []interface{}
	if categoryID > 0 {
		query += ` AND c.category_id = $1`
		args = append(args, categoryID)
	}
	query += ` GROUP BY c.id`

	switch sortBy {
	case models.SortPopular:
		query += ` ORDER BY COUNT(v.id) DESC, c.created_at DESC`
	case models.SortOldest:
		query += ` ORDER BY c.created_at ASC`
	default:
		query += ` ORDER BY c.created_at DESC`
	}

	return r.scanMany(ctx, query, args...)
}

// ListAll returns every challenge, newest first, for the admin dashboard
func (r *challengeRepo) ListAll(ctx context.Context) ([]*models.Challenge, error) {
	query := fmt.Sprintf(`SELECT %s FROM challenges ORDER BY created_at DESC`, challengeColumns)
	return r.scanMany(ctx, query)
}

func (r *challengeRepo) scanMany(ctx context.Context, query string, args ...interface{}) ([]*models.Challenge, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []*models.Challenge
	for rows.Next() {
		var c models.Challenge
		err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.CategoryID, &c.UserID,
			&c.Deadline, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, &c)
	}

	return challenges, rows.Err()
}

// SetActive flips a challenge's active flag. Soft delete and admin
// reactivation both go through here.
func (r *challengeRepo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE challenges SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	return err
}

// Count returns the total number of challenges
func (r *challengeRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM challenges").Scan(&count)
	return count, err
}

// CountComments returns the number of comments on a challenge
func (r *challengeRepo) CountComments(ctx context.Context, challengeID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comments WHERE challenge_id = $1", challengeID,
	).Scan(&count)
	return count, err
}
