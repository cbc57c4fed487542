package repository

import (
	"context"
	"errors"

	"github.com/creativehub-api/internal/database"
	"github.com/creativehub-api/internal/models"
)

// Sentinel errors surfaced by the vote store. ErrDuplicateVote is the
// mapped storage-layer uniqueness violation on (user, challenge).
var (
	ErrDuplicateVote = errors.New("vote already exists for this user and challenge")
	ErrVoteNotFound  = errors.New("vote not found")
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Count(ctx context.Context) (int, error)
}

// ChallengeRepository defines the interface for challenge data operations
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *models.Challenge) error
	GetActive(ctx context.Context, id int64) (*models.Challenge, error)
	GetByID(ctx context.Context, id int64) (*models.Challenge, error)
	Update(ctx context.Context, challenge *models.Challenge) error
	ListActive(ctx context.Context, categoryID int64, sortBy string) ([]*models.Challenge, error)
	ListAll(ctx context.Context) ([]*models.Challenge, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Count(ctx context.Context) (int, error)
	CountComments(ctx context.Context, challengeID int64) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByChallenge(ctx context.Context, challengeID int64) ([]*models.Comment, error)
	ListAll(ctx context.Context) ([]*models.Comment, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// VoteRepository defines the interface for vote data operations. Create
// relies on the unique index on (user_id, challenge_id) and returns
// ErrDuplicateVote when it fires, so concurrent adds cannot both win.
type VoteRepository interface {
	Create(ctx context.Context, vote *models.Vote) error
	Delete(ctx context.Context, userID, challengeID int64) error
	CountByChallenge(ctx context.Context, challengeID int64) (int, error)
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the interface for category lookups
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User      UserRepository
	Challenge ChallengeRepository
	Comment   CommentRepository
	Vote      VoteRepository
	Category  CategoryRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepo(db),
		Challenge: NewChallengeRepo(db),
		Comment:   NewCommentRepo(db),
		Vote:      NewVoteRepo(db),
		Category:  NewCategoryRepo(db),
	}
}
