package service

import (
	"context"
	"errors"

	"github.com/creativehub-api/internal/models"
	"github.com/creativehub-api/internal/repository"
	"github.com/creativehub-api/internal/security"
	"github.com/rs/zerolog"
)

// Service-level failures the handlers translate into responses. All of
// them are request-scoped; nothing here is fatal to the process.
var (
	ErrChallengeNotFound = errors.New("challenge not found or inactive")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrCsrfMismatch      = errors.New("invalid CSRF token")
	ErrForbidden         = errors.New("not allowed")
	ErrValidation        = errors.New("validation failed")
)

// CommentService defines comment submission and browsing operations
type CommentService interface {
	Submit(ctx context.Context, req *SubmitCommentRequest) (*models.Comment, error)
	TreeForChallenge(ctx context.Context, challengeID int64) ([]models.CommentNode, error)
	AdminList(ctx context.Context, search string) ([]*models.Comment, error)
	AdminDelete(ctx context.Context, id int64, token string) error
}

// VoteService defines the vote ledger operations
type VoteService interface {
	Add(ctx context.Context, userID, challengeID int64) (*models.VoteResult, error)
	Remove(ctx context.Context, userID, challengeID int64) (*models.VoteResult, error)
}

// ChallengeService defines challenge authoring, browsing and moderation
// operations
type ChallengeService interface {
	Create(ctx context.Context, req *SubmitChallengeRequest) (*models.Challenge, error)
	Update(ctx context.Context, id int64, req *SubmitChallengeRequest) (*models.Challenge, error)
	List(ctx context.Context, categoryID int64, sortBy string) ([]*models.Challenge, map[int64]models.ChallengeStat, error)
	Categories(ctx context.Context) ([]*models.Category, error)
	View(ctx context.Context, id int64) (*models.ChallengeView, error)
	SoftDelete(ctx context.Context, id int64, actor *models.User, token string) error
	ToggleActive(ctx context.Context, id int64, token string) (*models.Challenge, error)
	AdminList(ctx context.Context, search, filter string) ([]*models.Challenge, error)
}

// UserService defines admin user moderation operations
type UserService interface {
	AdminList(ctx context.Context, search, filter string) ([]*models.User, error)
	ToggleActive(ctx context.Context, id int64) (*models.User, error)
}

// Services holds all service interfaces
type Services struct {
	Comment   CommentService
	Vote      VoteService
	Challenge ChallengeService
	User      UserService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, csrf *security.CSRF, log zerolog.Logger) *Services {
	commentSvc := newCommentService(repos, csrf, log)
	return &Services{
		Comment:   commentSvc,
		Vote:      newVoteService(repos, log),
		Challenge: newChallengeService(repos, commentSvc, csrf, log),
		User:      newUserService(repos, log),
	}
}
