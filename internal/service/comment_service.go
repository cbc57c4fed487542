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

// SubmitCommentRequest carries one comment submission through the
// single entry point. The payload shape picks the validation policy.
type SubmitCommentRequest struct {
	ChallengeID int64
	UserID      int64
	Submission  validation.Submission
}

// commentService is the concrete implementation of CommentService
type commentService struct {
	repos *repository.Repositories
	csrf  *security.CSRF
	log   zerolog.Logger
}

func newCommentService(repos *repository.Repositories, csrf *security.CSRF, log zerolog.Logger) *commentService {
	return &commentService{
		repos: repos,
		csrf:  csrf,
		log:   log.With().Str("service", "comment").Logger(),
	}
}

// Submit validates and persists one comment. Both policies require the
// "submit" CSRF token; the reply policy additionally resolves the
// parent and attaches it only when it belongs to the same challenge.
// Otherwise the comment is saved as a root, never rejected.
func (s *commentService) Submit(ctx context.Context, req *SubmitCommentRequest) (*models.Comment, error) {
	challenge, err := s.repos.Challenge.GetActive(ctx, req.ChallengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}

	sub := req.Submission
	if !s.csrf.IsValid(security.TokenSubmit, sub.Token) {
		return nil, ErrCsrfMismatch
	}

	if errs := sub.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validation.Combined(errs))
	}

	now := time.Now()
	comment := &models.Comment{
		ChallengeID: challenge.ID,
		UserID:      req.UserID,
		Content:     sub.Content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if sub.Policy() == validation.PolicyReply {
		parentID := sub.ParentID()
		parent, err := s.repos.Comment.GetByID(ctx, parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent comment: %w", err)
		}
		if parent != nil && parent.ChallengeID == challenge.ID {
			comment.ParentID = &parentID
		} else {
			// lenient: unresolvable or cross-challenge parent degrades
			// the reply to a root comment
			s.log.Warn().
				Int64("parent_id", parentID).
				Int64("challenge_id", challenge.ID).
				Msg("Parent comment dropped, saving as root")
		}
	}

	if err := s.repos.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	s.log.Info().
		Int64("comment_id", comment.ID).
		Int64("challenge_id", challenge.ID).
		Str("policy", sub.Policy().String()).
		Bool("reply", comment.IsReply()).
		Msg("Comment created")

	return comment, nil
}

// TreeForChallenge loads all comments on a challenge and arranges them
// into root nodes with their replies.
func (s *commentService) TreeForChallenge(ctx context.Context, challengeID int64) ([]models.CommentNode, error) {
	comments, err := s.repos.Comment.ListByChallenge(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	return BuildTree(comments), nil
}

// AdminList returns all comments newest first, optionally filtered by a
// case-insensitive search over content and author pseudo.
func (s *commentService) AdminList(ctx context.Context, search string) ([]*models.Comment, error) {
	comments, err := s.repos.Comment.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return comments, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]*models.Comment, 0, len(comments))
	for _, c := range comments {
		if strings.Contains(strings.ToLower(c.Content), needle) ||
			strings.Contains(strings.ToLower(c.AuthorName), needle) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// AdminDelete hard-deletes a comment after checking its per-comment
// CSRF token.
func (s *commentService) AdminDelete(ctx context.Context, id int64, token string) error {
	if !s.csrf.IsValid(security.ActionTokenID("delete_comment", id), token) {
		return ErrCsrfMismatch
	}

	comment, err := s.repos.Comment.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load comment: %w", err)
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if err := s.repos.Comment.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.log.Info().Int64("comment_id", id).Msg("Comment deleted")
	return nil
}
