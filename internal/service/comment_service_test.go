package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/creativehub-api/internal/mocks"
	"github.com/creativehub-api/internal/models"
	"github.com/creativehub-api/internal/security"
	"github.com/creativehub-api/internal/service"
	"github.com/creativehub-api/internal/validation"
)

func newTestServices(t *testing.T) (*service.Services, *security.CSRF, *mocks.MockChallengeRepository, *mocks.MockCommentRepository, *mocks.MockVoteRepository) {
	t.Helper()
	repos, _, challenges, comments, votes := mocks.NewMockRepositories()
	csrf := security.NewCSRF([]byte("0123456789abcdef0123456789abcdef"), nil, time.Minute)
	svcs := service.NewServices(repos, csrf, zerolog.Nop())
	return svcs, csrf, challenges, comments, votes
}

func submitToken(t *testing.T, csrf *security.CSRF) string {
	t.Helper()
	token, err := csrf.Generate(security.TokenSubmit)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return token
}

func activeChallenge(t *testing.T, challenges *mocks.MockChallengeRepository, id int64) *models.Challenge {
	t.Helper()
	c := &models.Challenge{ID: id, UserID: 1, Title: "Weekly sketch", IsActive: true}
	if err := challenges.Create(context.Background(), c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return c
}

func TestSubmitRootComment(t *testing.T) {
	svcs, csrf, challenges, comments, _ := newTestServices(t)
	activeChallenge(t, challenges, 7)

	created, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 7,
		UserID:      42,
		Submission: validation.Submission{
			Content: "Really inspiring take on the theme.",
			Token:   submitToken(t, csrf),
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if created.ParentID != nil {
		t.Errorf("ParentID = %v, want nil", *created.ParentID)
	}
	if created.ChallengeID != 7 || created.UserID != 42 {
		t.Errorf("comment attributed to challenge %d user %d", created.ChallengeID, created.UserID)
	}
	if len(comments.Comments) != 1 {
		t.Errorf("stored %d comments, want 1", len(comments.Comments))
	}
}

func TestSubmitReplyAttachesSameChallengeParent(t *testing.T) {
	svcs, csrf, challenges, comments, _ := newTestServices(t)
	activeChallenge(t, challenges, 7)
	parent := &models.Comment{ID: 30, ChallengeID: 7, UserID: 2, Content: "First!"}
	if err := comments.Create(context.Background(), parent); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	created, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 7,
		UserID:      42,
		Submission: validation.Submission{
			Content:   "Nice work!",
			ParentRaw: "30",
			Token:     submitToken(t, csrf),
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if created.ParentID == nil || *created.ParentID != 30 {
		t.Fatalf("ParentID = %v, want 30", created.ParentID)
	}
}

func TestSubmitReplyCrossChallengeParentDegradesToRoot(t *testing.T) {
	svcs, csrf, challenges, comments, _ := newTestServices(t)
	activeChallenge(t, challenges, 7)
	activeChallenge(t, challenges, 8)
	parent := &models.Comment{ID: 30, ChallengeID: 8, UserID: 2, Content: "Elsewhere"}
	if err := comments.Create(context.Background(), parent); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	created, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 7,
		UserID:      42,
		Submission: validation.Submission{
			Content:   "Saved anyway",
			ParentRaw: "30",
			Token:     submitToken(t, csrf),
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if created.ParentID != nil {
		t.Errorf("ParentID = %v, want nil for cross-challenge parent", *created.ParentID)
	}
	if created.ChallengeID != 7 {
		t.Errorf("ChallengeID = %d, want 7", created.ChallengeID)
	}
}

func TestSubmitReplyMissingParentDegradesToRoot(t *testing.T) {
	svcs, csrf, challenges, _, _ := newTestServices(t)
	activeChallenge(t, challenges, 7)

	created, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 7,
		UserID:      42,
		Submission: validation.Submission{
			Content:   "Orphan reply",
			ParentRaw: "999",
			Token:     submitToken(t, csrf),
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if created.ParentID != nil {
		t.Errorf("ParentID = %v, want nil for missing parent", *created.ParentID)
	}
}

func TestSubmitZeroParentTreatedAsRootForm(t *testing.T) {
	svcs, csrf, challenges, comments, _ := newTestServices(t)
	activeChallenge(t, challenges, 7)

	_, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 7,
		UserID:      42,
		Submission: validation.Submission{
			Content:   "hey",
			ParentRaw: "0",
			Token:     submitToken(t, csrf),
		},
	})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("Submit() error = %v, want ErrValidation under structured rules", err)
	}
	if len(comments.Comments) != 0 {
		t.Errorf("stored %d comments, want 0", len(comments.Comments))
	}

	created, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 7,
		UserID:      42,
		Submission: validation.Submission{
			Content:   "Long enough for the structured form",
			ParentRaw: "0",
			Token:     submitToken(t, csrf),
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if created.ParentID != nil {
		t.Errorf("ParentID = %v, want nil", *created.ParentID)
	}
}

func TestSubmitRejectsInvalidCsrf(t *testing.T) {
	svcs, _, challenges, comments, _ := newTestServices(t)
	activeChallenge(t, challenges, 7)

	_, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 7,
		UserID:      42,
		Submission: validation.Submission{
			Content: "Totally valid content",
			Token:   "forged",
		},
	})
	if !errors.Is(err, service.ErrCsrfMismatch) {
		t.Fatalf("Submit() error = %v, want ErrCsrfMismatch", err)
	}
	if len(comments.Comments) != 0 {
		t.Errorf("stored %d comments, want 0", len(comments.Comments))
	}
}

func TestSubmitRejectsInvalidContent(t *testing.T) {
	svcs, csrf, challenges, comments, _ := newTestServices(t)
	activeChallenge(t, challenges, 7)

	_, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 7,
		UserID:      42,
		Submission: validation.Submission{
			Content: "hey",
			Token:   submitToken(t, csrf),
		},
	})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("Submit() error = %v, want ErrValidation", err)
	}
	if len(comments.Comments) != 0 {
		t.Errorf("stored %d comments, want 0", len(comments.Comments))
	}
}

func TestSubmitLongReplyAcceptedWhereRootIsNot(t *testing.T) {
	svcs, csrf, challenges, comments, _ := newTestServices(t)
	activeChallenge(t, challenges, 7)
	parent := &models.Comment{ID: 30, ChallengeID: 7, UserID: 2, Content: "First!"}
	if err := comments.Create(context.Background(), parent); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	long := strings.Repeat("x", 3000)

	_, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 7,
		UserID:      42,
		Submission:  validation.Submission{Content: long, Token: submitToken(t, csrf)},
	})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("root submit error = %v, want ErrValidation", err)
	}

	created, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 7,
		UserID:      42,
		Submission:  validation.Submission{Content: long, ParentRaw: "30", Token: submitToken(t, csrf)},
	})
	if err != nil {
		t.Fatalf("reply submit error = %v", err)
	}
	if created.ParentID == nil || *created.ParentID != 30 {
		t.Errorf("ParentID = %v, want 30", created.ParentID)
	}
}

func TestSubmitRejectsMissingChallenge(t *testing.T) {
	svcs, csrf, _, comments, _ := newTestServices(t)

	_, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 404,
		UserID:      42,
		Submission: validation.Submission{
			Content: "Shouting into the void",
			Token:   submitToken(t, csrf),
		},
	})
	if !errors.Is(err, service.ErrChallengeNotFound) {
		t.Fatalf("Submit() error = %v, want ErrChallengeNotFound", err)
	}
	if len(comments.Comments) != 0 {
		t.Errorf("stored %d comments, want 0", len(comments.Comments))
	}
}

func TestSubmitRejectsInactiveChallenge(t *testing.T) {
	svcs, csrf, challenges, _, _ := newTestServices(t)
	c := activeChallenge(t, challenges, 7)
	c.IsActive = false

	_, err := svcs.Comment.Submit(context.Background(), &service.SubmitCommentRequest{
		ChallengeID: 7,
		UserID:      42,
		Submission: validation.Submission{
			Content: "Too late for this one",
			Token:   submitToken(t, csrf),
		},
	})
	if !errors.Is(err, service.ErrChallengeNotFound) {
		t.Fatalf("Submit() error = %v, want ErrChallengeNotFound", err)
	}
}

func TestAdminDelete(t *testing.T) {
	svcs, csrf, _, comments, _ := newTestServices(t)
	if err := comments.Create(context.Background(), &models.Comment{ID: 5, ChallengeID: 1, UserID: 1, Content: "spam"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	token, err := csrf.Generate(security.ActionTokenID("delete_comment", 5))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := svcs.Comment.AdminDelete(context.Background(), 5, token); err != nil {
		t.Fatalf("AdminDelete() error = %v", err)
	}
	if len(comments.Comments) != 0 {
		t.Errorf("stored %d comments, want 0 after delete", len(comments.Comments))
	}

	if err := svcs.Comment.AdminDelete(context.Background(), 5, token); !errors.Is(err, service.ErrCommentNotFound) {
		t.Errorf("second AdminDelete() error = %v, want ErrCommentNotFound", err)
	}
}

func TestAdminDeleteRejectsForeignToken(t *testing.T) {
	svcs, csrf, _, comments, _ := newTestServices(t)
	if err := comments.Create(context.Background(), &models.Comment{ID: 5, ChallengeID: 1, UserID: 1, Content: "spam"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	token, err := csrf.Generate(security.ActionTokenID("delete_comment", 6))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := svcs.Comment.AdminDelete(context.Background(), 5, token); !errors.Is(err, service.ErrCsrfMismatch) {
		t.Fatalf("AdminDelete() error = %v, want ErrCsrfMismatch", err)
	}
	if len(comments.Comments) != 1 {
		t.Errorf("stored %d comments, want 1", len(comments.Comments))
	}
}
