package service_test

import (
	"testing"
	"time"

	"github.com/creativehub-api/internal/models"
	"github.com/creativehub-api/internal/service"
)

func comment(id int64, parent *int64, createdAt time.Time) *models.Comment {
	return &models.Comment{
		ID:          id,
		ChallengeID: 1,
		UserID:      1,
		ParentID:    parent,
		Content:     "comment",
		CreatedAt:   createdAt,
	}
}

func ptr(id int64) *int64 { return &id }

func TestBuildTree_RootsSortedByRecency(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	comments := []*models.Comment{
		comment(1, nil, base),
		comment(2, nil, base.Add(2*time.Hour)),
		comment(3, nil, base.Add(time.Hour)),
	}

	tree := service.BuildTree(comments)

	if len(tree) != 3 {
		t.Fatalf("Expected 3 roots, got %d", len(tree))
	}
	wantOrder := []int64{2, 3, 1}
	for i, want := range wantOrder {
		if tree[i].ID != want {
			t.Errorf("Root %d: expected id %d, got %d", i, want, tree[i].ID)
		}
	}
}

func TestBuildTree_TiesKeepArrivalOrder(t *testing.T) {
	at := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	comments := []*models.Comment{
		comment(10, nil, at),
		comment(11, nil, at),
		comment(12, nil, at),
	}

	tree := service.BuildTree(comments)

	wantOrder := []int64{10, 11, 12}
	for i, want := range wantOrder {
		if tree[i].ID != want {
			t.Errorf("Root %d: expected id %d, got %d", i, want, tree[i].ID)
		}
	}
}

func TestBuildTree_RepliesAttachToRootInInsertionOrder(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	comments := []*models.Comment{
		comment(1, nil, base),
		comment(2, ptr(1), base.Add(time.Minute)),
		comment(3, ptr(1), base.Add(2*time.Minute)),
		comment(4, nil, base.Add(3*time.Minute)),
	}

	tree := service.BuildTree(comments)

	if len(tree) != 2 {
		t.Fatalf("Expected 2 roots, got %d", len(tree))
	}
	// root 4 is more recent and comes first
	if tree[0].ID != 4 || tree[1].ID != 1 {
		t.Fatalf("Unexpected root order: %d, %d", tree[0].ID, tree[1].ID)
	}
	replies := tree[1].Replies
	if len(replies) != 2 {
		t.Fatalf("Expected 2 replies on root 1, got %d", len(replies))
	}
	if replies[0].ID != 2 || replies[1].ID != 3 {
		t.Errorf("Replies out of insertion order: %d, %d", replies[0].ID, replies[1].ID)
	}
}

func TestBuildTree_OnlyRootsReturnedAtTopLevel(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	comments := []*models.Comment{
		comment(1, nil, base),
		comment(2, ptr(1), base.Add(time.Minute)),
	}

	tree := service.BuildTree(comments)

	for _, node := range tree {
		if node.ParentID != nil {
			t.Errorf("Non-root comment %d returned at top level", node.ID)
		}
	}
}

func TestBuildTree_ReplyToReplyFlattensUnderRoot(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	comments := []*models.Comment{
		comment(1, nil, base),
		comment(2, ptr(1), base.Add(time.Minute)),
		comment(3, ptr(2), base.Add(2*time.Minute)),
	}

	tree := service.BuildTree(comments)

	if len(tree) != 1 {
		t.Fatalf("Expected 1 root, got %d", len(tree))
	}
	if len(tree[0].Replies) != 2 {
		t.Fatalf("Expected both replies under root, got %d", len(tree[0].Replies))
	}
}

func TestBuildTree_OrphanReplySkipped(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	comments := []*models.Comment{
		comment(1, nil, base),
		comment(2, ptr(99), base.Add(time.Minute)),
	}

	tree := service.BuildTree(comments)

	if len(tree) != 1 {
		t.Fatalf("Expected 1 root, got %d", len(tree))
	}
	if len(tree[0].Replies) != 0 {
		t.Errorf("Orphan reply should not attach anywhere, got %d replies", len(tree[0].Replies))
	}
}

func TestBuildTree_EmptyInput(t *testing.T) {
	if tree := service.BuildTree(nil); len(tree) != 0 {
		t.Errorf("Expected empty tree, got %d nodes", len(tree))
	}
}
