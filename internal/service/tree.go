package service

import (
	"sort"

	"github.com/creativehub-api/internal/models"
)

// BuildTree arranges a challenge's comments into root nodes with their
// replies. Roots are ordered by creation time descending; equal
// timestamps keep arrival order (the input slice order). Replies stay
// in arrival order under their root. A reply whose parent is itself a
// reply is attached to the chain's root so it still renders in the flat
// one-level view.
//
// Pure function of its input; the slice is not mutated.
func BuildTree(comments []*models.Comment) []models.CommentNode {
	byID := make(map[int64]*models.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	nodeIndex := make(map[int64]*models.CommentNode, len(comments))
	roots := make([]*models.CommentNode, 0, len(comments))
	for _, c := range comments {
		if c.ParentID != nil {
			continue
		}
		node := &models.CommentNode{Comment: *c}
		nodeIndex[c.ID] = node
		roots = append(roots, node)
	}

	for _, c := range comments {
		if c.ParentID == nil {
			continue
		}
		rootID, ok := rootOf(c, byID)
		if !ok {
			// orphaned reply: its parent chain never reaches a known
			// root, so it cannot be displayed
			continue
		}
		if node := nodeIndex[rootID]; node != nil {
			node.Replies = append(node.Replies, *c)
		}
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})

	result := make([]models.CommentNode, 0, len(roots))
	for _, node := range roots {
		result = append(result, *node)
	}
	return result
}

// rootOf walks the parent chain up to a root comment. The visited set
// guards against a cyclic parent chain in bad data.
func rootOf(c *models.Comment, byID map[int64]*models.Comment) (int64, bool) {
	visited := map[int64]bool{c.ID: true}
	cur := c
	for cur.ParentID != nil {
		parent, ok := byID[*cur.ParentID]
		if !ok || visited[parent.ID] {
			return 0, false
		}
		visited[parent.ID] = true
		cur = parent
	}
	return cur.ID, true
}
