package models

import (
	"time"
)

// Comment represents a comment on a challenge. A non-nil ParentID makes
// it a reply; replies are displayed one level deep.
type Comment struct {
	ID          int64     `json:"id" db:"id"`
	ChallengeID int64     `json:"challenge_id" db:"challenge_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	ParentID    *int64    `json:"parent_id,omitempty" db:"parent_comment_id"`
	Content     string    `json:"content" db:"content"`
	AuthorName  string    `json:"author,omitempty" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsReply reports whether the comment has a parent.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// Content length limits. The structured comment form and the raw reply
// form enforce different maximums; see internal/validation.
const (
	MinCommentLen      = 5
	MaxCommentLen      = 1000
	MaxReplyCommentLen = 5000
)

// CommentNode is a root comment with its direct replies, as rendered on
// the challenge view.
type CommentNode struct {
	Comment
	Replies []Comment `json:"replies,omitempty"`
}
