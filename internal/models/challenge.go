package models

import (
	"time"
)

// Challenge represents a creative challenge posted by a user. Deletion
// is soft: IsActive is flipped off and the row stays.
type Challenge struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	CategoryID  *int64     `json:"category_id,omitempty" db:"category_id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	Deadline    *time.Time `json:"deadline,omitempty" db:"deadline"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Challenge form limits
const (
	MinChallengeTitleLen = 3
	MaxChallengeTitleLen = 255
	MaxChallengeDescLen  = 5000
)

// Category groups challenges for index filtering
type Category struct {
	ID    int64  `json:"id" db:"id"`
	Label string `json:"label" db:"label"`
}

// Challenge list sort orders
const (
	SortRecent  = "recent"
	SortPopular = "popular"
	SortOldest  = "oldest"
)

// ChallengeStat carries the per-challenge counters shown on the index.
type ChallengeStat struct {
	VoteCount    int `json:"voteCount"`
	CommentCount int `json:"commentCount"`
}

// ChallengeView is the view model for a single challenge page.
type ChallengeView struct {
	Challenge Challenge     `json:"challenge"`
	VoteCount int           `json:"voteCount"`
	Comments  []CommentNode `json:"comments"`
}
