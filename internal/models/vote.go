package models

import (
	"time"
)

// Vote records one user's vote on a challenge. The (user, challenge)
// pair is unique at the storage layer.
type Vote struct {
	ID          int64     `json:"id" db:"id"`
	ChallengeID int64     `json:"challenge_id" db:"challenge_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// VoteResult is the JSON payload returned by the vote endpoints. The
// count is always the current stored count so the client can resync its
// display without a second request.
type VoteResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	VoteCount int    `json:"voteCount"`
}
