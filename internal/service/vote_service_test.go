package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/creativehub-api/internal/repository"
	"github.com/creativehub-api/internal/service"
)

func TestVoteAddThenDuplicate(t *testing.T) {
	svcs, _, challenges, _, votes := newTestServices(t)
	activeChallenge(t, challenges, 7)

	res, err := svcs.Vote.Add(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !res.Success || res.VoteCount != 1 {
		t.Errorf("Add() = {%v %q %d}, want success with count 1", res.Success, res.Message, res.VoteCount)
	}
	if res.Message != "Vote added successfully." {
		t.Errorf("Message = %q", res.Message)
	}

	res, err = svcs.Vote.Add(context.Background(), 42, 7)
	if !errors.Is(err, repository.ErrDuplicateVote) {
		t.Fatalf("second Add() error = %v, want ErrDuplicateVote", err)
	}
	if res.Success {
		t.Error("second Add() reported success")
	}
	if res.VoteCount != 1 {
		t.Errorf("VoteCount after duplicate = %d, want 1", res.VoteCount)
	}
	if res.Message != "You have already voted for this challenge." {
		t.Errorf("Message = %q", res.Message)
	}
	if len(votes.Votes) != 1 {
		t.Errorf("stored %d votes, want 1", len(votes.Votes))
	}
}

func TestVoteAddCountsPerChallenge(t *testing.T) {
	svcs, _, challenges, _, _ := newTestServices(t)
	activeChallenge(t, challenges, 7)
	activeChallenge(t, challenges, 8)

	for _, userID := range []int64{1, 2, 3} {
		if _, err := svcs.Vote.Add(context.Background(), userID, 7); err != nil {
			t.Fatalf("Add(user %d) error = %v", userID, err)
		}
	}
	res, err := svcs.Vote.Add(context.Background(), 1, 8)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if res.VoteCount != 1 {
		t.Errorf("challenge 8 VoteCount = %d, want 1", res.VoteCount)
	}
}

func TestVoteRemove(t *testing.T) {
	svcs, _, challenges, _, votes := newTestServices(t)
	activeChallenge(t, challenges, 7)
	if _, err := svcs.Vote.Add(context.Background(), 42, 7); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	res, err := svcs.Vote.Remove(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if !res.Success || res.VoteCount != 0 {
		t.Errorf("Remove() = {%v %d}, want success with count 0", res.Success, res.VoteCount)
	}
	if res.Message != "Vote removed successfully." {
		t.Errorf("Message = %q", res.Message)
	}
	if len(votes.Votes) != 0 {
		t.Errorf("stored %d votes, want 0", len(votes.Votes))
	}
}

func TestVoteRemoveWithoutVote(t *testing.T) {
	svcs, _, challenges, _, _ := newTestServices(t)
	activeChallenge(t, challenges, 7)
	if _, err := svcs.Vote.Add(context.Background(), 1, 7); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	res, err := svcs.Vote.Remove(context.Background(), 42, 7)
	if !errors.Is(err, repository.ErrVoteNotFound) {
		t.Fatalf("Remove() error = %v, want ErrVoteNotFound", err)
	}
	if res.Success {
		t.Error("Remove() reported success")
	}
	if res.VoteCount != 1 {
		t.Errorf("VoteCount = %d, want 1 unchanged", res.VoteCount)
	}
	if res.Message != "You have not voted for this challenge." {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestVoteOnMissingChallenge(t *testing.T) {
	svcs, _, challenges, _, _ := newTestServices(t)
	c := activeChallenge(t, challenges, 7)
	c.IsActive = false

	if _, err := svcs.Vote.Add(context.Background(), 42, 7); !errors.Is(err, service.ErrChallengeNotFound) {
		t.Errorf("Add() error = %v, want ErrChallengeNotFound", err)
	}
	if _, err := svcs.Vote.Remove(context.Background(), 42, 7); !errors.Is(err, service.ErrChallengeNotFound) {
		t.Errorf("Remove() error = %v, want ErrChallengeNotFound", err)
	}
	if _, err := svcs.Vote.Add(context.Background(), 42, 404); !errors.Is(err, service.ErrChallengeNotFound) {
		t.Errorf("Add() on unknown id error = %v, want ErrChallengeNotFound", err)
	}
}
