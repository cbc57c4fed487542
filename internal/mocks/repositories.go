package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/creativehub-api/internal/models"
	"github.com/creativehub-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[int64]*models.User
	CreateError error
	nextID      int64
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[int64]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.Users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MockUserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	u, ok := m.Users[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	u.Active = active
	return nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// MockChallengeRepository is a mock implementation of ChallengeRepository
type MockChallengeRepository struct {
	Challenges map[int64]*models.Challenge
	Comments   *MockCommentRepository
	nextID     int64
}

func NewMockChallengeRepository() *MockChallengeRepository {
	return &MockChallengeRepository{Challenges: make(map[int64]*models.Challenge)}
}

func (m *MockChallengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	if challenge.ID == 0 {
		m.nextID++
		challenge.ID = m.nextID
	}
	m.Challenges[challenge.ID] = challenge
	return nil
}

func (m *MockChallengeRepository) GetActive(ctx context.Context, id int64) (*models.Challenge, error) {
	c, ok := m.Challenges[id]
	if !ok || !c.IsActive {
		return nil, nil
	}
	return c, nil
}

func (m *MockChallengeRepository) GetByID(ctx context.Context, id int64) (*models.Challenge, error) {
	return m.Challenges[id], nil
}

func (m *MockChallengeRepository) ListActive(ctx context.Context, categoryID int64, sortBy string) ([]*models.Challenge, error) {
	var challenges []*models.Challenge
	for _, c := range m.Challenges {
		if !c.IsActive {
			continue
		}
		if categoryID > 0 && (c.CategoryID == nil || *c.CategoryID != categoryID) {
			continue
		}
		challenges = append(challenges, c)
	}

	switch sortBy {
	case models.SortOldest:
		sort.Slice(challenges, func(i, j int) bool {
			return challenges[i].CreatedAt.Before(challenges[j].CreatedAt)
		})
	default:
		sort.Slice(challenges, func(i, j int) bool {
			return challenges[i].CreatedAt.After(challenges[j].CreatedAt)
		})
	}
	return challenges, nil
}

func (m *MockChallengeRepository) ListAll(ctx context.Context) ([]*models.Challenge, error) {
	challenges := make([]*models.Challenge, 0, len(m.Challenges))
	for _, c := range m.Challenges {
		challenges = append(challenges, c)
	}
	sort.Slice(challenges, func(i, j int) bool {
		return challenges[i].CreatedAt.After(challenges[j].CreatedAt)
	})
	return challenges, nil
}

func (m *MockChallengeRepository) Update(ctx context.Context, challenge *models.Challenge) error {
	if _, ok := m.Challenges[challenge.ID]; !ok {
		return fmt.Errorf("challenge %d not found", challenge.ID)
	}
	m.Challenges[challenge.ID] = challenge
	return nil
}

func (m *MockChallengeRepository) SetActive(ctx context.Context, id int64, active bool) error {
	c, ok := m.Challenges[id]
	if !ok {
		return fmt.Errorf("challenge %d not found", id)
	}
	c.IsActive = active
	return nil
}

func (m *MockChallengeRepository) Count(ctx context.Context) (int, error) {
	return len(m.Challenges), nil
}

func (m *MockChallengeRepository) CountComments(ctx context.Context, challengeID int64) (int, error) {
	if m.Comments == nil {
		return 0, nil
	}
	count := 0
	for _, c := range m.Comments.Comments {
		if c.ChallengeID == challengeID {
			count++
		}
	}
	return count, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments    []*models.Comment
	CreateError error
	nextID      int64
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if comment.ID == 0 {
		m.nextID++
		comment.ID = m.nextID
	} else if comment.ID > m.nextID {
		m.nextID = comment.ID
	}
	m.Comments = append(m.Comments, comment)
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	for _, c := range m.Comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockCommentRepository) ListByChallenge(ctx context.Context, challengeID int64) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, c := range m.Comments {
		if c.ChallengeID == challengeID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (m *MockCommentRepository) ListAll(ctx context.Context) ([]*models.Comment, error) {
	comments := make([]*models.Comment, len(m.Comments))
	copy(comments, m.Comments)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	for i, c := range m.Comments {
		if c.ID == id {
			m.Comments = append(m.Comments[:i], m.Comments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Comments), nil
}

// MockVoteRepository is a mock implementation of VoteRepository. Create
// mirrors the storage-layer unique constraint on (user, challenge).
type MockVoteRepository struct {
	Votes  []*models.Vote
	nextID int64
}

func NewMockVoteRepository() *MockVoteRepository {
	return &MockVoteRepository{}
}

func (m *MockVoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	for _, v := range m.Votes {
		if v.UserID == vote.UserID && v.ChallengeID == vote.ChallengeID {
			return repository.ErrDuplicateVote
		}
	}
	m.nextID++
	vote.ID = m.nextID
	m.Votes = append(m.Votes, vote)
	return nil
}

func (m *MockVoteRepository) Delete(ctx context.Context, userID, challengeID int64) error {
	for i, v := range m.Votes {
		if v.UserID == userID && v.ChallengeID == challengeID {
			m.Votes = append(m.Votes[:i], m.Votes[i+1:]...)
			return nil
		}
	}
	return repository.ErrVoteNotFound
}

func (m *MockVoteRepository) CountByChallenge(ctx context.Context, challengeID int64) (int, error) {
	count := 0
	for _, v := range m.Votes {
		if v.ChallengeID == challengeID {
			count++
		}
	}
	return count, nil
}

func (m *MockVoteRepository) Count(ctx context.Context) (int, error) {
	return len(m.Votes), nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	Categories []*models.Category
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	return m.Categories, nil
}

// NewMockRepositories wires every mock into a Repositories bundle ready
// for service and handler tests.
func NewMockRepositories() (*repository.Repositories, *MockUserRepository, *MockChallengeRepository, *MockCommentRepository, *MockVoteRepository) {
	users := NewMockUserRepository()
	challenges := NewMockChallengeRepository()
	comments := NewMockCommentRepository()
	votes := NewMockVoteRepository()
	challenges.Comments = comments

	repos := &repository.Repositories{
		User:      users,
		Challenge: challenges,
		Comment:   comments,
		Vote:      votes,
		Category:  NewMockCategoryRepository(),
	}
	return repos, users, challenges, comments, votes
}
