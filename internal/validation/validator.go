package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/creativehub-api/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Policy selects which validation rules apply to a comment submission.
// The two entry points intentionally carry different length limits; see
// the policy docs below before unifying them.
type Policy int

const (
	// PolicyStructured is the full comment form used for new root
	// comments: required content, 5 to 1000 characters.
	PolicyStructured Policy = iota

	// PolicyReply is the minimal inline reply form: content non-blank
	// after trimming, up to 5000 characters.
	PolicyReply
)

func (p Policy) String() string {
	if p == PolicyReply {
		return "reply"
	}
	return "structured"
}

// Submission is a decoded comment payload. ParentRaw holds the
// parentComment form field exactly as submitted.
type Submission struct {
	Content   string
	ParentRaw string
	Token     string
}

// Policy returns the validation policy for this payload shape: a
// parentComment naming a real comment id (numeric, positive) means the
// inline reply form, anything else the structured form. Zero and
// negative ids can never resolve to a comment, so they fall through to
// the structured rules.
func (s Submission) Policy() Policy {
	if s.ParentRaw == "" {
		return PolicyStructured
	}
	id, err := strconv.ParseInt(s.ParentRaw, 10, 64)
	if err != nil || id <= 0 {
		return PolicyStructured
	}
	return PolicyReply
}

// ParentID returns the submitted parent comment id. Only meaningful
// when Policy() == PolicyReply.
func (s Submission) ParentID() int64 {
	id, _ := strconv.ParseInt(s.ParentRaw, 10, 64)
	return id
}

// Validate applies the policy's content rules and returns every
// violation found.
func (s Submission) Validate() []ValidationError {
	if s.Policy() == PolicyReply {
		return validateReply(s.Content)
	}
	return validateStructured(s.Content)
}

func validateStructured(content string) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "comment content cannot be empty"})
		return errors
	}

	length := utf8.RuneCountInString(content)
	if length < models.MinCommentLen {
		errors = append(errors, ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("comment must contain at least %d characters", models.MinCommentLen),
		})
	}
	if length > models.MaxCommentLen {
		errors = append(errors, ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("comment cannot exceed %d characters", models.MaxCommentLen),
		})
	}

	return errors
}

func validateReply(content string) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "comment content cannot be empty"})
		return errors
	}

	if utf8.RuneCountInString(content) > models.MaxReplyCommentLen {
		errors = append(errors, ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("comment cannot exceed %d characters", models.MaxReplyCommentLen),
		})
	}

	return errors
}

// ChallengeSubmission is a decoded challenge form payload. Deadline and
// category hold the form fields exactly as submitted; description and
// deadline are optional.
type ChallengeSubmission struct {
	Title       string
	Description string
	DeadlineRaw string
	CategoryRaw string
	Token       string
}

// DeadlineLayout is the datetime-local format the challenge form posts.
const DeadlineLayout = "2006-01-02T15:04"

// CategoryID returns the submitted category id, or 0 when the field is
// not a positive number.
func (s ChallengeSubmission) CategoryID() int64 {
	id, err := strconv.ParseInt(s.CategoryRaw, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// Deadline parses the optional deadline field. A blank field is a nil
// deadline, not an error.
func (s ChallengeSubmission) Deadline() (*time.Time, error) {
	if strings.TrimSpace(s.DeadlineRaw) == "" {
		return nil, nil
	}
	t, err := time.Parse(DeadlineLayout, s.DeadlineRaw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate applies the challenge form rules and returns every violation
// found.
func (s ChallengeSubmission) Validate() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(s.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title cannot be empty"})
	} else {
		length := utf8.RuneCountInString(s.Title)
		if length < models.MinChallengeTitleLen {
			errors = append(errors, ValidationError{
				Field:   "title",
				Message: fmt.Sprintf("title must contain at least %d characters", models.MinChallengeTitleLen),
			})
		}
		if length > models.MaxChallengeTitleLen {
			errors = append(errors, ValidationError{
				Field:   "title",
				Message: fmt.Sprintf("title cannot exceed %d characters", models.MaxChallengeTitleLen),
			})
		}
	}

	if utf8.RuneCountInString(s.Description) > models.MaxChallengeDescLen {
		errors = append(errors, ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("description cannot exceed %d characters", models.MaxChallengeDescLen),
		})
	}

	if s.CategoryID() == 0 {
		errors = append(errors, ValidationError{Field: "category", Message: "a category is required"})
	}

	if _, err := s.Deadline(); err != nil {
		errors = append(errors, ValidationError{
			Field:   "deadline",
			Message: "deadline must be a valid date and time",
			Value:   s.DeadlineRaw,
		})
	}

	return errors
}

// Combined flattens validation errors into one user-facing message, the
// way the comment flash reports them.
func Combined(errors []ValidationError) string {
	if len(errors) == 0 {
		return ""
	}
	messages := make([]string, 0, len(errors))
	for _, e := range errors {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, ", ")
}
