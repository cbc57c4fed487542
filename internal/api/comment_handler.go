package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/creativehub-api/internal/security"
	"github.com/creativehub-api/internal/service"
	"github.com/creativehub-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment submission
type CommentHandler struct {
	services *service.Services
	sec      *security.Security
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, sec *security.Security, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		sec:      sec,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// Create handles POST /challenge/:id/comment. One endpoint serves both
// the structured comment form and the inline reply form; the payload
// shape picks the policy. Every outcome redirects back to the challenge
// view with a flash message.
func (h *CommentHandler) Create(c *gin.Context) {
	challengeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "This challenge does not exist.")
		c.Redirect(http.StatusSeeOther, "/challenges")
		return
	}

	user := currentUser(c)
	req := &service.SubmitCommentRequest{
		ChallengeID: challengeID,
		UserID:      user.ID,
		Submission: validation.Submission{
			Content:   c.PostForm("content"),
			ParentRaw: c.PostForm("parentComment"),
			Token:     c.PostForm("_token"),
		},
	}

	challengeURL := fmt.Sprintf("/challenge/%d", challengeID)

	_, err = h.services.Comment.Submit(c.Request.Context(), req)
	switch {
	case err == nil:
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashSuccess, "Your comment has been added successfully.")
		c.Redirect(http.StatusSeeOther, challengeURL)

	case errors.Is(err, service.ErrChallengeNotFound):
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "This challenge does not exist.")
		c.Redirect(http.StatusSeeOther, "/challenges")

	case errors.Is(err, service.ErrCsrfMismatch):
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "Invalid CSRF token, please try again.")
		c.Redirect(http.StatusSeeOther, challengeURL)

	case errors.Is(err, service.ErrValidation):
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "Error adding comment: "+userMessage(err))
		c.Redirect(http.StatusSeeOther, challengeURL)

	default:
		h.log.Error().Err(err).Int64("challenge_id", challengeID).Msg("Comment submission failed")
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "An error occurred while submitting the form. Please try again.")
		c.Redirect(http.StatusSeeOther, challengeURL)
	}
}

// userMessage strips the sentinel prefix from a wrapped validation
// error, leaving the combined field messages.
func userMessage(err error) string {
	msg := err.Error()
	prefix := service.ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
