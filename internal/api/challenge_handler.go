package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/creativehub-api/internal/models"
	"github.com/creativehub-api/internal/security"
	"github.com/creativehub-api/internal/service"
	"github.com/creativehub-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ChallengeHandler handles challenge browsing, authoring and deletion
type ChallengeHandler struct {
	services *service.Services
	sec      *security.Security
	log      zerolog.Logger
}

// NewChallengeHandler creates a new ChallengeHandler
func NewChallengeHandler(services *service.Services, sec *security.Security, log zerolog.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		services: services,
		sec:      sec,
		log:      log.With().Str("handler", "challenge").Logger(),
	}
}

// Index handles GET /challenges with optional category filter and sort
// (recent, popular, oldest).
func (h *ChallengeHandler) Index(c *gin.Context) {
	categoryID, _ := strconv.ParseInt(c.Query("category"), 10, 64)
	sortBy := c.DefaultQuery("sort", models.SortRecent)

	ctx := c.Request.Context()
	challenges, stats, err := h.services.Challenge.List(ctx, categoryID, sortBy)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list challenges")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	categories, err := h.services.Challenge.Categories(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := h.sec.CSRF.Generate(security.TokenChallenge)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate CSRF token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challenges":     challenges,
		"challengeStats": stats,
		"categories":     categories,
		"selectCategory": categoryID,
		"selectSort":     sortBy,
		"csrfToken":      token,
		"flash":          h.sec.Flashes.Pop(c.Writer, c.Request),
	})
}

// Create handles POST /challenges: the challenge form with title,
// optional description and deadline, and a required category. Every
// outcome redirects with a flash message.
func (h *ChallengeHandler) Create(c *gin.Context) {
	user := currentUser(c)
	req := &service.SubmitChallengeRequest{
		Actor:      user,
		Submission: challengeSubmission(c),
	}

	challenge, err := h.services.Challenge.Create(c.Request.Context(), req)
	switch {
	case err == nil:
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashSuccess, "Your challenge has been created successfully.")
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/challenge/%d", challenge.ID))

	case errors.Is(err, service.ErrCsrfMismatch):
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "Invalid CSRF token, please try again.")
		c.Redirect(http.StatusSeeOther, "/challenges")

	case errors.Is(err, service.ErrValidation):
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "Error creating challenge: "+userMessage(err))
		c.Redirect(http.StatusSeeOther, "/challenges")

	default:
		h.log.Error().Err(err).Msg("Challenge creation failed")
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "An error occurred while submitting the form. Please try again.")
		c.Redirect(http.StatusSeeOther, "/challenges")
	}
}

// Update handles POST /challenge/:id/edit with the same form as Create.
func (h *ChallengeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "This challenge does not exist.")
		c.Redirect(http.StatusSeeOther, "/challenges")
		return
	}

	req := &service.SubmitChallengeRequest{
		Actor:      currentUser(c),
		Submission: challengeSubmission(c),
	}
	challengeURL := fmt.Sprintf("/challenge/%d", id)

	_, err = h.services.Challenge.Update(c.Request.Context(), id, req)
	switch {
	case err == nil:
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashSuccess, "Your challenge has been updated successfully.")
		c.Redirect(http.StatusSeeOther, challengeURL)

	case errors.Is(err, service.ErrChallengeNotFound):
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "This challenge does not exist.")
		c.Redirect(http.StatusSeeOther, "/challenges")

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to edit this challenge."})

	case errors.Is(err, service.ErrCsrfMismatch):
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "Invalid CSRF token, please try again.")
		c.Redirect(http.StatusSeeOther, challengeURL)

	case errors.Is(err, service.ErrValidation):
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "Error updating challenge: "+userMessage(err))
		c.Redirect(http.StatusSeeOther, challengeURL)

	default:
		h.log.Error().Err(err).Int64("challenge_id", id).Msg("Challenge update failed")
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "An error occurred while submitting the form. Please try again.")
		c.Redirect(http.StatusSeeOther, challengeURL)
	}
}

// challengeSubmission decodes the challenge form fields
func challengeSubmission(c *gin.Context) validation.ChallengeSubmission {
	return validation.ChallengeSubmission{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		DeadlineRaw: c.PostForm("deadline"),
		CategoryRaw: c.PostForm("category"),
		Token:       c.PostForm("_token"),
	}
}

// Show handles GET /challenge/:id: the challenge view model with vote
// count, comment tree, pending flash messages and a fresh comment-form
// CSRF token.
func (h *ChallengeHandler) Show(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "This challenge does not exist.")
		c.Redirect(http.StatusSeeOther, "/challenges")
		return
	}

	view, err := h.services.Challenge.View(c.Request.Context(), id)
	if errors.Is(err, service.ErrChallengeNotFound) {
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "This challenge does not exist.")
		c.Redirect(http.StatusSeeOther, "/challenges")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("challenge_id", id).Msg("Failed to build challenge view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := h.sec.CSRF.Generate(security.TokenSubmit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate CSRF token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challenge": view.Challenge,
		"voteCount": view.VoteCount,
		"comments":  view.Comments,
		"csrfToken": token,
		"flash":     h.sec.Flashes.Pop(c.Writer, c.Request),
	})
}

// Delete handles POST /challenge/:id/delete: soft delete by the owner
// or an admin, CSRF-checked per challenge.
func (h *ChallengeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "This challenge does not exist.")
		c.Redirect(http.StatusSeeOther, "/challenges")
		return
	}

	user := currentUser(c)
	token := c.PostForm("_token")

	err = h.services.Challenge.SoftDelete(c.Request.Context(), id, user, token)
	switch {
	case err == nil:
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashSuccess, "Your challenge has been deleted successfully.")
		c.Redirect(http.StatusSeeOther, "/challenges")

	case errors.Is(err, service.ErrChallengeNotFound):
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "This challenge does not exist.")
		c.Redirect(http.StatusSeeOther, "/challenges")

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to delete this challenge."})

	case errors.Is(err, service.ErrCsrfMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid CSRF token."})

	default:
		h.log.Error().Err(err).Int64("challenge_id", id).Msg("Challenge deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
