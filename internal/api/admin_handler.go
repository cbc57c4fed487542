package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/creativehub-api/internal/security"
	"github.com/creativehub-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler handles the moderation dashboard endpoints
type AdminHandler struct {
	services *service.Services
	sec      *security.Security
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, sec *security.Security, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		sec:      sec,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// ListComments handles GET /admin/comments?search=
func (h *AdminHandler) ListComments(c *gin.Context) {
	search := c.Query("search")
	comments, err := h.services.Comment.AdminList(c.Request.Context(), search)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"search":   search,
		"flash":    h.sec.Flashes.Pop(c.Writer, c.Request),
	})
}

// DeleteComment handles POST /admin/comments/:id/delete
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}

	token := c.PostForm("_token")
	err = h.services.Comment.AdminDelete(c.Request.Context(), id, token)
	switch {
	case err == nil:
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashSuccess, "Comment deleted successfully.")
		c.Redirect(http.StatusSeeOther, "/admin/comments")

	case errors.Is(err, service.ErrCsrfMismatch):
		h.sec.Flashes.Add(c.Writer, c.Request, security.FlashError, "Invalid CSRF token. The comment was not deleted.")
		c.Redirect(http.StatusSeeOther, "/admin/comments")

	case errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})

	default:
		h.log.Error().Err(err).Int64("comment_id", id).Msg("Comment deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ListChallenges handles GET /admin/challenges?search=&filter=
func (h *AdminHandler) ListChallenges(c *gin.Context) {
	search := c.Query("search")
	filter := c.DefaultQuery("filter", "all")

	challenges, err := h.services.Challenge.AdminList(c.Request.Context(), search, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list challenges")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challenges": challenges,
		"search":     search,
		"filter":     filter,
	})
}

// ToggleChallenge handles POST /admin/challenges/:id/toggle. It flips
// the active flag both ways, so an admin can put a soft-deleted
// challenge back online.
func (h *AdminHandler) ToggleChallenge(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
		return
	}

	token := c.PostForm("_token")
	challenge, err := h.services.Challenge.ToggleActive(c.Request.Context(), id, token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"challenge": challenge})

	case errors.Is(err, service.ErrChallengeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})

	case errors.Is(err, service.ErrCsrfMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid CSRF token."})

	default:
		h.log.Error().Err(err).Int64("challenge_id", id).Msg("Challenge toggle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ListUsers handles GET /admin/users?search=&filter=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	search := c.Query("search")
	filter := c.DefaultQuery("filter", "all")

	users, err := h.services.User.AdminList(c.Request.Context(), search, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":  users,
		"search": search,
		"filter": filter,
	})
}

// ToggleUser handles POST /admin/users/:id/toggle
func (h *AdminHandler) ToggleUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user, err := h.services.User.ToggleActive(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"user": user})

	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})

	default:
		h.log.Error().Err(err).Int64("user_id", id).Msg("User toggle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
