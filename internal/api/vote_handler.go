package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/creativehub-api/internal/models"
	"github.com/creativehub-api/internal/repository"
	"github.com/creativehub-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// VoteHandler handles the vote endpoints
type VoteHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewVoteHandler creates a new VoteHandler
func NewVoteHandler(services *service.Services, log zerolog.Logger) *VoteHandler {
	return &VoteHandler{
		services: services,
		log:      log.With().Str("handler", "vote").Logger(),
	}
}

// Add handles POST /challenge/:id/vote
func (h *VoteHandler) Add(c *gin.Context) {
	h.handle(c, h.services.Vote.Add)
}

// Remove handles DELETE /challenge/:id/vote
func (h *VoteHandler) Remove(c *gin.Context) {
	h.handle(c, h.services.Vote.Remove)
}

// handle runs one vote operation and maps its outcome onto the JSON
// contract: 200 on success, 400 with the current count on a rejected
// duplicate or missing vote, 404 for an unknown or inactive challenge.
func (h *VoteHandler) handle(c *gin.Context, op func(ctx context.Context, userID, challengeID int64) (*models.VoteResult, error)) {
	challengeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, models.VoteResult{
			Success: false,
			Message: "This challenge does not exist.",
		})
		return
	}

	user := currentUser(c)
	result, err := op(c.Request.Context(), user.ID, challengeID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)

	case errors.Is(err, service.ErrChallengeNotFound):
		c.JSON(http.StatusNotFound, models.VoteResult{
			Success: false,
			Message: "This challenge does not exist.",
		})

	case errors.Is(err, repository.ErrDuplicateVote), errors.Is(err, repository.ErrVoteNotFound):
		c.JSON(http.StatusBadRequest, result)

	default:
		h.log.Error().Err(err).Int64("challenge_id", challengeID).Msg("Vote operation failed")
		c.JSON(http.StatusInternalServerError, models.VoteResult{
			Success: false,
			Message: "An error occurred, please try again.",
		})
	}
}
