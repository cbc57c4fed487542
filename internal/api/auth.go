package api

import (
	"net/http"

	"github.com/creativehub-api/internal/models"
	"github.com/creativehub-api/internal/repository"
	"github.com/creativehub-api/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const currentUserKey = "currentUser"

// authRequired resolves the session cookie to an active user and aborts
// with 401 when there is none. Authentication itself (issuing the
// session) happens outside this service.
func authRequired(sessions *security.Sessions, users repository.UserRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Read(c.Request)
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), sess.UserID)
		if err != nil {
			log.Error().Err(err).Int64("user_id", sess.UserID).Msg("Failed to load session user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if user == nil || !user.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// adminRequired aborts with 403 unless the current user is an admin.
// Must run after authRequired.
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// currentUser returns the authenticated user set by authRequired
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
