package api

import (
	"net/http"
	"time"

	"github.com/creativehub-api/internal/repository"
	"github.com/creativehub-api/internal/security"
	"github.com/creativehub-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, repos *repository.Repositories, sec *security.Security, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	challengeHandler := NewChallengeHandler(services, sec, log)
	commentHandler := NewCommentHandler(services, sec, log)
	voteHandler := NewVoteHandler(services, log)
	adminHandler := NewAdminHandler(services, sec, log)

	auth := authRequired(sec.Sessions, repos.User, log)
	admin := adminRequired()

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(repos))

	// Public browsing
	router.GET("/challenges", challengeHandler.Index)
	router.GET("/challenge/:id", challengeHandler.Show)

	// Challenge authoring
	router.POST("/challenges", auth, challengeHandler.Create)

	// Authenticated actions on a challenge
	challenge := router.Group("/challenge/:id", auth)
	{
		challenge.POST("/comment", commentHandler.Create)
		challenge.POST("/vote", voteHandler.Add)
		challenge.DELETE("/vote", voteHandler.Remove)
		challenge.POST("/edit", challengeHandler.Update)
		challenge.POST("/delete", challengeHandler.Delete)
	}

	// Admin dashboard
	adminGroup := router.Group("/admin", auth, admin)
	{
		adminGroup.GET("/comments", adminHandler.ListComments)
		adminGroup.POST("/comments/:id/delete", adminHandler.DeleteComment)
		adminGroup.GET("/challenges", adminHandler.ListChallenges)
		adminGroup.POST("/challenges/:id/toggle", adminHandler.ToggleChallenge)
		adminGroup.GET("/users", adminHandler.ListUsers)
		adminGroup.POST("/users/:id/toggle", adminHandler.ToggleUser)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "creativehub-api",
	})
}

// metricsHandler returns entity counts
func metricsHandler(repos *repository.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCount, _ := repos.User.Count(ctx)
		challengesCount, _ := repos.Challenge.Count(ctx)
		commentsCount, _ := repos.Comment.Count(ctx)
		votesCount, _ := repos.Vote.Count(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"users":      usersCount,
				"challenges": challengesCount,
				"comments":   commentsCount,
				"votes":      votesCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
