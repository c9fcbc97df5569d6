package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taubit/internal/auth"
	"taubit/internal/repository"
)

const userIDKey = "userID"

// RequireAuth returns middleware that authenticates the bearer token and
// checks the session has not been revoked. The authenticated user ID is
// stored on the context for handlers.
func RequireAuth(tokens *auth.TokenManager, sessionRepo repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// Logout revokes the session row, so a valid signature alone is
		// not enough.
		session, err := sessionRepo.GetByTokenHash(c.Request.Context(), auth.HashToken(token))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session revoked"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		if time.Now().After(session.ExpiresAt) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user ID set by RequireAuth,
// or "" on unauthenticated routes.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
