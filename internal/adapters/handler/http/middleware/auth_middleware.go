package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	bearerScheme        = "Bearer"
	ContextUserIDKey    = "userID"
)

// TokenValidator resolves a bearer token to the id of an existing user.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", bearerScheme)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// AuthMiddleware stores the caller's user id under ContextUserIDKey. The
// scheme name is matched case-insensitively.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if header == "" {
			unauthorized(c, "authorization header required")
			return
		}

		scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, bearerScheme) || token == "" || strings.ContainsAny(token, " \t") {
			unauthorized(c, "invalid authorization header format")
			return
		}

		userID, err := tokens.ValidateToken(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// GetUserID reads the id stored by AuthMiddleware. An empty id counts as
// missing.
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserIDKey)
	return userID, userID != ""
}
