package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	port "pairchat/internal/pkg/identity/port"
)

// userIDKey is the gin context slot holding the resolved caller id.
const userIDKey = "userID"

// RequireUser resolves the bearer token once per request and stores the
// caller id in the request context. Downstream handlers receive an explicit
// user id instead of reaching for ambient auth state.
func RequireUser(resolver port.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		userID, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			msg := "not authenticated"
			if !errors.Is(err, port.ErrNotAuthenticated) {
				status = http.StatusServiceUnavailable
				msg = "identity provider unavailable"
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the caller id placed by RequireUser, or "" when the route
// was not wrapped by it.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if rest, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(rest)
	}
	return header
}
