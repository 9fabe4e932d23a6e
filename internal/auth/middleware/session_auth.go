package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/desainin/desainin-backend/internal/auth"
	"github.com/desainin/desainin-backend/internal/auth/domain"
)

// Resolver maps a session token to the caller identity.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// MsgLoginRequired is the uniform not-authenticated message. Absent,
// unknown and expired sessions all surface the same way.
const MsgLoginRequired = "Anda harus login terlebih dahulu"

// SessionAuth resolves the caller identity from the session cookie or a
// Bearer token and stores it on the context. Requests without a valid
// session are rejected with the standard envelope.
func SessionAuth(resolver Resolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c, cookieName)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": MsgLoginRequired})
			c.Abort()
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": MsgLoginRequired})
			c.Abort()
			return
		}

		c.Set(auth.CtxUserID, user.ID)
		c.Set(auth.CtxUser, user)
		c.Next()
	}
}

// ExtractToken reads the session token from the cookie, falling back to
// the Authorization header for non-browser clients.
func ExtractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	bearer := c.GetHeader("Authorization")
	if len(bearer) > 7 && strings.HasPrefix(bearer, "Bearer ") {
		return bearer[7:]
	}
	return ""
}
