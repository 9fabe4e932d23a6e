package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/desainin/desainin-backend/internal/auth/domain"
)

const (
	CtxUserID = "user_id"
	CtxUser   = "user"
)

// UserID extracts the authenticated caller's id from the Gin context.
// It is set by middleware.SessionAuth; empty means not authenticated.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

// CurrentUser returns the full caller identity, if the middleware stored one.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
