package http

import "github.com/gin-gonic/gin"

// Register attaches the public auth routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.POST("/logout", h.logout)
}

// RegisterProtected attaches routes that require an authenticated caller.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}
