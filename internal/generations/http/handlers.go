package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/desainin/desainin-backend/internal/auth"
	"github.com/desainin/desainin-backend/internal/generations/service"
	projdomain "github.com/desainin/desainin-backend/internal/projects/domain"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterProjectSubroutes mounts generation routes under /projects/:id.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.POST("/:id/generations", h.add)
	rg.GET("/:id/generations", h.list)
}

type addReq struct {
	HTMLCode string `json:"html_code"`
}

func (h *Handler) add(c *gin.Context) {
	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": projdomain.MsgInvalidInput})
		return
	}

	userID := auth.UserID(c)
	g, err := h.svc.Add(c.Request.Context(), userID, c.Param("id"), req.HTMLCode)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "generation": g})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserID(c)
	items, err := h.svc.List(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "generations": items})
}

func writeError(c *gin.Context, err error) {
	var ve *projdomain.ValidationError
	switch {
	case errors.Is(err, projdomain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": projdomain.MsgLoginRequired})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": ve.Message})
	case errors.Is(err, projdomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": projdomain.MsgNotFound})
	case errors.Is(err, projdomain.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": projdomain.MsgAccessDenied})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal memproses generation. Silakan coba lagi."})
	}
}
