package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/desainin/desainin-backend/internal/auth"
	"github.com/desainin/desainin-backend/internal/projects/domain"
	"github.com/desainin/desainin-backend/internal/projects/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Prompt string `json:"prompt"`
	Type   string `json:"type"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": domain.MsgInvalidInput})
		return
	}

	userID := auth.UserID(c)
	p, err := h.svc.Create(c.Request.Context(), userID, req.Prompt, domain.ProjectType(req.Type))
	if err != nil {
		writeError(c, err, domain.MsgCreateFailed)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "project_id": p.ID})
}

func (h *Handler) get(c *gin.Context) {
	userID := auth.UserID(c)
	p, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err, domain.MsgGetFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": p})
}

type updateTitleReq struct {
	NewTitle string `json:"new_title"`
}

func (h *Handler) updateTitle(c *gin.Context) {
	var req updateTitleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": domain.MsgInvalidInput})
		return
	}

	userID := auth.UserID(c)
	title, err := h.svc.UpdateTitle(c.Request.Context(), userID, c.Param("id"), req.NewTitle)
	if err != nil {
		writeError(c, err, domain.MsgUpdateFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "title": title})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserID(c)
	items, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, domain.MsgGetFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "projects": items})
}

// writeError converts a service error to the tagged envelope. Store detail
// never crosses this boundary; unexpected failures surface as the
// operation's generic message.
func writeError(c *gin.Context, err error, genericMsg string) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": domain.MsgLoginRequired})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": ve.Message})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": domain.MsgNotFound})
	case errors.Is(err, domain.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": domain.MsgAccessDenied})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": genericMsg})
	}
}
