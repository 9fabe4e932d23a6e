package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/desainin/desainin-backend/internal/auth"
	"github.com/desainin/desainin-backend/internal/auth/domain"
	"github.com/desainin/desainin-backend/internal/auth/middleware"
	"github.com/desainin/desainin-backend/internal/auth/service"
	"github.com/desainin/desainin-backend/pkg/logger"
)

type Handler struct {
	svc        *service.AuthService
	cookieName string
	cookieTTL  time.Duration
	secure     bool
}

func NewHandler(svc *service.AuthService, cookieName string, cookieTTL time.Duration, secure bool) *Handler {
	return &Handler{
		svc:        svc,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
		secure:     secure,
	}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Input tidak valid"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Nama tidak boleh kosong"})
		return
	}
	if !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email tidak valid"})
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Password minimal 8 karakter"})
		return
	}

	user, sess, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password, clientInfo(c))
	if err != nil {
		if err == domain.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Email sudah terdaftar"})
			return
		}
		logger.L().Error("register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal membuat akun. Silakan coba lagi."})
		return
	}

	h.setSessionCookie(c, sess.Token)
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user, "token": sess.Token})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Input tidak valid"})
		return
	}

	user, sess, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Email atau password salah"})
			return
		}
		logger.L().Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal masuk. Silakan coba lagi."})
		return
	}

	h.setSessionCookie(c, sess.Token)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "token": sess.Token})
}

func (h *Handler) logout(c *gin.Context) {
	token := middleware.ExtractToken(c, h.cookieName)
	if token != "" {
		if err := h.svc.Logout(c.Request.Context(), token); err != nil {
			logger.L().Error("logout failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal keluar. Silakan coba lagi."})
			return
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) me(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": middleware.MsgLoginRequired})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(h.cookieName, token, int(h.cookieTTL.Seconds()), "/", "", h.secure, true)
}

func clientInfo(c *gin.Context) service.ClientInfo {
	return service.ClientInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
