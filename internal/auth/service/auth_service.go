package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/desainin/desainin-backend/internal/auth/domain"
	"github.com/desainin/desainin-backend/pkg/logger"
)

// UserStore is the persistence surface the auth service needs for users.
type UserStore interface {
	Create(ctx context.Context, u *domain.User, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (*domain.User, string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// SessionStore is the persistence surface for sessions.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

// TokenCache is an optional fast path for token -> user id resolution.
// Implementations must drop entries at expiresAt so a cached token can
// never outlive its session.
type TokenCache interface {
	GetUserID(ctx context.Context, token string) (string, error)
	Put(ctx context.Context, token, userID string, expiresAt time.Time) error
	Delete(ctx context.Context, token string) error
}

// AuthService issues and resolves login sessions.
type AuthService struct {
	users      UserStore
	sessions   SessionStore
	cache      TokenCache
	sessionTTL time.Duration
}

func NewAuthService(users UserStore, sessions SessionStore, cache TokenCache, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		cache:      cache,
		sessionTTL: sessionTTL,
	}
}

type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// Register creates a user with the default credit balance and opens a session.
func (s *AuthService) Register(ctx context.Context, name, email, password string, info ClientInfo) (*domain.User, *domain.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	u := &domain.User{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(name),
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Credits: domain.DefaultCredits,
	}
	if err := s.users.Create(ctx, u, string(hash)); err != nil {
		return nil, nil, err
	}

	sess, err := s.openSession(ctx, u.ID, info)
	if err != nil {
		return nil, nil, err
	}

	logger.L().Info("user registered", zap.String("user_id", u.ID))
	return u, sess, nil
}

// Login verifies the password and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string, info ClientInfo) (*domain.User, *domain.Session, error) {
	u, hash, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	sess, err := s.openSession(ctx, u.ID, info)
	if err != nil {
		return nil, nil, err
	}

	logger.L().Info("user logged in", zap.String("user_id", u.ID))
	return u, sess, nil
}

// Logout removes the session everywhere. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, token); err != nil {
			logger.L().Warn("session cache delete failed", zap.Error(err))
		}
	}
	return s.sessions.DeleteByToken(ctx, token)
}

// Resolve maps a session token to the caller identity. It returns
// domain.ErrSessionNotFound for absent or expired sessions.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	if s.cache != nil {
		userID, err := s.cache.GetUserID(ctx, token)
		if err != nil {
			logger.L().Warn("session cache lookup failed", zap.Error(err))
		} else if userID != "" {
			return s.users.GetByID(ctx, userID)
		}
	}

	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, token, sess.UserID, sess.ExpiresAt); err != nil {
			logger.L().Warn("session cache put failed", zap.Error(err))
		}
	}
	return s.users.GetByID(ctx, sess.UserID)
}

func (s *AuthService) openSession(ctx context.Context, userID string, info ClientInfo) (*domain.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		IPAddress: info.IPAddress,
		UserAgent: info.UserAgent,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, token, userID, sess.ExpiresAt); err != nil {
			logger.L().Warn("session cache put failed", zap.Error(err))
		}
	}
	return sess, nil
}

func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
