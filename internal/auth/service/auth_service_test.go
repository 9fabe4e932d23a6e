package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authcache "github.com/desainin/desainin-backend/internal/auth/cache"
	"github.com/desainin/desainin-backend/internal/auth/domain"
)

type fakeUserStore struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	hashes  map[string]string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    map[string]*domain.User{},
		byEmail: map[string]*domain.User{},
		hashes:  map[string]string{},
	}
}

func (f *fakeUserStore) Create(_ context.Context, u *domain.User, passwordHash string) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrEmailTaken
	}
	cp := *u
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
	f.hashes[u.Email] = passwordHash
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, string, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, "", domain.ErrUserNotFound
	}
	cp := *u
	return &cp, f.hashes[email], nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type recordingTokenCache struct {
	entries   map[string]string
	expiresAt map[string]time.Time
}

func newRecordingTokenCache() *recordingTokenCache {
	return &recordingTokenCache{entries: map[string]string{}, expiresAt: map[string]time.Time{}}
}

func (f *recordingTokenCache) GetUserID(_ context.Context, token string) (string, error) {
	if f.expiresAt[token].Before(time.Now()) {
		return "", nil
	}
	return f.entries[token], nil
}

func (f *recordingTokenCache) Put(_ context.Context, token, userID string, expiresAt time.Time) error {
	f.entries[token] = userID
	f.expiresAt[token] = expiresAt
	return nil
}

func (f *recordingTokenCache) Delete(_ context.Context, token string) error {
	delete(f.entries, token)
	delete(f.expiresAt, token)
	return nil
}

func newRedisTokenCache(t *testing.T) (*authcache.SessionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return authcache.NewSessionCache(rdb), mr
}

type fakeSessionStore struct {
	byToken map[string]*domain.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byToken: map[string]*domain.Session{}}
}

func (f *fakeSessionStore) Create(_ context.Context, s *domain.Session) error {
	cp := *s
	f.byToken[s.Token] = &cp
	return nil
}

func (f *fakeSessionStore) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	s, ok := f.byToken[token]
	if !ok || s.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) DeleteByToken(_ context.Context, token string) error {
	delete(f.byToken, token)
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("register grants default credits and opens a session", func(t *testing.T) {
		users := newFakeUserStore()
		sessions := newFakeSessionStore()
		svc := NewAuthService(users, sessions, nil, time.Hour)

		u, sess, err := svc.Register(ctx, "Budi", "budi@example.com", "rahasia-123", ClientInfo{})

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultCredits, u.Credits)
		assert.NotEmpty(t, sess.Token)
		assert.Equal(t, u.ID, sess.UserID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		users := newFakeUserStore()
		sessions := newFakeSessionStore()
		svc := NewAuthService(users, sessions, nil, time.Hour)

		_, _, err := svc.Register(ctx, "Budi", "budi@example.com", "rahasia-123", ClientInfo{})
		require.NoError(t, err)
		_, _, err = svc.Register(ctx, "Budi Lain", "budi@example.com", "rahasia-456", ClientInfo{})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("login verifies the password", func(t *testing.T) {
		users := newFakeUserStore()
		sessions := newFakeSessionStore()
		svc := NewAuthService(users, sessions, nil, time.Hour)

		_, _, err := svc.Register(ctx, "Budi", "budi@example.com", "rahasia-123", ClientInfo{})
		require.NoError(t, err)

		u, sess, err := svc.Login(ctx, "budi@example.com", "rahasia-123", ClientInfo{})
		require.NoError(t, err)
		assert.Equal(t, "budi@example.com", u.Email)
		assert.NotEmpty(t, sess.Token)

		_, _, err = svc.Login(ctx, "budi@example.com", "salah", ClientInfo{})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email surfaces as invalid credentials, not user not found", func(t *testing.T) {
		svc := NewAuthService(newFakeUserStore(), newFakeSessionStore(), nil, time.Hour)

		_, _, err := svc.Login(ctx, "tidakada@example.com", "apapun", ClientInfo{})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token resolves to the user", func(t *testing.T) {
		users := newFakeUserStore()
		sessions := newFakeSessionStore()
		svc := NewAuthService(users, sessions, nil, time.Hour)

		u, sess, err := svc.Register(ctx, "Budi", "budi@example.com", "rahasia-123", ClientInfo{})
		require.NoError(t, err)

		got, err := svc.Resolve(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("empty and unknown tokens fail uniformly", func(t *testing.T) {
		svc := NewAuthService(newFakeUserStore(), newFakeSessionStore(), nil, time.Hour)

		_, err := svc.Resolve(ctx, "")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		_, err = svc.Resolve(ctx, "no-such-token")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("expired session does not resolve", func(t *testing.T) {
		users := newFakeUserStore()
		sessions := newFakeSessionStore()
		svc := NewAuthService(users, sessions, nil, -time.Minute)

		_, sess, err := svc.Register(ctx, "Budi", "budi@example.com", "rahasia-123", ClientInfo{})
		require.NoError(t, err)

		_, err = svc.Resolve(ctx, sess.Token)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("expired session does not resolve even when cached", func(t *testing.T) {
		users := newFakeUserStore()
		sessions := newFakeSessionStore()
		cache, _ := newRedisTokenCache(t)
		svc := NewAuthService(users, sessions, cache, -time.Minute)

		_, sess, err := svc.Register(ctx, "Budi", "budi@example.com", "rahasia-123", ClientInfo{})
		require.NoError(t, err)

		_, err = svc.Resolve(ctx, sess.Token)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("cached entry expires alongside the session", func(t *testing.T) {
		users := newFakeUserStore()
		sessions := newFakeSessionStore()
		cache, mr := newRedisTokenCache(t)
		svc := NewAuthService(users, sessions, cache, time.Hour)

		u, sess, err := svc.Register(ctx, "Budi", "budi@example.com", "rahasia-123", ClientInfo{})
		require.NoError(t, err)

		got, err := svc.Resolve(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		// Once the session expires the cache entry is gone too; the
		// store fallback then rejects the token.
		mr.FastForward(2 * time.Hour)
		sessions.byToken[sess.Token].ExpiresAt = time.Now().Add(-time.Minute)

		_, err = svc.Resolve(ctx, sess.Token)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("cache entries carry the session expiry", func(t *testing.T) {
		users := newFakeUserStore()
		sessions := newFakeSessionStore()
		cache := newRecordingTokenCache()
		svc := NewAuthService(users, sessions, cache, time.Hour)

		_, sess, err := svc.Register(ctx, "Budi", "budi@example.com", "rahasia-123", ClientInfo{})
		require.NoError(t, err)
		assert.Equal(t, sess.ExpiresAt, cache.expiresAt[sess.Token])
	})

	t.Run("logout invalidates the token", func(t *testing.T) {
		users := newFakeUserStore()
		sessions := newFakeSessionStore()
		svc := NewAuthService(users, sessions, nil, time.Hour)

		_, sess, err := svc.Register(ctx, "Budi", "budi@example.com", "rahasia-123", ClientInfo{})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, sess.Token))

		_, err = svc.Resolve(ctx, sess.Token)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
