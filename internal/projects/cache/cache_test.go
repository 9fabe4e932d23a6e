package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desainin/desainin-backend/internal/projects/domain"
)

func newTestCache(t *testing.T) *ProjectCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewProjectCache(rdb, 10*time.Minute)
}

func TestProjectCache(t *testing.T) {
	ctx := context.Background()

	p := &domain.Project{
		ID:     "proj-1",
		UserID: "user-a",
		Title:  "Judul",
		Prompt: "Buat landing page untuk startup AI",
		Type:   domain.TypeWebsite,
	}

	t.Run("roundtrip preserves the record", func(t *testing.T) {
		c := newTestCache(t)

		require.NoError(t, c.Set(ctx, p))

		got, err := c.Get(ctx, "proj-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.UserID, got.UserID)
		assert.Equal(t, p.Title, got.Title)
		assert.Equal(t, p.Type, got.Type)
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		c := newTestCache(t)

		got, err := c.Get(ctx, "unknown")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidate removes the entry", func(t *testing.T) {
		c := newTestCache(t)

		require.NoError(t, c.Set(ctx, p))
		require.NoError(t, c.Invalidate(ctx, "proj-1"))

		got, err := c.Get(ctx, "proj-1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
