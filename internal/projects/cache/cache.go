package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/desainin/desainin-backend/internal/projects/domain"
)

const projectKeyPrefix = "project:view:" // project:view:{project_id}

// ProjectCache keeps rendered project records in Redis so the workspace
// page does not hit Postgres on every load. Renaming a project
// invalidates its entry.
type ProjectCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProjectCache(rdb *redis.Client, ttl time.Duration) *ProjectCache {
	return &ProjectCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached project, or nil on a miss.
func (c *ProjectCache) Get(ctx context.Context, id string) (*domain.Project, error) {
	data, err := c.rdb.Get(ctx, projectKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p domain.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *ProjectCache) Set(ctx context.Context, p *domain.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, projectKeyPrefix+p.ID, data, c.ttl).Err()
}

func (c *ProjectCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, projectKeyPrefix+id).Err()
}
