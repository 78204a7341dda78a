package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/tasklite/backend/domain"
	"github.com/tasklite/backend/repository"
)

const (
	listKeyPrefix = "tasks:list:"
	listKeyIndex  = "tasks:list:keys"
)

// TaskCache is a cache-aside layer for List results. Entries are keyed by
// filter and dropped wholesale on any write, so readers never observe a
// stale mutation from this process.
type TaskCache struct {
	client *goRedis.Client
	ttl    time.Duration
}

// NewTaskCache wraps a Redis client with the list-cache conventions.
func NewTaskCache(client *goRedis.Client, ttl time.Duration) *TaskCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &TaskCache{client: client, ttl: ttl}
}

// GetList returns the cached result for the filter, reporting a hit or miss.
func (c *TaskCache) GetList(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, bool, error) {
	data, err := c.client.Get(ctx, listKeyPrefix+filter.CacheKey()).Bytes()
	if err != nil {
		if errors.Is(err, goRedis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, false, err
	}
	return tasks, true, nil
}

// SetList stores the result for the filter and records the key for invalidation.
func (c *TaskCache) SetList(ctx context.Context, filter repository.TaskFilter, tasks []domain.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	key := listKeyPrefix + filter.CacheKey()
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, listKeyIndex, key)
	pipe.Expire(ctx, listKeyIndex, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Invalidate drops every cached list. Called after any task mutation.
func (c *TaskCache) Invalidate(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, listKeyIndex).Result()
	if err != nil {
		if errors.Is(err, goRedis.Nil) {
			return nil
		}
		return err
	}
	keys = append(keys, listKeyIndex)
	return c.client.Del(ctx, keys...).Err()
}
