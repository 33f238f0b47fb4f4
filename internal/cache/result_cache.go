package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/virtualpatient/clinsim/internal/scoring"
)

// ResultCache fronts the result store for dashboard reads. Results change
// only on re-scoring, so a short TTL is plenty.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultCache(client *redis.Client) *ResultCache {
	return &ResultCache{client: client, ttl: 10 * time.Minute}
}

func (c *ResultCache) key(sessionID string) string { return "result:" + sessionID }

func (c *ResultCache) Set(ctx context.Context, res *scoring.ScoringResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(res.SessionID), data, c.ttl).Err()
}

// Get returns (nil, nil) on a cache miss.
func (c *ResultCache) Get(ctx context.Context, sessionID string) (*scoring.ScoringResult, error) {
	data, err := c.client.Get(ctx, c.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var res scoring.ScoringResult
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Invalidate drops the cached result after a re-score.
func (c *ResultCache) Invalidate(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.key(sessionID)).Err()
}
