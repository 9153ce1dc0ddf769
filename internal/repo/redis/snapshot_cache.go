package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const snapshotPrefix = "dashboard:snapshot:"

// ErrSnapshotMiss reports that no cached snapshot exists for the key.
var ErrSnapshotMiss = errors.New("snapshot cache miss")

// SnapshotCache holds precomputed dashboard payloads with a short TTL.
// Everything keeps working without it; a nil client degrades to a miss.
type SnapshotCache struct {
	client *goredis.Client
}

func NewSnapshotCache(client *goredis.Client) *SnapshotCache {
	return &SnapshotCache{client: client}
}

func (c *SnapshotCache) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if key == "" {
		return fmt.Errorf("snapshot key is required")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, snapshotPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

func (c *SnapshotCache) Get(ctx context.Context, key string, target any) error {
	if c == nil || c.client == nil {
		return ErrSnapshotMiss
	}
	if key == "" {
		return fmt.Errorf("snapshot key is required")
	}

	data, err := c.client.Get(ctx, snapshotPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrSnapshotMiss
		}
		return fmt.Errorf("load snapshot: %w", err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return nil
}
