// Package redis caches rendered microsites in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/artfolio/internal/domain"
)

const keyPrefix = "artfolio:microsite:"

// MicrositeCache implements repository.MicrositeCache.
type MicrositeCache struct {
	client redis.Cmdable
}

func NewMicrositeCache(client redis.Cmdable) *MicrositeCache {
	return &MicrositeCache{client: client}
}

func key(username string) string {
	return keyPrefix + username
}

// Get returns (nil, nil) when nothing is cached for username.
func (c *MicrositeCache) Get(ctx context.Context, username string) (*domain.Microsite, error) {
	data, err := c.client.Get(ctx, key(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get microsite: %w", err)
	}

	var site domain.Microsite
	if err := json.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("unmarshal microsite: %w", err)
	}
	return &site, nil
}

func (c *MicrositeCache) Set(ctx context.Context, username string, site *domain.Microsite, ttl time.Duration) error {
	data, err := json.Marshal(site)
	if err != nil {
		return fmt.Errorf("marshal microsite: %w", err)
	}
	if err := c.client.Set(ctx, key(username), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set microsite: %w", err)
	}
	return nil
}

func (c *MicrositeCache) Invalidate(ctx context.Context, username string) error {
	if err := c.client.Del(ctx, key(username)).Err(); err != nil {
		return fmt.Errorf("redis del microsite: %w", err)
	}
	return nil
}
