// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompts

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Cache stores fetched reference documents by URL.
type Cache interface {
	Get(ctx context.Context, url string) (string, bool, error)
	Set(ctx context.Context, url, text string) error
}

// =============================================================================
// MEMORY CACHE
// =============================================================================

// MemoryCache keeps documents in process memory. A zero TTL keeps them for
// the life of the process.
type MemoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache creates a MemoryCache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		return &MemoryCache{c: gocache.New(gocache.NoExpiration, 0)}
	}
	return &MemoryCache{c: gocache.New(ttl, 2*ttl)}
}

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, url string) (string, bool, error) {
	v, ok := m.c.Get(url)
	if !ok {
		return "", false, nil
	}
	text, ok := v.(string)
	return text, ok, nil
}

// Set implements Cache.
func (m *MemoryCache) Set(_ context.Context, url, text string) error {
	m.c.Set(url, text, gocache.DefaultExpiration)
	return nil
}

// Len returns the number of cached documents.
func (m *MemoryCache) Len() int {
	return m.c.ItemCount()
}

// =============================================================================
// REDIS CACHE
// =============================================================================

// RedisCache shares documents between processes through Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to the Redis server at url
// (redis://[user:pass@]host:port/db).
func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisCache{
		client: redis.NewClient(opts),
		prefix: "vibes:llms:",
		ttl:    ttl,
	}, nil
}

// Ping checks the connection.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get implements Cache.
func (r *RedisCache) Get(ctx context.Context, url string) (string, bool, error) {
	text, err := r.client.Get(ctx, r.prefix+url).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return text, true, nil
}

// Set implements Cache.
func (r *RedisCache) Set(ctx context.Context, url, text string) error {
	if err := r.client.Set(ctx, r.prefix+url, text, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
