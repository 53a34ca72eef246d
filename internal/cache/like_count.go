// Package cache holds optional read-through caches in front of the relational store.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LikeCntTTL       = time.Minute
	LikeCntKeyPrefix = "like:cnt:post"
)

// LikeCounter caches per-post like counts. The database stays authoritative:
// writers Set the count they committed, readers Fill on a miss. Fill never
// overwrites a present key, so a reader holding an older count cannot clobber
// a writer's value.
type LikeCounter interface {
	Get(ctx context.Context, postID uint) (int64, bool, error)
	Fill(ctx context.Context, postID uint, count int64) error
	Set(ctx context.Context, postID uint, count int64) error
	Invalidate(ctx context.Context, postID uint) error
}

// RedisLikeCounter implements LikeCounter with plain string keys
type RedisLikeCounter struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLikeCounter(rdb *redis.Client) *RedisLikeCounter {
	return &RedisLikeCounter{rdb: rdb, ttl: LikeCntTTL}
}

// LikeCountKey returns the cache key for postID
func LikeCountKey(postID uint) string {
	return fmt.Sprintf("%s:%d", LikeCntKeyPrefix, postID)
}

func (c *RedisLikeCounter) Get(ctx context.Context, postID uint) (int64, bool, error) {
	v, err := c.rdb.Get(ctx, LikeCountKey(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (c *RedisLikeCounter) Fill(ctx context.Context, postID uint, count int64) error {
	return c.rdb.SetNX(ctx, LikeCountKey(postID), count, c.ttl).Err()
}

func (c *RedisLikeCounter) Set(ctx context.Context, postID uint, count int64) error {
	return c.rdb.Set(ctx, LikeCountKey(postID), count, c.ttl).Err()
}

func (c *RedisLikeCounter) Invalidate(ctx context.Context, postID uint) error {
	return c.rdb.Del(ctx, LikeCountKey(postID)).Err()
}

// NopLikeCounter never caches anything
type NopLikeCounter struct{}

func (NopLikeCounter) Get(context.Context, uint) (int64, bool, error) { return 0, false, nil }
func (NopLikeCounter) Fill(context.Context, uint, int64) error        { return nil }
func (NopLikeCounter) Set(context.Context, uint, int64) error         { return nil }
func (NopLikeCounter) Invalidate(context.Context, uint) error         { return nil }
