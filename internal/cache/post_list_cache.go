package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"blogapi/internal/model"
)

const (
	recentPostsKey           = "blog:posts:recent"
	recentPostsGenerationKey = "blog:posts:recent:gen"
)

// PostListCache stores the recent posts listing. Every invalidation bumps a
// generation counter, and a fill is only stored when the generation it was read
// under is still current, so a listing read before a write cannot outlive it.
type PostListCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewPostListCache(client *redisv9.Client, ttl time.Duration) *PostListCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &PostListCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *PostListCache) GetRecent(ctx context.Context) ([]model.PostView, bool, error) {
	raw, err := c.client.Get(ctx, recentPostsKey).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get recent posts failed: %w", err)
	}

	var posts []model.PostView
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached posts failed: %w", err)
	}
	return posts, true, nil
}

// Generation returns the current invalidation generation. Read it before
// loading the listing from the database and pass it to SetRecent.
func (c *PostListCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, recentPostsGenerationKey).Int64()
	if errors.Is(err, redisv9.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get recent posts generation failed: %w", err)
	}
	return gen, nil
}

// SetRecent stores posts unless an invalidation happened after generation was
// read. It reports whether the listing was stored.
func (c *PostListCache) SetRecent(ctx context.Context, generation int64, posts []model.PostView) (bool, error) {
	payload, err := json.Marshal(posts)
	if err != nil {
		return false, fmt.Errorf("marshal recent posts failed: %w", err)
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redisv9.Tx) error {
		current, err := tx.Get(ctx, recentPostsGenerationKey).Int64()
		if err != nil && !errors.Is(err, redisv9.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
			pipe.Set(ctx, recentPostsKey, payload, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, recentPostsGenerationKey)
	if errors.Is(err, redisv9.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis set recent posts failed: %w", err)
	}
	return stored, nil
}

func (c *PostListCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
		pipe.Incr(ctx, recentPostsGenerationKey)
		pipe.Del(ctx, recentPostsKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate recent posts failed: %w", err)
	}
	return nil
}
