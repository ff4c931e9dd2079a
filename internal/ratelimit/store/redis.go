package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis counts hits in fixed windows shared across instances. Each window
// gets its own key, expired by Redis shortly after the window closes.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Incr(ctx context.Context, key string, size time.Duration, now time.Time) (int, time.Time, error) {
	start := now.Truncate(size)
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, start.Unix())

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, bucket)
	pipe.Expire(ctx, bucket, size+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("incrementing rate limit counter: %w", err)
	}
	return int(incr.Val()), start, nil
}
