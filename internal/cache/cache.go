package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Service is a thin fail-soft facade over Redis. Every method swallows
// backend errors: readers report a miss, writers report failure, and callers
// are expected to fall back to the authoritative store. Nothing here ever
// returns an error.
type Service struct {
	rdb *redis.Client
}

func NewService(rdb *redis.Client) *Service {
	return &Service{rdb: rdb}
}

func NewClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

func (s *Service) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Service) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("cache get failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

func (s *Service) Delete(ctx context.Context, key string) bool {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		slog.Error("cache delete failed", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Service) Exists(ctx context.Context, key string) bool {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		slog.Error("cache exists failed", "key", key, "error", err)
		return false
	}
	return n > 0
}

// Incr returns the post-increment counter value, creating the key at 1 when
// absent. A backend failure reports 0 so rate limiting fails open.
func (s *Service) Incr(ctx context.Context, key string) int64 {
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		slog.Error("cache incr failed", "key", key, "error", err)
		return 0
	}
	return n
}

func (s *Service) Expire(ctx context.Context, key string, seconds int) bool {
	if err := s.rdb.Expire(ctx, key, time.Duration(seconds)*time.Second).Err(); err != nil {
		slog.Error("cache expire failed", "key", key, "error", err)
		return false
	}
	return true
}

// DeletePattern removes every key sharing the prefix. It walks the keyspace
// with SCAN so large keyspaces never block the backend the way KEYS would.
func (s *Service) DeletePattern(ctx context.Context, prefix string) bool {
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			slog.Error("cache scan failed", "prefix", prefix, "error", err)
			return false
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				slog.Error("cache delete failed", "prefix", prefix, "error", err)
				return false
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return true
}
