package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Key derives a cache key from a namespace and the call arguments of the
// wrapped operation. Arguments are serialized in the order given, so callers
// must pass them in a stable order and must exclude non-deterministic handles
// (sessions, connections). With hashArgs the argument string is digested to a
// fixed width, which bounds key length and keeps argument values out of the
// keyspace.
func Key(namespace string, hashArgs bool, args ...any) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	joined := strings.Join(parts, ":")
	if hashArgs {
		sum := sha256.Sum256([]byte(joined))
		joined = hex.EncodeToString(sum[:])
	}
	return namespace + ":" + joined
}

// GetOrCompute returns the cached value under key, or invokes compute,
// stores its JSON form with the given TTL and returns it. A result that
// cannot be serialized is a programming error and surfaces to the caller.
// Concurrent misses on the same key may each invoke compute; the last write
// wins.
func GetOrCompute[T any](ctx context.Context, s *Service, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	var zero T

	if cached, ok := s.Get(ctx, key); ok {
		var out T
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
		// Unreadable entry, treat as a miss and overwrite below.
		s.Delete(ctx, key)
	}

	result, err := compute()
	if err != nil {
		return zero, err
	}

	serialized, err := json.Marshal(result)
	if err != nil {
		return zero, fmt.Errorf("failed to serialize result for caching: %w", err)
	}
	s.Set(ctx, key, string(serialized), ttl)

	return result, nil
}
