package ratelimit

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/draftwirehq/draftwire/internal/cache"
)

// Rate is a parsed fixed-window rate specification.
type Rate struct {
	MaxRequests   int
	WindowSeconds int
}

var ratePattern = regexp.MustCompile(`^(\d+)/(\w+)$`)

var periodSeconds = map[string]int{
	"second": 1,
	"minute": 60,
	"hour":   3600,
	"day":    86400,
}

// ParseRate accepts specifications of the form "<count>/<period>", e.g.
// "5/minute" or "100/hours". Malformed specifications are rejected here, at
// configuration time, so request handling never sees them.
func ParseRate(spec string) (Rate, error) {
	m := ratePattern.FindStringSubmatch(strings.TrimSpace(spec))
	if m == nil {
		return Rate{}, fmt.Errorf("rate must be in format 'number/period' (e.g. '5/minute'), got %q", spec)
	}

	count, err := strconv.Atoi(m[1])
	if err != nil || count <= 0 {
		return Rate{}, fmt.Errorf("invalid request count in rate %q", spec)
	}

	period := strings.ToLower(m[2])
	seconds, ok := periodSeconds[period]
	if !ok {
		seconds, ok = periodSeconds[strings.TrimSuffix(period, "s")]
	}
	if !ok {
		return Rate{}, fmt.Errorf("invalid time period %q, must be one of: second, minute, hour, day", period)
	}

	return Rate{MaxRequests: count, WindowSeconds: seconds}, nil
}

// Limiter counts requests in fixed windows on top of the cache's atomic
// increment. The increment/expire pair is not one atomic unit, so a window
// can stretch by a round trip near its boundary; that imprecision is
// accepted for a fixed-window limiter.
type Limiter struct {
	cache *cache.Service
}

func NewLimiter(c *cache.Service) *Limiter {
	return &Limiter{cache: c}
}

func (l *Limiter) Allow(ctx context.Context, identifier string, r Rate) bool {
	key := "rate_limit:" + identifier

	count := l.cache.Incr(ctx, key)
	if count == 0 {
		// Cache backend unavailable. The limiter is best-effort, so fail open.
		return true
	}
	if count == 1 {
		l.cache.Expire(ctx, key, r.WindowSeconds)
	}

	return count <= int64(r.MaxRequests)
}
