package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cix-storefront/internal/config"
)

// tokenBucketScript refills and drains one bucket atomically.  State
// per bucket is a hash of remaining tokens and the last refill stamp;
// the script returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
	local bucket = KEYS[1]
	local now = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill = tonumber(ARGV[3])
	local interval = tonumber(ARGV[4])
	local ttl = tonumber(ARGV[5])

	local state = redis.call('HMGET', bucket, 'tokens', 'stamp')
	local tokens = tonumber(state[1])
	local stamp = tonumber(state[2])
	if tokens == nil or stamp == nil then
		tokens = capacity
		stamp = now
	end

	if interval > 0 and refill > 0 then
		local steps = math.floor(math.max(0, now - stamp) / interval)
		if steps > 0 then
			tokens = math.min(capacity, tokens + steps * refill)
			stamp = stamp + steps * interval
		end
	end

	local allowed = 0
	local wait = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		wait = math.max(0, interval - (now - stamp))
	end

	redis.call('HMSET', bucket, 'tokens', tokens, 'stamp', stamp)
	redis.call('EXPIRE', bucket, ttl)
	return {allowed, tokens, wait}
`)

// bucketVerdict is one limiter decision.
type bucketVerdict struct {
	allowed    bool
	remaining  int64
	retryAfter time.Duration
}

// tokenBucket throttles the OMDB-backed browse routes so a scraper
// cannot burn the metadata provider quota.  Buckets live in Redis and
// are shared across replicas.
type tokenBucket struct {
	cfg config.RateLimitConfig
	rdb *redis.Client
}

// key builds the bucket identity.  Authenticated callers are keyed by
// user ID so a shared office IP does not throttle every customer at
// once; guests fall back to the client IP.
func (tb *tokenBucket) key(c echo.Context) string {
	caller := "ip:" + clientIP(c)
	if uid, ok := c.Get("user_id").(uint64); ok && uid > 0 {
		caller = "user:" + strconv.FormatUint(uid, 10)
	}
	route := c.Request().Method + " " + c.Path()

	parts := []string{tb.cfg.Prefix}
	switch strings.ToLower(tb.cfg.KeyStrategy) {
	case "caller":
		parts = append(parts, caller)
	case "route":
		parts = append(parts, route)
	default: // "caller_route"
		parts = append(parts, caller, route)
	}
	return strings.Join(parts, ":")
}

func (tb *tokenBucket) take(c echo.Context) (bucketVerdict, error) {
	args := []interface{}{
		time.Now().UnixMilli(),
		tb.cfg.Capacity,
		tb.cfg.RefillTokens,
		tb.cfg.RefillInterval.Milliseconds(),
		int64(tb.cfg.TTL / time.Second),
	}
	vals, err := tokenBucketScript.Run(c.Request().Context(), tb.rdb, []string{tb.key(c)}, args...).Int64Slice()
	if err != nil {
		return bucketVerdict{}, err
	}
	if len(vals) != 3 {
		return bucketVerdict{}, fmt.Errorf("ratelimit: unexpected script result %v", vals)
	}
	return bucketVerdict{
		allowed:    vals[0] == 1,
		remaining:  vals[1],
		retryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

func clientIP(c echo.Context) string {
	if ip := c.RealIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// NewTokenBucket returns the rate limiting middleware.  With a nil
// client or Enabled=false it degrades to a pass-through, and a Redis
// error fails open so browsing never breaks because the limiter did.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	tb := &tokenBucket{cfg: cfg, rdb: rdb}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := tb.take(c)
			if err != nil {
				if cfg.Debug {
					c.Logger().Warnf("[ratelimit] %v", err)
				}
				return next(c) // fail open
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(v.remaining, 10))

			if !v.allowed {
				secs := int(math.Ceil(v.retryAfter.Seconds()))
				if secs < 0 {
					secs = 0
				}
				h.Set("Retry-After", strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}
