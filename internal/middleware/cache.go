package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cix-storefront/internal/config"
)

// passThrough is the disabled form of the optional middleware.
func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// cachedResponse is the stored form of one cacheable browse response.
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// bodyRecorder tees the response body into a bounded buffer while it
// streams to the client.  A body over the limit marks the response
// uncacheable instead of truncating it.
type bodyRecorder struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	overflow bool
	limit    int64
}

func (br *bodyRecorder) WriteHeader(code int) {
	br.status = code
	br.ResponseWriter.WriteHeader(code)
}

func (br *bodyRecorder) Write(b []byte) (int, error) {
	if !br.overflow {
		if br.limit > 0 && int64(br.buf.Len()+len(b)) > br.limit {
			br.overflow = true
		} else {
			br.buf.Write(b)
		}
	}
	return br.ResponseWriter.Write(b)
}

// normalizeQuery canonicalizes the raw query for key building: Encode
// sorts the parameters, and the free-text movie search term is
// trimmed and lowercased so "Alien" and "alien " share one cache
// entry.
func normalizeQuery(raw string) string {
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return raw
	}
	if q := vals.Get("q"); q != "" {
		vals.Set("q", strings.ToLower(strings.TrimSpace(q)))
	}
	return vals.Encode()
}

// cacheKeyFrom builds the Redis key for one request per the
// configured strategy.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	query := normalizeQuery(r.URL.RawQuery)

	var tail string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		tail = c.Path()
	case "method_route":
		tail = r.Method + ":" + c.Path()
	case "method_route_query":
		tail = r.Method + ":" + c.Path() + "?" + query
	default: // "route_query"
		tail = c.Path() + "?" + query
	}
	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum)
}

// emptyRail reports whether a browse payload carries no movies.  The
// movie handlers absorb provider outages into empty results; caching
// one would pin the outage for a full TTL, so empty rails are served
// but never stored.
func emptyRail(body []byte) bool {
	return bytes.Contains(body, []byte(`"movies":[]`))
}

// NewRedisCache caches successful browse responses in Redis so repeat
// rail and search hits skip the metadata provider entirely.  Hits are
// marked with an X-Cache: HIT header.  With a nil client or
// Enabled=false it degrades to a pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute // movie metadata is slow moving
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			key := cacheKeyFrom(cfg, c)
			ctx := c.Request().Context()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if err := json.Unmarshal(raw, &cached); err == nil {
					h := c.Response().Header()
					for k, vals := range cached.Header {
						if strings.EqualFold(k, "Content-Length") {
							continue
						}
						for _, v := range vals {
							h.Add(k, v)
						}
					}
					h.Set("X-Cache", "HIT")
					c.Response().WriteHeader(cached.Status)
					if len(cached.Body) > 0 {
						_, _ = c.Response().Write(cached.Body)
					}
					return nil
				}
			}

			rec := &bodyRecorder{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if rec.status != http.StatusOK || rec.overflow || emptyRail(rec.buf.Bytes()) {
				return nil
			}

			header := make(http.Header, len(c.Response().Header()))
			for k, vals := range c.Response().Header() {
				header[k] = append([]string(nil), vals...)
			}
			payload, err := json.Marshal(cachedResponse{Status: rec.status, Header: header, Body: rec.buf.Bytes()})
			if err == nil {
				_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
			}
			return nil
		}
	}
}
