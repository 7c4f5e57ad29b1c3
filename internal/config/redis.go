package config

import (
	"context"
	"crypto/tls"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the client backing the browse cache and the
// rate limiter.  REDIS_URL takes precedence; otherwise REDIS_ADDR (or
// REDIS_HOST/REDIS_PORT) plus REDIS_PASSWORD, REDIS_DB and REDIS_TLS
// are read.  Returns nil when the server cannot be reached so callers
// degrade to pass-through middleware instead of failing startup.
func NewRedisClient() *redis.Client {
	var opts *redis.Options
	if u := os.Getenv("REDIS_URL"); u != "" {
		parsed, err := redis.ParseURL(u)
		if err != nil {
			log.Printf("redis: invalid REDIS_URL: %v", err)
			return nil
		}
		opts = parsed
	} else {
		addr := os.Getenv("REDIS_ADDR")
		if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
			addr = host + ":" + port
		}
		if addr == "" {
			addr = "localhost:6379"
		}
		db := 0
		if s := os.Getenv("REDIS_DB"); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				db = n
			}
		}
		opts = &redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD"), DB: db}
		if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
		}
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
