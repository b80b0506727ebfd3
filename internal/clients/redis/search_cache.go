package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/promptops/platform-api/internal/platform/logger"
)

// SearchCache is a best-effort cache for knowledge-base search responses.
// A miss or a cache error never fails the search; callers fall through to
// the indexing service.
type SearchCache interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration) error
	Close() error
}

type searchCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

// NewSearchCache connects to Redis using REDIS_ADDR. The caller decides what
// an unset address means; this constructor treats it as an error.
func NewSearchCache(log *logger.Logger) (SearchCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_KEY_PREFIX"))
	if prefix == "" {
		prefix = "kbsearch"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &searchCache{
		log:    log.With("service", "RedisSearchCache"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (c *searchCache) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, fmt.Errorf("search cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, c.prefix+":"+key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(raw), true, nil
}

func (c *searchCache) Set(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("search cache not initialized")
	}
	return c.rdb.Set(ctx, c.prefix+":"+key, []byte(payload), ttl).Err()
}

func (c *searchCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
