package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	MovieCacheTTL = 5 * time.Minute
	StatsCacheTTL = time.Minute
)

// CacheService provides a Redis cache-aside layer for movie lookups and the
// stats snapshot. It also backs passcode and session storage for OTPService.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops; OTP storage falls back to in-memory).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetMovie retrieves a cached movie response. Returns nil if not cached or
// the cache is disabled.
func (c *CacheService) GetMovie(ctx context.Context, movieID int64) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, movieKey(movieID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetMovie stores a movie response in cache.
func (c *CacheService) SetMovie(ctx context.Context, movieID int64, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, movieKey(movieID), b, MovieCacheTTL).Err()
}

// InvalidateMovie removes a movie from cache (called after a verdict lands).
func (c *CacheService) InvalidateMovie(ctx context.Context, movieID int64) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, movieKey(movieID)).Err()
}

// GetStats retrieves the cached stats snapshot. Returns nil if not cached.
func (c *CacheService) GetStats(ctx context.Context) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetStats stores the stats snapshot in cache.
func (c *CacheService) SetStats(ctx context.Context, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, b, StatsCacheTTL).Err()
}

// InvalidateStats removes the stats snapshot from cache.
func (c *CacheService) InvalidateStats(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, statsKey).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

const statsKey = "stats:global"

func movieKey(movieID int64) string {
	return fmt.Sprintf("movie:%d", movieID)
}
