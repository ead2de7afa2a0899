package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Scores change on every vote so they stay short-lived; the
// moderation queue is read through directly and never cached.
const (
	HelpfulnessCacheTTL = 5 * time.Minute
	EngagementCacheTTL  = 5 * time.Minute
)

// CacheService is a Redis cache-aside layer for the read-heavy score
// endpoints. Every mutating operation in the engine invalidates the
// affected review's keys.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a CacheService. If redisURL is empty or the
// connection fails, caching silently degrades to no-ops.
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

// Client returns the underlying Redis client for health checks. May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetHelpfulness returns the cached helpfulness response, or nil on miss.
func (c *CacheService) GetHelpfulness(ctx context.Context, reviewID string) ([]byte, error) {
	return c.get(ctx, helpfulnessKey(reviewID))
}

// SetHelpfulness caches a helpfulness response.
func (c *CacheService) SetHelpfulness(ctx context.Context, reviewID string, data any) error {
	return c.set(ctx, helpfulnessKey(reviewID), data, HelpfulnessCacheTTL)
}

// GetEngagement returns the cached engagement response, or nil on miss.
func (c *CacheService) GetEngagement(ctx context.Context, reviewID string) ([]byte, error) {
	return c.get(ctx, engagementKey(reviewID))
}

// SetEngagement caches an engagement response.
func (c *CacheService) SetEngagement(ctx context.Context, reviewID string, data any) error {
	return c.set(ctx, engagementKey(reviewID), data, EngagementCacheTTL)
}

// InvalidateReview drops every cached key for a review. Called after each
// vote, engagement event, and moderation decision.
func (c *CacheService) InvalidateReview(ctx context.Context, reviewID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, helpfulnessKey(reviewID), engagementKey(reviewID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *CacheService) get(ctx context.Context, key string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

func (c *CacheService) set(ctx context.Context, key string, data any, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

func helpfulnessKey(reviewID string) string {
	return fmt.Sprintf("helpfulness:%s", reviewID)
}

func engagementKey(reviewID string) string {
	return fmt.Sprintf("engagement:%s", reviewID)
}
