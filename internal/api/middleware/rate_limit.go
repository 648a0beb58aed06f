package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a token bucket limiter for one client key.
type RateLimiter struct {
	lastRefill time.Time
	mu         sync.Mutex
	refill     time.Duration
	tokens     int
	capacity   int
}

// NewRateLimiter creates a new token bucket limiter.
func NewRateLimiter(capacity int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		lastRefill: time.Now(),
		refill:     refillRate,
		tokens:     capacity,
		capacity:   capacity,
	}
}

// Allow consumes one token if available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastRefill) >= rl.refill {
		tokensToAdd := int(now.Sub(rl.lastRefill) / rl.refill)
		rl.tokens = min(rl.capacity, rl.tokens+tokensToAdd)
		rl.lastRefill = now
	}

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}

// RedisRateLimiter implements distributed rate limiting with a Redis sliding
// window. Used when multiple server instances share one limit.
type RedisRateLimiter struct {
	client            *redis.Client
	keyPrefix         string
	requestsPerMinute int
	windowSize        time.Duration
}

// NewRedisRateLimiter creates a Redis-backed rate limiter.
func NewRedisRateLimiter(client *redis.Client, keyPrefix string, requestsPerMinute int) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:            client,
		keyPrefix:         keyPrefix,
		requestsPerMinute: requestsPerMinute,
		windowSize:        time.Minute,
	}
}

// Allow checks the sliding window for the key.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", rl.keyPrefix, key)
	now := time.Now()
	windowStart := now.Add(-rl.windowSize)

	pipe := rl.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.Unix(), 10))
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.Unix()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, redisKey, rl.windowSize+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis rate limiting error: %w", err)
	}

	count, err := countCmd.Result()
	if err != nil {
		return false, fmt.Errorf("failed to get request count: %w", err)
	}
	return count < int64(rl.requestsPerMinute), nil
}

// RateLimitConfig holds configuration for rate limiting.
type RateLimitConfig struct {
	// KeyGenerator derives the limit key from a request, usually the client
	// IP or the authenticated user ID.
	KeyGenerator func(c *gin.Context) string
	// RequestsPerMinute is the per-key budget.
	RequestsPerMinute int
	// RedisAddr enables distributed limiting when non-empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// CleanupInterval controls how often stale in-memory limiters are
	// dropped (default 5 minutes).
	CleanupInterval time.Duration
	// MaxAge is the inactivity threshold for dropping a limiter (default 10
	// minutes).
	MaxAge time.Duration
}

// RateLimitManager owns the per-key limiters and their cleanup lifecycle.
type RateLimitManager struct {
	mu       sync.Mutex
	limiters map[string]*RateLimiter
	redis    *RedisRateLimiter
	config   RateLimitConfig
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewRateLimitManager creates a rate limit manager. When RedisAddr is set the
// limit is shared across instances; otherwise each process limits locally.
func NewRateLimitManager(ctx context.Context, config RateLimitConfig) *RateLimitManager {
	if config.CleanupInterval == 0 {
		config.CleanupInterval = 5 * time.Minute
	}
	if config.MaxAge == 0 {
		config.MaxAge = 10 * time.Minute
	}

	managerCtx, cancel := context.WithCancel(ctx)
	manager := &RateLimitManager{
		limiters: make(map[string]*RateLimiter),
		config:   config,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		manager.redis = NewRedisRateLimiter(client, "rate_limit", config.RequestsPerMinute)
	}

	go manager.cleanupLoop(managerCtx)
	return manager
}

// Allow checks whether a request under the key should proceed.
func (rm *RateLimitManager) Allow(ctx context.Context, key string) (bool, error) {
	if rm.redis != nil {
		return rm.redis.Allow(ctx, key)
	}
	return rm.getLimiter(key).Allow(), nil
}

func (rm *RateLimitManager) getLimiter(key string) *RateLimiter {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	limiter, ok := rm.limiters[key]
	if !ok {
		limiter = NewRateLimiter(rm.config.RequestsPerMinute,
			time.Minute/time.Duration(rm.config.RequestsPerMinute))
		rm.limiters[key] = limiter
	}
	return limiter
}

func (rm *RateLimitManager) cleanupLoop(ctx context.Context) {
	defer close(rm.done)

	ticker := time.NewTicker(rm.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rm.dropStaleLimiters()
		}
	}
}

func (rm *RateLimitManager) dropStaleLimiters() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	now := time.Now()
	for key, limiter := range rm.limiters {
		limiter.mu.Lock()
		stale := now.Sub(limiter.lastRefill) > rm.config.MaxAge
		limiter.mu.Unlock()
		if stale {
			delete(rm.limiters, key)
		}
	}
}

// Shutdown stops the cleanup goroutine.
func (rm *RateLimitManager) Shutdown() {
	rm.cancel()
	<-rm.done
}

// RateLimitMiddleware returns a rate limiting middleware and its manager.
// The manager must be shut down on server exit.
func RateLimitMiddleware(ctx context.Context, config RateLimitConfig) (gin.HandlerFunc, *RateLimitManager) {
	manager := NewRateLimitManager(ctx, config)

	middleware := func(c *gin.Context) {
		key := config.KeyGenerator(c)

		allowed, err := manager.Allow(c.Request.Context(), key)
		if err != nil {
			// Fail open: a broken limiter backend must not take the site down.
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"type":    "RATE_LIMIT_ERROR",
					"code":    "TOO_MANY_REQUESTS",
					"message": "Rate limit exceeded, try again later",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}

	return middleware, manager
}

// IPKeyGenerator limits by client IP.
func IPKeyGenerator(c *gin.Context) string {
	return c.ClientIP()
}
