package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/logger"
)

const (
	DEFAULT_KEY_PREFIX        = "memory-vault:uploads:"
	DEFAULT_LOCAL_CACHE_SIZE  = 10000
	DEFAULT_REDIS_RETRY_AFTER = 30 * time.Second
)

// Config holds the per-client request budget
type Config struct {
	RequestsPerMinute int
	Burst             int
	KeyPrefix         string
	// LocalCacheSize bounds the number of clients tracked by the in-process limiter
	LocalCacheSize int
	// RedisRetryAfter is how long the limiter stays local after a Redis failure
	RedisRetryAfter time.Duration
}

// Decision is the outcome of one admission check
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter admits requests per client key
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockLimiter
type Limiter interface {
	// Allow consumes one request from the budget of key
	Allow(ctx context.Context, key string) (Decision, error)
	// Close releases the Redis connection, if any
	Close() error
}

// limiter shares the budget across API replicas through Redis and falls back
// to an in-process token bucket per key while Redis is unreachable
type limiter struct {
	config      Config
	redis       adapter.RedisClient
	distributed adapter.RedisRateLimiter
	local       *lru.Cache[string, *rate.Limiter]
	clock       adapter.Clock

	mu        sync.Mutex
	redisDown bool
	downSince time.Time
}

// NewLimiter creates a limiter. A nil Redis client keeps every budget in process.
func NewLimiter(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	local, err := lru.New[string, *rate.Limiter](cfg.LocalCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create local limiter cache: %w", err)
	}

	l := &limiter{
		config: cfg,
		redis:  rc,
		local:  local,
		clock:  clock,
	}

	if rc != nil {
		l.distributed = rc.NewRateLimiter()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("Redis unavailable, upload limits are kept in process", zap.Error(err))
			l.markRedisDown()
		}
	}

	logger.Info("Upload rate limiter initialized",
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("burst", cfg.Burst),
		zap.Bool("distributed", rc != nil),
	)

	return l, nil
}

func (l *limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.useRedis() {
		decision, err := l.allowDistributed(ctx, key)
		if err == nil {
			return decision, nil
		}
		if ctx.Err() != nil {
			return Decision{}, ctx.Err()
		}

		logger.Warn("Redis rate limiter error, falling back to local", zap.String("key", key), zap.Error(err))
		l.markRedisDown()
	}

	return l.allowLocal(key), nil
}

func (l *limiter) allowDistributed(ctx context.Context, key string) (Decision, error) {
	res, err := l.distributed.Allow(ctx, l.config.KeyPrefix+key, redis_rate.Limit{
		Rate:   l.config.RequestsPerMinute,
		Burst:  l.config.Burst,
		Period: time.Minute,
	})
	if err != nil {
		return Decision{}, err
	}

	return Decision{
		Allowed:    res.Allowed > 0,
		Remaining:  res.Remaining,
		RetryAfter: max(res.RetryAfter, 0),
	}, nil
}

func (l *limiter) allowLocal(key string) Decision {
	bucket, ok := l.local.Get(key)
	if !ok {
		bucket = rate.NewLimiter(rate.Limit(float64(l.config.RequestsPerMinute)/60), l.config.Burst)
		// Another request may have added the key meanwhile
		if previous, found, _ := l.local.PeekOrAdd(key, bucket); found {
			bucket = previous
		}
	}

	now := l.clock.Now()
	if bucket.AllowN(now, 1) {
		return Decision{Allowed: true, Remaining: int(bucket.TokensAt(now))}
	}

	return Decision{RetryAfter: time.Minute / time.Duration(l.config.RequestsPerMinute)}
}

// useRedis reports whether the distributed limiter should be tried,
// giving Redis another chance once RedisRetryAfter has passed
func (l *limiter) useRedis() bool {
	if l.distributed == nil {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.redisDown && l.clock.Since(l.downSince) >= l.config.RedisRetryAfter {
		l.redisDown = false
		logger.Info("Retrying Redis rate limiter")
	}
	return !l.redisDown
}

func (l *limiter) markRedisDown() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.redisDown {
		l.redisDown = true
		l.downSince = l.clock.Now()
	}
}

func (l *limiter) Close() error {
	if l.redis == nil {
		return nil
	}
	if err := l.redis.Close(); err != nil {
		return fmt.Errorf("failed to close redis: %w", err)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.RequestsPerMinute <= 0 {
		return errors.New("requests_per_minute must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerMinute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DEFAULT_KEY_PREFIX
	}
	if cfg.LocalCacheSize <= 0 {
		cfg.LocalCacheSize = DEFAULT_LOCAL_CACHE_SIZE
	}
	if cfg.RedisRetryAfter <= 0 {
		cfg.RedisRetryAfter = DEFAULT_REDIS_RETRY_AFTER
	}
	return nil
}
