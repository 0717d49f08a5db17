package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/momento/fulfillment/internal/infrastructure/config"
)

// IdempotencyStoreFactory creates idempotency stores based on configuration
type IdempotencyStoreFactory struct {
	redisConfig      config.RedisConfig
	logger           *zap.Logger
	inMemoryFallback bool
}

// FactoryOption configures the factory
type FactoryOption func(*IdempotencyStoreFactory)

// WithLogger sets the logger used to report store selection
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback falls back to the in-memory store when Redis is
// unreachable instead of failing startup
func WithInMemoryFallback(enabled bool) FactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.inMemoryFallback = enabled
	}
}

// NewIdempotencyStoreFactory creates a new factory
func NewIdempotencyStoreFactory(redisConfig config.RedisConfig, opts ...FactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{
		redisConfig:      redisConfig,
		logger:           zap.NewNop(),
		inMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore creates an idempotency store. Redis is preferred when enabled;
// the in-memory store serves single-instance and development setups.
func (f *IdempotencyStoreFactory) CreateStore() (shared.IdempotencyStore, error) {
	if f.redisConfig.Enabled {
		store, err := NewRedisIdempotencyStore(f.redisConfig)
		if err == nil {
			f.logger.Info("using redis idempotency store",
				zap.String("host", f.redisConfig.Host),
				zap.Int("port", f.redisConfig.Port))
			return store, nil
		}

		if !f.inMemoryFallback {
			return nil, fmt.Errorf("failed to create redis idempotency store: %w", err)
		}

		f.logger.Warn("redis unavailable, falling back to in-memory idempotency store",
			zap.Error(err))
	}

	f.logger.Info("using in-memory idempotency store")
	return NewInMemoryIdempotencyStore(), nil
}
