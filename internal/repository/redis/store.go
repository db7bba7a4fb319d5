// Package redis keeps the shop slots in Redis so several processes can share them.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/config"
	"github.com/mamadbah2/butcher/internal/repository/kv"
)

// ErrLockNotObtained is returned when another process holds the sale lock past the wait.
var ErrLockNotObtained = errors.New("sale lock not obtained")

const lockRetryInterval = 100 * time.Millisecond

// Store implements kv.Store, kv.BatchSetter and the sale Locker on Redis.
type Store struct {
	client  goredis.UniversalClient
	locker  *redislock.Client
	prefix  string
	lockTTL time.Duration
	logger  *zap.Logger
}

var (
	_ kv.Store       = (*Store)(nil)
	_ kv.BatchSetter = (*Store)(nil)
)

// NewStore connects to Redis and verifies the connection.
func NewStore(ctx context.Context, cfg config.RedisConfig, prefix string, logger *zap.Logger) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Address, err)
	}

	return newStore(client, prefix, cfg.LockTTL, logger), nil
}

func newStore(client goredis.UniversalClient, prefix string, lockTTL time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:  client,
		locker:  redislock.New(client),
		prefix:  prefix,
		lockTTL: lockTTL,
		logger:  logger,
	}
}

// Get reads a slot; a missing key is not an error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes a slot without expiry.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// SetMany writes all slots inside MULTI/EXEC.
func (s *Store) SetMany(ctx context.Context, values map[string]string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for key, value := range values {
			pipe.Set(ctx, key, value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis multi set: %w", err)
	}
	return nil
}

// Lock obtains a distributed lock, retrying until ctx is done or the lock TTL elapses.
func (s *Store) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := s.lockKey(key)
	lock, err := s.locker.Obtain(ctx, lockKey, s.lockTTL, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(lockRetryInterval),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrLockNotObtained, lockKey)
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", lockKey, err)
	}

	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			s.logger.Warn("failed to release lock", zap.String("key", lockKey), zap.Error(err))
		}
	}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) lockKey(key string) string {
	if s.prefix == "" {
		return "lock:" + key
	}
	return s.prefix + ":lock:" + key
}
