package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/org-chart-api/internal/config"
	"github.com/org-chart-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "orgchart:snapshot:"

// Store - хранилище закешированных выборок
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSource отдаёт выборку из кеша, пока не истёк TTL.
// Ошибки кеша не прерывают запрос: данные берутся из вложенного источника.
type CachedSource struct {
	next   Source
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedSource оборачивает источник кешем
func NewCachedSource(next Source, store Store, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{next: next, store: store, ttl: ttl, logger: logger}
}

func (s *CachedSource) Fetch(ctx context.Context, token string) (*domain.Snapshot, error) {
	key := cacheKey(token)

	data, err := s.store.Get(ctx, key)
	switch {
	case err == nil:
		var snap domain.Snapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			s.logger.Debug("snapshot served from cache", slog.Int("departments", len(snap.Departments)))
			return &snap, nil
		}
		s.logger.Warn("ignoring corrupted cache entry", slog.String("key", key))
	case !errors.Is(err, domain.ErrCacheMiss):
		s.logger.Warn("cache read failed", slog.Any("error", err))
	}

	snap, err := s.next.Fetch(ctx, token)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(snap)
	if err != nil {
		s.logger.Warn("failed to encode snapshot for cache", slog.Any("error", err))
		return snap, nil
	}
	if err := s.store.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("cache write failed", slog.Any("error", err))
	}

	return snap, nil
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// RedisStore хранит выборки в Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создаёт хранилище поверх клиента Redis
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	return data, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// NewRedisClient подключается к Redis; недоступность сервера только логируется
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("unable to reach redis", slog.String("addr", cfg.Addr), slog.Any("error", err))
	} else {
		logger.Info("connected to redis", slog.String("addr", cfg.Addr))
	}

	return client
}
