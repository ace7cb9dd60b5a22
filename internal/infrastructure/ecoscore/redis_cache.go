package ecoscore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/catalogo-api/internal/application/ports"
)

var _ ports.GradeCache = (*RedisCache)(nil)

const keyPrefix = "ecoscore:"

// RedisCache guarda el grade por código de barras con TTL.
type RedisCache struct {
	rdb *redis.Client
}

// NewRedis crea el cliente desde una URL redis:// y valida la conexión.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: url inválida: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

// NewRedisCache construye la cache sobre un cliente existente.
func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

// Get devuelve ("", false, nil) si la clave no existe.
func (c *RedisCache) Get(ctx context.Context, code string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, keyPrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: get %s: %w", code, err)
	}
	return v, true, nil
}

// Set guarda el grade con expiración.
func (c *RedisCache) Set(ctx context.Context, code, grade string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, keyPrefix+code, grade, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", code, err)
	}
	return nil
}
