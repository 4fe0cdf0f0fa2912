// Package cache guarda respostas caras de calcular, como o dashboard
package cache

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	KeyDashboard = "crm:dashboard"
	KeyFollowUps    = "crm:insights:follow-ups"
)

//go:generate mockgen -source=cache.go -destination=mocks/cache.go -package=mocks

type Cache interface {
	// Get retorna false quando a chave não existe
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type redisCache struct {
	client *redis.Client
}

// New conecta ao Redis quando REDIS_ADDR está configurado; caso contrário o cache é desativado
func New(ctx context.Context, cfg config.Redis) Cache {
	if cfg.Addr == "" {
		logrus.Warn("REDIS_ADDR não configurado, cache desativado")
		return Noop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Error("Não foi possível conectar ao Redis, cache desativado")
		_ = client.Close()
		return Noop()
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return NewRedis(client)
}

func NewRedis(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}

	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

type noopCache struct{}

func Noop() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, ...string) error { return nil }
