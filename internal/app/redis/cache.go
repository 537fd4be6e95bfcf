package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrCacheMiss = errors.New("cache miss")

const (
	cachePrefix   = "cache"
	versionPrefix = "cachever"
)

// Кэш списков по группам ресурсов. Инвалидация - инкремент версии группы,
// старые ключи истекают сами по TTL.

func (c *Client) groupVersion(ctx context.Context, group string) (string, error) {
	v, err := c.client.Get(ctx, c.key(versionPrefix, group)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return v, err
}

func (c *Client) cacheKey(ctx context.Context, group, key string) (string, error) {
	v, err := c.groupVersion(ctx, group)
	if err != nil {
		return "", err
	}
	return c.key(cachePrefix, group, v, key), nil
}

// GetJSON читает закэшированный ответ в dest, ErrCacheMiss если его нет
func (c *Client) GetJSON(ctx context.Context, group, key string, dest interface{}) error {
	k, err := c.cacheKey(ctx, group, key)
	if err != nil {
		return err
	}

	val, err := c.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

func (c *Client) SetJSON(ctx context.Context, group, key string, value interface{}, ttl time.Duration) error {
	k, err := c.cacheKey(ctx, group, key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, k, data, ttl).Err()
}

// Invalidate сбрасывает все закэшированные ответы групп
func (c *Client) Invalidate(ctx context.Context, groups ...string) error {
	pipe := c.client.Pipeline()
	for _, g := range groups {
		pipe.Incr(ctx, c.key(versionPrefix, g))
	}
	_, err := pipe.Exec(ctx)
	return err
}
