package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss はキャッシュミスを表すエラーです
var ErrCacheMiss = errors.New("cache miss")

// Cache は読み取りクエリ結果の汎用キャッシュを提供します
// 公開フィードのような読み取りが支配的なクエリで使用します
type Cache struct {
	client     *redis.Client
	namespace  string
	defaultTTL time.Duration
}

// NewCache は新しいCacheを作成します
func NewCache(client *redis.Client, namespace string, defaultTTL time.Duration) *Cache {
	return &Cache{
		client:     client,
		namespace:  namespace,
		defaultTTL: defaultTTL,
	}
}

// Get はキャッシュから値を取得します
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	cacheKey := CacheKey(c.namespace, key)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return nil
}

// Set はキャッシュに値を設定します
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl ...time.Duration) error {
	cacheKey := CacheKey(c.namespace, key)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	expiry := c.defaultTTL
	if len(ttl) > 0 {
		expiry = ttl[0]
	}

	if err := c.client.Set(ctx, cacheKey, data, expiry).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Delete はキャッシュから値を削除します（書き込み後の無効化用）
func (c *Cache) Delete(ctx context.Context, key string) error {
	cacheKey := CacheKey(c.namespace, key)
	return c.client.Del(ctx, cacheKey).Err()
}
