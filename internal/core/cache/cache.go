package cache

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ErrMiss 缓存未命中
var ErrMiss = errors.New("cache miss")

// Backend 字节级 KV，Redis 与进程内实现二选一
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, b []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type RedisBackend struct {
	RDB *redis.Client
}

func NewRedis(addr, pass string, db int) *RedisBackend {
	return &RedisBackend{RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.RDB.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (r *RedisBackend) Set(ctx context.Context, key string, b []byte, ttl time.Duration) error {
	return r.RDB.Set(ctx, key, b, ttl).Err()
}

func (r *RedisBackend) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.RDB.Del(ctx, keys...).Err()
}

// MemoryBackend 单实例部署或未配置 redis 时使用
type MemoryBackend struct {
	c *gocache.Cache
}

func NewMemory(defaultTTL time.Duration) *MemoryBackend {
	return &MemoryBackend{c: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return v.([]byte), nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, b []byte, ttl time.Duration) error {
	m.c.Set(key, b, ttl)
	return nil
}

func (m *MemoryBackend) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.c.Delete(k)
	}
	return nil
}

type Cache struct {
	b  Backend
	sf singleflight.Group
}

func New(b Backend) *Cache { return &Cache{b: b} }

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	// 先读缓存；后端故障时直接回源
	if b, err := c.b.Get(ctx, key); err == nil {
		return b, nil
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.b.Set(ctx, key, b, ttl)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	return c.b.Del(ctx, keys...)
}
