package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

var jsonNull = []byte("null")

// GetOrLoadJSON 以 JSON 编码缓存 *T。
// load 返回 nil 时不写缓存，返回 ErrMiss；缓存里的旧值无法解码（结构变更、null）时删除该键并回源一次。
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	fill := func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, ErrMiss
		}
		return json.Marshal(v)
	}

	b, err := c.GetOrLoad(ctx, key, ttl, fill)
	if err != nil {
		return nil, err
	}
	out, err := decodeJSON[T](b)
	if err == nil {
		return out, nil
	}
	if delErr := c.Invalidate(ctx, key); delErr != nil {
		return nil, fmt.Errorf("cache %s: %w", key, err)
	}
	if b, err = c.GetOrLoad(ctx, key, ttl, fill); err != nil {
		return nil, err
	}
	return decodeJSON[T](b)
}

func decodeJSON[T any](b []byte) (*T, error) {
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		return nil, fmt.Errorf("decode cached value: %w", ErrMiss)
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode cached value: %w", err)
	}
	return &out, nil
}
