package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig 仅对 GET 生效；默认关闭，失败即终态
type RetryConfig struct {
	Enabled         bool
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Enabled:         true,
		MaxRetries:      3,
		InitialInterval: 300 * time.Millisecond,
		MaxInterval:     3 * time.Second,
		Multiplier:      2,
	}
}

func normalizeRetryConfig(cfg RetryConfig) RetryConfig {
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 300 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 3 * time.Second
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return cfg
}

// isRetryable 网络错误和 502/503/504 可重试；上下文取消不重试
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch StatusOf(err) {
	case 0:
		var he *HTTPError
		return errors.As(err, &he) && he.Err != nil
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func doWithRetry(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error) error {
	if !cfg.Enabled {
		return fn(ctx)
	}
	cfg = normalizeRetryConfig(cfg)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.Multiplier = cfg.Multiplier
	bo.MaxElapsedTime = 0

	op := func() error {
		err := fn(ctx)
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	b := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(cfg.MaxRetries)), ctx)
	return backoff.Retry(op, b)
}
