package client

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// TokenKey 令牌在持久化存储中的固定键
const TokenKey = "ADMIN_TOKEN"

// Session 认证上下文：构造时注入，读/写/清三个操作
type Session interface {
	Token(ctx context.Context) (string, bool)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type MemorySession struct {
	mu    sync.RWMutex
	token string
}

func NewMemorySession(token string) *MemorySession { return &MemorySession{token: token} }

func (s *MemorySession) Token(context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemorySession) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemorySession) Clear(ctx context.Context) error { return s.SetToken(ctx, "") }

// RedisSession 多个 CLI/进程共享同一令牌
type RedisSession struct {
	RDB *redis.Client
	Key string
}

func NewRedisSession(rdb *redis.Client, namespace string) *RedisSession {
	key := TokenKey
	if namespace != "" {
		key = namespace + ":" + TokenKey
	}
	return &RedisSession{RDB: rdb, Key: key}
}

func (s *RedisSession) Token(ctx context.Context) (string, bool) {
	v, err := s.RDB.Get(ctx, s.Key).Result()
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (s *RedisSession) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	return s.RDB.Set(ctx, s.Key, token, 0).Err()
}

func (s *RedisSession) Clear(ctx context.Context) error {
	if err := s.RDB.Del(ctx, s.Key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// FileSession 令牌保存在本地 yaml 文件（CLI 默认）
type FileSession struct {
	mu   sync.Mutex
	path string
}

func NewFileSession(path string) *FileSession { return &FileSession{path: path} }

func (s *FileSession) load() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")
	_ = v.ReadInConfig() // 文件不存在视为未登录
	return v
}

func (s *FileSession) Token(context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok := s.load().GetString(TokenKey)
	return tok, tok != ""
}

func (s *FileSession) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	v := s.load()
	v.Set(TokenKey, token)
	if err := v.WriteConfigAs(s.path); err != nil {
		return err
	}
	return os.Chmod(s.path, 0o600)
}

func (s *FileSession) Clear(ctx context.Context) error { return s.SetToken(ctx, "") }
