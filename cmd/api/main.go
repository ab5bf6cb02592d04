package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"lendsqr-admin/internal/core/auth"
	"lendsqr-admin/internal/core/cache"
	"lendsqr-admin/internal/core/config"
	"lendsqr-admin/internal/core/database"
	"lendsqr-admin/internal/core/logger"
	"lendsqr-admin/internal/core/server"
	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/feature/user"
	"lendsqr-admin/internal/repo"
	"lendsqr-admin/internal/service"
	"lendsqr-admin/internal/transport/http/handler"
	"lendsqr-admin/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log)()

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret is required (APP_JWT_SECRET)")
	}

	users := mustUserRepo(cfg, log)
	statsTTL := time.Duration(cfg.Store.StatsTTL) * time.Second
	userSvc := service.NewUserService(users, cache.New(cacheBackend(cfg, log, statsTTL)), statsTTL, log)

	jwter := auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.AccessTokenTTLMin)*time.Minute)
	authSvc := service.NewAuthService(cfg.Admin.Email, cfg.Admin.PasswordHash, jwter, log)

	mode := "debug"
	if cfg.App.Env == "prod" {
		mode = "release"
	}
	r := router.NewEngine(router.Deps{
		Log:    log,
		JWT:    jwter,
		HTTP:   cfg.App.HTTP,
		Mode:   mode,
		Public: []router.Module{handler.NewAuthHandler(authSvc, log)},
		Admin:  []router.Module{handler.NewUserHandler(userSvc, log)},
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		// 写超时要比 handler 超时宽，留出写 504 的时间
		time.Duration(cfg.App.HTTP.WriteTimeoutSec+2)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
		zap.String("store", cfg.Store.Driver),
		zap.String("health", baseURL+"/health"),
		zap.String("users", baseURL+"/users"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("admin api stopped gracefully")
}

func mustUserRepo(cfg *config.Config, l *zap.Logger) domain.UserRepository {
	var seed []domain.User
	if cfg.Store.SeedFile != "" {
		s, err := repo.LoadSeed(cfg.Store.SeedFile)
		if err != nil {
			l.Warn("seed not loaded", zap.String("file", cfg.Store.SeedFile), zap.Error(err))
		}
		seed = s
	}

	if cfg.Store.Driver != "gorm" {
		l.Info("using in-memory store", zap.Int("users", len(seed)))
		return repo.NewMemoryUserRepo(seed)
	}

	db, err := database.Open(cfg.DB, l)
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))
	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&user.UserModel{}); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
	}
	ur := repo.NewUserRepo(db)
	n, err := ur.SeedIfEmpty(context.Background(), seed)
	if err != nil {
		l.Fatal("seed users", zap.Error(err))
	}
	if n > 0 {
		l.Info("seeded users", zap.Int("count", n))
	}
	return ur
}

// cacheBackend 配置了 redis 且可连通时使用 redis，否则退回进程内缓存
func cacheBackend(cfg *config.Config, l *zap.Logger, ttl time.Duration) cache.Backend {
	if cfg.Redis.Addr == "" {
		return cache.NewMemory(ttl)
	}
	rb := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rb.RDB.Ping(ctx).Err(); err != nil {
		l.Warn("redis unreachable, using memory cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		return cache.NewMemory(ttl)
	}
	return rb
}
