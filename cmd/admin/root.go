package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lendsqr-admin/internal/client"
	"lendsqr-admin/internal/core/cache"
	"lendsqr-admin/internal/core/config"
	"lendsqr-admin/internal/core/logger"
)

type app struct {
	cfgPath string
	baseURL string
	session string
	redis   bool
	verbose bool

	cfg *config.Config
	log *zap.Logger
	api *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Command line console for the users admin API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
	pf.StringVar(&a.baseURL, "base-url", "", "API base URL (overrides client.baseurl)")
	pf.StringVar(&a.session, "session", "", "session file (overrides client.sessionfile)")
	pf.BoolVar(&a.redis, "redis-session", false, "keep the token in redis instead of a local file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log requests")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newUsersCmd(a),
		newStatsCmd(a),
		newHashPasswordCmd(),
	)
	return root
}

func (a *app) init() error {
	_ = godotenv.Load()
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.log, _ = logger.New(level, false)

	base := cfg.Client.BaseURL
	if a.baseURL != "" {
		base = a.baseURL
	}
	opts := []client.Option{client.WithLogger(a.log), client.WithSession(a.sessionStore())}
	if cfg.Client.Retry {
		opts = append(opts, client.WithRetry(client.DefaultRetryConfig()))
	}
	a.api = client.New(base, opts...)
	return nil
}

func (a *app) sessionStore() client.Session {
	if a.redis && a.cfg.Redis.Addr != "" {
		rb := cache.NewRedis(a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
		return client.NewRedisSession(rb.RDB, a.cfg.App.Name)
	}
	path := a.session
	if path == "" {
		path = a.cfg.Client.SessionFile
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		path = filepath.Join(home, ".lendsqr-admin", "session.yaml")
	}
	return client.NewFileSession(path)
}
