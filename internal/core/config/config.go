package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
	RateLimitRPS    float64
	RateLimitBurst  int
	MaxInFlight     int64
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // 为空则只输出到 stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

// Admin 后台登录账号（密码为 bcrypt 哈希）
type Admin struct {
	Email        string
	PasswordHash string
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Store 数据来源：memory 从种子文件加载；gorm 走数据库
type Store struct {
	Driver   string
	SeedFile string
	StatsTTL int // 秒
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Client CLI 使用的远端地址与会话文件
type Client struct {
	BaseURL     string
	SessionFile string
	Retry       bool
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	Admin  Admin
	Store  Store
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	Client Client
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "lendsqr-admin")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.ratelimitrps", 200)
	v.SetDefault("app.http.ratelimitburst", 400)
	v.SetDefault("app.http.maxinflight", 300)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.maxsizemb", 100)
	v.SetDefault("log.maxbackups", 7)
	v.SetDefault("log.maxagedays", 30)

	v.SetDefault("jwt.issuer", "lendsqr-admin")
	v.SetDefault("jwt.accesstokenttlmin", 120)

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.seedfile", "./configs/users.seed.json")
	v.SetDefault("store.statsttl", 30)

	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("client.baseurl", "http://127.0.0.1:8080")
}

// Load 读取 yaml（可缺省）并叠加 APP_ 前缀的环境变量，例如 APP_JWT_SECRET
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "./configs/config.local.yaml"
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 配置文件可缺省，仅靠默认值与环境变量运行
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	// AutomaticEnv 只作用于 Get，Unmarshal 前需显式绑定
	for _, k := range v.AllKeys() {
		_ = v.BindEnv(k)
	}
	for _, k := range []string{"jwt.secret", "admin.email", "admin.passwordhash", "db.driver", "db.dsn", "redis.addr", "log.file"} {
		_ = v.BindEnv(k)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
