package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lendsqr-admin/internal/core/config"
)

var ErrUnsupportedDriver = errors.New("unsupported db driver")

func gormLevel(s string) logger.LogLevel {
	switch s {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

func dialector(c config.DB, l *zap.Logger) (gorm.Dialector, error) {
	switch c.Driver {
	case "postgres":
		return postgres.Open(c.DSN), nil
	case "mysql":
		dsn := NormalizeMySQLDSN(c.DSN, c.Username, c.Password)
		l.Info("mysql dsn", zap.String("dsn", MaskDSN(dsn)))
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
}

// gormConfig TranslateError 让唯一键冲突以 gorm.ErrDuplicatedKey 返回
func gormConfig(c config.DB, l *zap.Logger) *gorm.Config {
	gl := logger.New(zap.NewStdLog(l.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLevel(c.LogLevel),
		IgnoreRecordNotFoundError: true,
	})
	return &gorm.Config{Logger: gl, TranslateError: true}
}

// Open gorm 日志同样输出到 zap
func Open(c config.DB, l *zap.Logger) (*gorm.DB, error) {
	dial, err := dialector(c, l)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dial, gormConfig(c, l))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeMin) * time.Minute)
	return db.Session(&gorm.Session{
		PrepareStmt:            true,
		CreateBatchSize:        200,
		SkipDefaultTransaction: true,
	}), nil
}

// MaskDSN 隐藏 user:pass@ 中的密码
func MaskDSN(dsn string) string {
	at := strings.Index(dsn, "@")
	if at <= 0 {
		return dsn
	}
	colon := strings.Index(dsn[:at], ":")
	if colon <= 0 {
		return dsn
	}
	return dsn[:colon+1] + "****" + dsn[at:]
}

// NormalizeMySQLDSN 把 mysql:// 或 jdbc:mysql:// 形式转成 go-sql-driver 语法；已是驱动语法的原样返回
func NormalizeMySQLDSN(input, user, pass string) string {
	in := strings.TrimPrefix(strings.TrimSpace(input), "jdbc:")
	if !strings.HasPrefix(in, "mysql://") {
		return in
	}
	u, err := url.Parse(in)
	if err != nil {
		return in
	}
	q := u.Query()

	var u0, p0 string
	if u.User != nil {
		u0 = u.User.Username()
		p0, _ = u.User.Password()
	}
	u0 = firstNonEmpty(user, q.Get("user"), u0)
	p0 = firstNonEmpty(pass, q.Get("password"), p0)
	q.Del("user")
	q.Del("password")

	// JDBC 参数映射
	if enc := q.Get("characterEncoding"); enc != "" && q.Get("charset") == "" {
		q.Set("charset", enc)
	}
	if tz := q.Get("serverTimezone"); tz != "" {
		q.Set("loc", tz)
	}
	if ssl := strings.ToLower(q.Get("useSSL")); ssl != "" {
		switch ssl {
		case "true", "1":
			q.Set("tls", "true")
		case "skip-verify", "preferred":
			q.Set("tls", ssl)
		default:
			q.Set("tls", "false")
		}
	}
	for _, k := range []string{"characterEncoding", "serverTimezone", "useSSL", "useUnicode", "zeroDateTimeBehavior"} {
		q.Del(k)
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	cred := u0
	if p0 != "" {
		cred += ":" + p0
	}
	if cred != "" {
		cred += "@"
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, u.Host, strings.TrimPrefix(u.Path, "/"))
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return dsn
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
