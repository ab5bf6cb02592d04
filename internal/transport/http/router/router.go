package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"lendsqr-admin/internal/core/auth"
	"lendsqr-admin/internal/core/config"
	"lendsqr-admin/internal/core/server"
	mdw "lendsqr-admin/internal/transport/http/middleware"
	resp "lendsqr-admin/internal/transport/http/response"
)

const (
	maxBody    = 1 << 20
	loginRPS   = rate.Limit(2)
	loginBurst = 10
)

type Deps struct {
	Log  *zap.Logger
	JWT  *auth.JWTer
	HTTP config.HTTP
	Mode string

	Public []Module // 无需登录
	Admin  []Module // 需要 admin 角色
}

func NewEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log, server.Options{
		Mode:         d.Mode,
		SkipLogPaths: []string{"/health", "/metrics"},
		LogFields:    mdw.AccessFields,
	})

	handlerTimeout := time.Duration(d.HTTP.WriteTimeoutSec) * time.Second
	r.Use(
		mdw.RequestID(),
		mdw.Recovery(d.Log),
		mdw.RateLimit(rate.Limit(d.HTTP.RateLimitRPS), d.HTTP.RateLimitBurst),
		mdw.ConcurrencyLimit(d.HTTP.MaxInFlight),
		mdw.MaxBodyBytes(maxBody),
		mdw.Timeout(handlerTimeout),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 登录等公开接口按 IP 限速
	public := r.Group("")
	public.Use(mdw.RateLimitPerIP(loginRPS, loginBurst))
	pubReg := &Registry{}
	pubReg.Add(d.Public...)
	pubReg.MountAll(public)

	admin := r.Group("")
	// 角色由各接口的 ez.Action.Roles 限定
	admin.Use(mdw.AuthJWT(d.JWT, ""))
	adminReg := &Registry{}
	adminReg.Add(d.Admin...)
	adminReg.MountAll(admin)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Msg(http.StatusNotFound, "route not found"))
	})
	return r
}
