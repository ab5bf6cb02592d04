package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	resp "lendsqr-admin/internal/transport/http/response"
)

// RateLimit 全局令牌桶
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if !lim.Allow() {
			resp.Fail(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}

// RateLimitPerIP 每 IP 一个桶，空闲 10 分钟后回收
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	buckets := gocache.New(10*time.Minute, 20*time.Minute)
	var mu sync.Mutex
	get := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if v, ok := buckets.Get(ip); ok {
			buckets.SetDefault(ip, v)
			return v.(*rate.Limiter)
		}
		lim := rate.NewLimiter(rps, burst)
		buckets.SetDefault(ip, lim)
		return lim
	}
	return func(c *gin.Context) {
		if !get(c.ClientIP()).Allow() {
			resp.Fail(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
