package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lendsqr-admin/internal/transport/http/ez"
)

// 查询串中按 key 脱敏
var sensitiveKeys = map[string]struct{}{
	"password": {}, "pwd": {}, "token": {}, "authorization": {},
	"secret": {}, "client_secret": {}, "access_token": {}, "bvn": {},
}

func MaskQuery(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
			out[k] = []string{"****"}
			continue
		}
		out[k] = v
	}
	return out
}

// AccessFields 给 ginzap 的访问日志追加请求号、操作人和脱敏后的查询串
func AccessFields(c *gin.Context) []zapcore.Field {
	fields := []zapcore.Field{zap.String("rid", c.GetString(KeyRequestID))}
	if uid := c.GetString(ez.CtxUID); uid != "" {
		fields = append(fields, zap.String("uid", uid))
	}
	if q := c.Request.URL.Query(); len(q) > 0 {
		fields = append(fields, zap.String("q", MaskQuery(q).Encode()))
	}
	return append(fields, zap.Int("size", c.Writer.Size()))
}
