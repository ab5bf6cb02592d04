package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 所有失败响应的统一结构
type ErrorBody struct {
	Error string `json:"error"`
}

func Msg(status int, msg string) ErrorBody {
	if msg == "" {
		msg = http.StatusText(status)
	}
	return ErrorBody{Error: msg}
}

// Fail 终止后续 handler 并写出真实 HTTP 状态码
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Msg(status, msg))
}

func OK(c *gin.Context, data any) { c.JSON(http.StatusOK, data) }
