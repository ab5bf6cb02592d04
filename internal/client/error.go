package client

import (
	"errors"
	"fmt"
)

// HTTPError 客户端唯一的失败类型。Status 为 0 表示请求未拿到响应（网络/超时）。
type HTTPError struct {
	Message string
	Status  int
	Data    any // 已解析的错误体，解析失败为 nil
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// StatusOf 非 HTTPError 返回 0
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

func IsNotFound(err error) bool     { return StatusOf(err) == 404 }
func IsUnauthorized(err error) bool { return StatusOf(err) == 401 }

func failedMessage(status int) string { return fmt.Sprintf("Request failed (%d)", status) }
