package ez

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "lendsqr-admin/internal/transport/http/response"
)

type Binder string

const (
	BindJSON Binder = "json"
	BindNone Binder = "none" // 自己从 c.Param / c.Request 取
)

// Context 键，由鉴权中间件写入
const (
	CtxUID    = "uid"
	CtxRole   = "role"
	CtxClaims = "claims"
)

// AErr 带 HTTP 状态码的业务错误
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Code: http.StatusConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

func checkRole(c *gin.Context, roles []string) error {
	if len(roles) == 0 {
		return nil
	}
	if c.GetString(CtxUID) == "" {
		return Unauthorized("unauthorized")
	}
	if !slices.Contains(roles, c.GetString(CtxRole)) {
		return Forbidden("forbidden")
	}
	return nil
}

// fail AErr 按自带状态码输出，其余错误一律 500 并记录日志
func (e EZ) fail(c *gin.Context, err error) {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Code >= http.StatusInternalServerError {
			e.log.Error("action failed", zap.String("path", c.FullPath()), zap.Error(err))
		}
		resp.Fail(c, ae.Code, ae.Error())
		return
	}
	e.log.Error("action failed", zap.String("path", c.FullPath()), zap.Error(err))
	resp.Fail(c, http.StatusInternalServerError, err.Error())
}

// Action 一行注册一个接口：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Roles   []string // 非空时要求已登录且角色在列表内；身份由分组上的鉴权中间件写入
	Status  int      // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if err := checkRole(c, a.Roles); err != nil {
			e.fail(c, err)
			return
		}

		var in I
		if a.Binder == BindJSON {
			if err := c.ShouldBindJSON(&in); err != nil {
				e.fail(c, BadRequest(err.Error()))
				return
			}
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			e.fail(c, err)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}
