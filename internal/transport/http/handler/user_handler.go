package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lendsqr-admin/internal/core/auth"
	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/query"
	"lendsqr-admin/internal/service"
	"lendsqr-admin/internal/transport/http/ez"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, l *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: l}
}

var adminOnly = []string{auth.RoleAdmin}

type statusIn struct {
	Status string `json:"status" binding:"required"`
}

type okOut struct {
	OK bool `json:"ok"`
}

func (h *UserHandler) Priority() int { return 10 }

func (h *UserHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	// 查询串与客户端共用同一套编码
	ez.RegisterAction(e, ez.Action[struct{}, *service.ListResult]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindNone,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ *struct{}) (*service.ListResult, error) {
			st := query.DecodeValues(c.Request.URL.Query())
			res, err := h.svc.List(c.Request.Context(), st)
			if err != nil {
				return nil, mapErr(err)
			}
			return res, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, mapErr(err)
			}
			return u, nil
		},
	})

	// 只允许修改 status
	ez.RegisterAction(e, ez.Action[statusIn, *domain.User]{
		Method: http.MethodPatch,
		Path:   "/users/:id",
		Binder: ez.BindJSON,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, in *statusIn) (*domain.User, error) {
			u, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
			if err != nil {
				return nil, mapErr(err)
			}
			return u, nil
		},
	})

	ez.RegisterAction(e, ez.Action[domain.User, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Roles:  adminOnly,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.User) (*domain.User, error) {
			u, err := h.svc.Create(c.Request.Context(), *in)
			if err != nil {
				return nil, mapErr(err)
			}
			return u, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, okOut]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ *struct{}) (okOut, error) {
			if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
				return okOut{}, mapErr(err)
			}
			return okOut{OK: true}, nil
		},
	})

	h.rowAction(e, "activate", h.svc.Activate)
	h.rowAction(e, "blacklist", h.svc.Blacklist)
	h.rowAction(e, "toggle", h.svc.Toggle)

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Stats]{
		Method: http.MethodGet,
		Path:   "/stats",
		Binder: ez.BindNone,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Stats, error) {
			s, err := h.svc.Stats(c.Request.Context())
			if err != nil {
				return nil, mapErr(err)
			}
			return s, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.FilterOptions]{
		Method: http.MethodGet,
		Path:   "/filters",
		Binder: ez.BindNone,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.FilterOptions, error) {
			f, err := h.svc.Filters(c.Request.Context())
			if err != nil {
				return nil, mapErr(err)
			}
			return f, nil
		},
	})
}

type rowFn func(ctx context.Context, id string) (*domain.User, error)

// rowAction 列表行菜单里的快捷操作：POST /users/:id/<name>
func (h *UserHandler) rowAction(e ez.EZ, name string, fn rowFn) {
	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users/:id/" + name,
		Binder: ez.BindNone,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			u, err := fn(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, mapErr(err)
			}
			return u, nil
		},
	})
}
