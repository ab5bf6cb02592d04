package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lendsqr-admin/internal/service"
	"lendsqr-admin/internal/transport/http/ez"
)

type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, l *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: l}
}

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Priority() int { return 1 }

func (h *AuthHandler) Mount(g *gin.RouterGroup) {
	ez.RegisterAction(ez.New(g, h.log), ez.Action[loginIn, *service.LoginResult]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*service.LoginResult, error) {
			res, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return nil, mapErr(err)
			}
			return res, nil
		},
	})
}
