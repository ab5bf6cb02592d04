package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"lendsqr-admin/internal/core/auth"
	"lendsqr-admin/pkg/utils"
)

var ErrBadCredentials = errors.New("invalid email or password")

type LoginResult struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	Email     string `json:"email"`
}

// AuthService 单一后台账号，密码以 bcrypt 哈希配置
type AuthService struct {
	email        string
	passwordHash string
	jwt          *auth.JWTer
	log          *zap.Logger
}

func NewAuthService(email, passwordHash string, j *auth.JWTer, l *zap.Logger) *AuthService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuthService{email: strings.TrimSpace(email), passwordHash: passwordHash, jwt: j, log: l}
}

func (s *AuthService) Login(_ context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if s.email == "" || s.passwordHash == "" {
		s.log.Warn("login rejected: admin account not configured")
		return nil, ErrBadCredentials
	}
	if !strings.EqualFold(email, s.email) || !utils.CheckPassword(password, s.passwordHash) {
		s.log.Info("login failed", zap.String("email", email))
		return nil, ErrBadCredentials
	}
	tok, exp, err := s.jwt.Issue(s.email, s.email, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: tok, ExpiresAt: exp.Unix(), Email: s.email}, nil
}
