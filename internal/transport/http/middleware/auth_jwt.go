package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lendsqr-admin/internal/core/auth"
	"lendsqr-admin/internal/transport/http/ez"
	resp "lendsqr-admin/internal/transport/http/response"
)

func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Fail(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimSpace(strings.TrimPrefix(ah, "Bearer ")))
		if err != nil {
			resp.Fail(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.Fail(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Set(ez.CtxClaims, claims)
		c.Set(ez.CtxUID, claims.UID)
		c.Set(ez.CtxRole, claims.Role)
		c.Next()
	}
}
