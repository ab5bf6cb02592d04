package ez

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type nameIn struct {
	Name string `json:"name" binding:"required"`
}

func newEngine(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("")
	if role != "" {
		g.Use(func(c *gin.Context) {
			c.Set(CtxUID, "u1")
			c.Set(CtxRole, role)
		})
	}
	e := New(g, nil)
	RegisterAction(e, Action[nameIn, map[string]string]{
		Method: http.MethodPost,
		Path:   "/echo",
		Binder: BindJSON,
		Roles:  []string{"admin"},
		Status: http.StatusCreated,
		Handler: func(_ *gin.Context, in *nameIn) (map[string]string, error) {
			if in.Name == "taken" {
				return nil, Conflict("name taken")
			}
			if in.Name == "boom" {
				return nil, errors.New("db down")
			}
			return map[string]string{"name": in.Name}, nil
		},
	})
	RegisterAction(e, Action[struct{}, string]{
		Method:  http.MethodGet,
		Path:    "/open",
		Binder:  BindNone,
		Handler: func(*gin.Context, *struct{}) (string, error) { return "ok", nil },
	})
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterActionRoles(t *testing.T) {
	w := do(newEngine(""), http.MethodPost, "/echo", `{"name":"a"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(newEngine("viewer"), http.MethodPost, "/echo", `{"name":"a"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"forbidden"}`, w.Body.String())

	w = do(newEngine("admin"), http.MethodPost, "/echo", `{"name":"a"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"name":"a"}`, w.Body.String())

	w = do(newEngine(""), http.MethodGet, "/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterActionErrors(t *testing.T) {
	r := newEngine("admin")

	w := do(r, http.MethodPost, "/echo", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/echo", `{"name":"taken"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"name taken"}`, w.Body.String())

	w = do(r, http.MethodPost, "/echo", `{"name":"boom"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
