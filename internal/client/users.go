package client

import (
	"context"
	"net/http"
	"net/url"

	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/engine"
	"lendsqr-admin/internal/query"
)

type ListResponse struct {
	engine.Paginated[domain.User]
	Search   string `json:"search"`
	Adjusted bool   `json:"adjusted"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	Email     string `json:"email"`
}

// UserPatch 部分更新；目前后台只允许修改 status
type UserPatch struct {
	Status domain.Status `json:"status,omitempty"`
}

// UsersPath 构造列表请求路径，空参数不出现在查询串里
func UsersPath(st query.State) string {
	qs := query.Encode(st)
	if qs == "" {
		return "/users"
	}
	return "/users?" + qs
}

func userPath(id string, suffix string) string {
	return "/users/" + url.PathEscape(id) + suffix
}

func (c *Client) ListUsers(ctx context.Context, st query.State) (*ListResponse, error) {
	var out ListResponse
	if err := c.Request(ctx, UsersPath(st), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := c.Request(ctx, userPath(id, ""), RequestOptions{}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch UserPatch) (*domain.User, error) {
	var u domain.User
	err := c.Request(ctx, userPath(id, ""), RequestOptions{Method: http.MethodPatch, Body: patch}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id string, st domain.Status) (*domain.User, error) {
	return c.UpdateUser(ctx, id, UserPatch{Status: st})
}

func (c *Client) action(ctx context.Context, id, name string) (*domain.User, error) {
	var u domain.User
	if err := c.Request(ctx, userPath(id, "/"+name), RequestOptions{Method: http.MethodPost}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ToggleStatus active <-> inactive，其它状态一律激活
func (c *Client) ToggleStatus(ctx context.Context, id string) (*domain.User, error) {
	return c.action(ctx, id, "toggle")
}

func (c *Client) Activate(ctx context.Context, id string) (*domain.User, error) {
	return c.action(ctx, id, "activate")
}

func (c *Client) Blacklist(ctx context.Context, id string) (*domain.User, error) {
	return c.action(ctx, id, "blacklist")
}

func (c *Client) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	var out domain.User
	if err := c.Request(ctx, "/users", RequestOptions{Method: http.MethodPost, Body: u}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	var out struct {
		OK bool `json:"ok"`
	}
	return c.Request(ctx, userPath(id, ""), RequestOptions{Method: http.MethodDelete}, &out)
}

func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var s domain.Stats
	if err := c.Request(ctx, "/stats", RequestOptions{}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Filters(ctx context.Context) (*domain.FilterOptions, error) {
	var f domain.FilterOptions
	if err := c.Request(ctx, "/filters", RequestOptions{}, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *Client) Organizations(ctx context.Context) ([]string, error) {
	f, err := c.Filters(ctx)
	if err != nil {
		return nil, err
	}
	return f.Organizations, nil
}

// Login 成功后把令牌写入 Session
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.Request(ctx, "/auth/login", RequestOptions{Method: http.MethodPost, Body: body}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &HTTPError{Message: errNoToken.Error(), Status: http.StatusOK, Err: errNoToken}
	}
	if err := c.session.SetToken(ctx, out.Token); err != nil {
		return nil, &HTTPError{Message: "store token: " + err.Error(), Err: err}
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error { return c.session.Clear(ctx) }
