package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lendsqr-admin/internal/client"
	"lendsqr-admin/internal/core/auth"
	"lendsqr-admin/internal/core/config"
	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/query"
	"lendsqr-admin/internal/repo"
	"lendsqr-admin/internal/service"
	"lendsqr-admin/internal/transport/http/handler"
	"lendsqr-admin/pkg/utils"
)

const adminEmail = "admin@lendsqr.com"

func testUsers() []domain.User {
	return []domain.User{
		{ID: "1", UserName: "adedeji", FullName: "Adedeji Adeyemi", Organization: "Lendsqr", Status: domain.StatusActive, CreatedAt: "2020-05-15T10:00:00Z", LoanRepayment: 10},
		{ID: "2", UserName: "debby", FullName: "Debby Ogana", Organization: "Irorun", Status: domain.StatusPending, CreatedAt: "2020-04-30T10:00:00Z", AccountBalance: 3},
		{ID: "3", UserName: "grace", FullName: "Grace Effiom", Organization: "Lendstar", Status: domain.StatusBlacklisted, CreatedAt: "2020-04-30T18:30:00Z"},
	}
}

func setup(t *testing.T) (*httptest.Server, *auth.JWTer) {
	t.Helper()
	log := zap.NewNop()
	hash, err := utils.HashPassword("pw")
	require.NoError(t, err)

	j := auth.NewJWTer("test-secret", "test", time.Hour)
	users := service.NewUserService(repo.NewMemoryUserRepo(testUsers()), nil, time.Minute, log)
	authSvc := service.NewAuthService(adminEmail, hash, j, log)

	r := NewEngine(Deps{
		Log:    log,
		JWT:    j,
		HTTP:   config.HTTP{WriteTimeoutSec: 5},
		Mode:   "test",
		Public: []Module{handler.NewAuthHandler(authSvc, log)},
		Admin:  []Module{handler.NewUserHandler(users, log)},
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, j
}

func loggedIn(t *testing.T, srv *httptest.Server) *client.Client {
	t.Helper()
	c := client.New(srv.URL)
	_, err := c.Login(context.Background(), adminEmail, "pw")
	require.NoError(t, err)
	return c
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	srv, _ := setup(t)
	for _, p := range []string{"/health", "/metrics"} {
		res, err := http.Get(srv.URL + p)
		require.NoError(t, err)
		_ = res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode, p)
	}
}

func TestAuthRequired(t *testing.T) {
	srv, j := setup(t)
	ctx := context.Background()

	_, err := client.New(srv.URL).Stats(ctx)
	var he *client.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "missing token", he.Message)

	_, err = client.New(srv.URL, client.WithSession(client.NewMemorySession("junk"))).Stats(ctx)
	assert.True(t, client.IsUnauthorized(err))

	tok, _, err := j.Issue("u1", "u1@x.com", "viewer")
	require.NoError(t, err)
	viewer := client.New(srv.URL, client.WithSession(client.NewMemorySession(tok)))
	_, err = viewer.Stats(ctx)
	assert.Equal(t, http.StatusForbidden, client.StatusOf(err))
	_, err = viewer.UpdateStatus(ctx, "1", domain.StatusActive)
	assert.Equal(t, http.StatusForbidden, client.StatusOf(err))

	_, err = client.New(srv.URL).Login(ctx, adminEmail, "bad")
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid email or password", he.Message)
}

func TestListUsersEndToEnd(t *testing.T) {
	srv, _ := setup(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	res, err := c.ListUsers(ctx, query.State{Search: "2020-04-30", SortBy: "createdAt", SortDir: query.Desc})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "2020-04-30", res.Search)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "3", res.Data[0].ID)

	res, err = c.ListUsers(ctx, query.State{Page: 5, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 2, res.TotalPages)
	assert.True(t, res.Adjusted)

	res, err = c.ListUsers(ctx, query.State{Filters: query.Filters{Organization: "irorun"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestUserOperations(t *testing.T) {
	srv, _ := setup(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	u, err := c.GetUser(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "debby", u.UserName)

	_, err = c.GetUser(ctx, "404")
	var he *client.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "user not found", he.Message)

	_, err = c.UpdateStatus(ctx, "2", "frozen")
	assert.Equal(t, http.StatusBadRequest, client.StatusOf(err))

	u, err = c.UpdateStatus(ctx, "2", domain.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, u.Status)

	u, err = c.ToggleStatus(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, u.Status)

	u, err = c.Blacklist(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBlacklisted, u.Status)

	u, err = c.Activate(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, u.Status)

	created, err := c.CreateUser(ctx, domain.User{UserName: "newbie", Organization: "Kredi"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)

	_, err = c.CreateUser(ctx, domain.User{ID: "1"})
	assert.Equal(t, http.StatusConflict, client.StatusOf(err))

	require.NoError(t, c.DeleteUser(ctx, created.ID))
	assert.True(t, client.IsNotFound(c.DeleteUser(ctx, created.ID)))
}

func TestStatsAndFilters(t *testing.T) {
	srv, _ := setup(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	s, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{TotalUsers: 3, ActiveUsers: 1, UsersWithLoans: 1, UsersWithSavings: 1}, *s)

	_, err = c.Activate(ctx, "2")
	require.NoError(t, err)
	s, _ = c.Stats(ctx)
	assert.Equal(t, 2, s.ActiveUsers)

	orgs, err := c.Organizations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lendsqr", "Irorun", "Lendstar"}, orgs)
}

func TestUnknownRouteAndBadBody(t *testing.T) {
	srv, _ := setup(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	err := c.Request(ctx, "/nope", client.RequestOptions{}, nil)
	var he *client.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "route not found", he.Message)

	err = c.Request(ctx, "/users/1", client.RequestOptions{Method: http.MethodPatch, Body: map[string]string{}}, nil)
	assert.Equal(t, http.StatusBadRequest, client.StatusOf(err))
}

func TestRequestIDEchoed(t *testing.T) {
	srv, _ := setup(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, "rid-1", res.Header.Get("X-Request-ID"))
}
