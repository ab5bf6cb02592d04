package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/query"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRequestJSONErrorMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
	})
	_, err := c.GetUser(context.Background(), "42")

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "user not found", he.Message)
	assert.Equal(t, 404, he.Status)
	assert.Equal(t, map[string]any{"error": "user not found"}, he.Data)
	assert.True(t, IsNotFound(err))
}

func TestRequestTextErrorMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, " upstream down \n")
	})
	err := c.Request(context.Background(), "/x", RequestOptions{}, nil)

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "upstream down", he.Message)
	assert.Equal(t, 502, he.Status)
}

func TestRequestGenericErrorMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "{not json")
	})
	err := c.Request(context.Background(), "/x", RequestOptions{}, nil)

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "Request failed (500)", he.Message)
	assert.Nil(t, he.Data)
}

func TestRequestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(srv.URL)

	err := c.Request(context.Background(), "/x", RequestOptions{}, nil)
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 0, he.Status)
	assert.Error(t, he.Err)
}

func TestContentTypeOnlyWithBody(t *testing.T) {
	var gotCT []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotCT = append(gotCT, r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	ctx := context.Background()
	require.NoError(t, c.Request(ctx, "/a", RequestOptions{}, nil))
	require.NoError(t, c.Request(ctx, "/b", RequestOptions{Method: http.MethodPost, Body: map[string]int{"a": 1}}, nil))
	assert.Equal(t, []string{"", "application/json"}, gotCT)
}

func TestNoContentAndTextBodies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "pong")
	})
	ctx := context.Background()

	var m map[string]any
	require.NoError(t, c.Request(ctx, "/empty", RequestOptions{Method: http.MethodDelete}, &m))
	assert.Nil(t, m)

	var s string
	require.NoError(t, c.Request(ctx, "/ping", RequestOptions{}, &s))
	assert.Equal(t, "pong", s)

	err := c.Request(ctx, "/ping", RequestOptions{}, &m)
	assert.Equal(t, 200, StatusOf(err))
}

func TestLoginStoresTokenAndAuthenticates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in["password"] != "pw" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
				return
			}
			writeJSON(w, http.StatusOK, LoginResponse{Token: "tok-1", Email: in["email"]})
		case "/stats":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
				return
			}
			writeJSON(w, http.StatusOK, domain.Stats{TotalUsers: 3})
		}
	})
	ctx := context.Background()

	_, err := c.Login(ctx, "admin@lendsqr.com", "nope")
	assert.True(t, IsUnauthorized(err))
	assert.False(t, c.Authenticated(ctx))

	_, err = c.Stats(ctx)
	assert.True(t, IsUnauthorized(err))

	res, err := c.Login(ctx, "admin@lendsqr.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "admin@lendsqr.com", res.Email)
	assert.True(t, c.Authenticated(ctx))

	s, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalUsers)

	require.NoError(t, c.Logout(ctx))
	assert.False(t, c.Authenticated(ctx))
}

func TestLoginWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{})
	})
	_, err := c.Login(context.Background(), "a", "b")
	assert.ErrorIs(t, err, errNoToken)
}

func TestListUsersSendsEncodedQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []domain.User{{ID: "1"}}, "page": 2, "pageSize": 10, "total": 11, "totalPages": 2, "search": "ade",
		})
	}, WithSession(NewMemorySession("t")))

	st := query.State{Page: 2, Search: "ade", Filters: query.Filters{Status: "active"}}
	res, err := c.ListUsers(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, "page=2&search=ade&status=active", gotQuery)
	assert.Equal(t, 11, res.Total)
	assert.Equal(t, "ade", res.Search)
	require.Len(t, res.Data, 1)

	assert.Equal(t, "/users", UsersPath(query.State{}))
}

func TestRowActionsHitDedicatedRoutes(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		writeJSON(w, http.StatusOK, domain.User{ID: "7"})
	})
	ctx := context.Background()
	_, _ = c.Activate(ctx, "7")
	_, _ = c.Blacklist(ctx, "7")
	_, _ = c.ToggleStatus(ctx, "7")
	_, _ = c.UpdateStatus(ctx, "7", domain.StatusPending)
	assert.Equal(t, []string{
		"POST /users/7/activate", "POST /users/7/blacklist", "POST /users/7/toggle", "PATCH /users/7",
	}, paths)
}

func TestRetryOnlyForGET(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "busy"})
			return
		}
		writeJSON(w, http.StatusOK, domain.Stats{TotalUsers: 1})
	}, WithRetry(RetryConfig{Enabled: true, MaxRetries: 5, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}))
	ctx := context.Background()

	s, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalUsers)
	assert.Equal(t, int32(3), calls.Load())

	calls.Store(0)
	_, err = c.ToggleStatus(ctx, "1")
	assert.Equal(t, 503, StatusOf(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetryStopsOnClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "nope"})
	}, WithRetry(RetryConfig{Enabled: true, MaxRetries: 5, InitialInterval: time.Millisecond}))

	_, err := c.GetUser(context.Background(), "1")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&HTTPError{Message: "dial", Err: errors.New("refused")}))
	assert.False(t, isRetryable(&HTTPError{Message: "x"}))
	assert.False(t, isRetryable(&HTTPError{Err: context.Canceled}))
	assert.True(t, isRetryable(&HTTPError{Status: 504}))
	assert.False(t, isRetryable(&HTTPError{Status: 400}))
}

func TestHTTPErrorString(t *testing.T) {
	assert.Equal(t, "boom (status 500)", (&HTTPError{Message: "boom", Status: 500}).Error())
	assert.Equal(t, "dial", (&HTTPError{Message: "dial"}).Error())
	assert.Equal(t, 0, StatusOf(errors.New("plain")))
}

func TestListUsersDecodesNumericIdentifiers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"1","phoneNumber":8071234567,"bvn":7060780922,` +
			`"guarantors":[{"guarantorPhoneNumber":"07060780922"}]}],"page":1,"pageSize":10,"total":1,"totalPages":1}`))
	}, WithSession(NewMemorySession("t")))

	res, err := c.ListUsers(context.Background(), query.State{})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, domain.NumString("8071234567"), res.Data[0].PhoneNumber)
	assert.Equal(t, "7060780922", res.Data[0].BVN.String())
	assert.Equal(t, domain.NumString("07060780922"), res.Data[0].Guarantors[0].PhoneNumber)
}
