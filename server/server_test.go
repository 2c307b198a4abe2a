package server_test

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-console/clients"
	"github.com/jrsteele09/go-auth-console/dashboard"
	"github.com/jrsteele09/go-auth-console/internal/config"
	"github.com/jrsteele09/go-auth-console/internal/fakeapi"
	"github.com/jrsteele09/go-auth-console/internal/metrics"
	"github.com/jrsteele09/go-auth-console/server"
	"github.com/jrsteele09/go-auth-console/tenants"
	"github.com/jrsteele09/go-auth-console/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	api *fakeapi.Server
	srv *server.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := fakeapi.New()
	apiSrv := httptest.NewServer(api.Handler())
	t.Cleanup(apiSrv.Close)

	v := viper.New()
	v.Set(config.KeyAPIURL, apiSrv.URL)
	v.Set(config.KeyEnv, "TEST")
	v.Set(config.KeyAllowedOrigins, []string{"https://console.example.com"})

	reg := prometheus.NewRegistry()
	return &fixture{
		api: api,
		srv: server.New(config.New(v), server.WithMetrics(metrics.New(reg), reg)),
	}
}

func (f *fixture) do(method, path, token string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, path, reader)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.srv.ServeHTTP(w, r)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, server.RouteHealth, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", decodeBody[map[string]string](t, w)["status"])
	require.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
}

func TestUnauthorizedRedirectsToLogin(t *testing.T) {
	f := newFixture(t)

	for name, token := range map[string]string{
		"missing":   "",
		"malformed": "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			w := f.do(http.MethodGet, server.RouteContext, token, "")
			require.Equal(t, http.StatusUnauthorized, w.Code)

			body := decodeBody[server.ErrorResponse](t, w)
			require.Equal(t, "unauthorized", body.Error)
			require.Equal(t, server.LoginPage, body.Redirect)
		})
	}
	require.Empty(t, f.api.Requests())
}

func TestContext(t *testing.T) {
	f := newFixture(t)

	t.Run("system admin", func(t *testing.T) {
		w := f.do(http.MethodGet, server.RouteContext, f.api.AdminToken(), "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody[server.ContextResponse](t, w)
		require.True(t, body.Authorization.IsAdmin)
		require.True(t, body.Authorization.HasAdminAccess)
		require.Equal(t, "/admin", body.Authorization.APIBasePath)
		require.Equal(t, "root", body.Claims.Username)
	})

	t.Run("tenant user", func(t *testing.T) {
		w := f.do(http.MethodGet, server.RouteContext, f.api.TenantToken("t1", false), "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody[server.ContextResponse](t, w)
		require.False(t, body.Authorization.IsAdmin)
		require.True(t, body.Authorization.IsTenantUser)
		require.False(t, body.Authorization.HasAdminAccess)
		require.Equal(t, "t1", body.Authorization.TenantID)
		require.Equal(t, "/tenant", body.Authorization.APIBasePath)
	})

	require.Empty(t, f.api.Requests())
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.api.Tenants.Create(ctx, &tenants.Tenant{ID: "t1", Name: "Acme"})
	require.NoError(t, err)
	_, err = f.api.Tenants.Create(ctx, &tenants.Tenant{ID: "t2", Name: "Down"})
	require.NoError(t, err)
	_, err = f.api.Users.Create(ctx, "t1", &users.TenantUser{Username: "alice", Email: "alice@example.com", Password: "Password123", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)
	f.api.Users.FailList("t2", fmt.Errorf("connection reset"))

	web, err := f.api.Clients.Create(ctx, &clients.Client{Name: "web", IsActive: true})
	require.NoError(t, err)
	f.api.Clients.SetStats(web.ID, clients.Stats{TotalTokens: 7})

	w := f.do(http.MethodGet, server.RouteDashboard, f.api.AdminToken(), "")
	require.Equal(t, http.StatusOK, w.Code)

	stats := decodeBody[dashboard.Stats](t, w)
	require.Equal(t, 1, stats.TotalClients)
	require.EqualValues(t, 7, stats.TotalTokens)
	require.Equal(t, 2, stats.TotalTenants)
	require.Equal(t, 1, stats.TotalUsers)
	require.Len(t, stats.RecentUsers, 1)
	require.Equal(t, "Acme", stats.RecentUsers[0].TenantName)
}

func TestDashboard_Gzip(t *testing.T) {
	f := newFixture(t)

	r := httptest.NewRequest(http.MethodGet, server.RouteDashboard, nil)
	r.Header.Set("Authorization", "Bearer "+f.api.AdminToken())
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	f.srv.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	gz, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	var stats dashboard.Stats
	require.NoError(t, json.NewDecoder(gz).Decode(&stats))
	require.NotNil(t, stats.RecentUsers)
}

func TestDashboard_RevokedSession(t *testing.T) {
	f := newFixture(t)
	f.api.Revoke()

	w := f.do(http.MethodGet, server.RouteDashboard, f.api.AdminToken(), "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, server.LoginPage, decodeBody[server.ErrorResponse](t, w).Redirect)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	_, err := f.api.Admins.Add(users.SystemAdmin{Username: "root", Email: "root@example.com"}, "Password123")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		w := f.do(http.MethodPost, server.RouteLogin, "", `{"username":"root","password":"Password123"}`)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody[server.LoginResponse](t, w)
		require.NotEmpty(t, body.Token)
		require.True(t, body.Authorization.IsAdmin)

		ctxResp := f.do(http.MethodGet, server.RouteContext, body.Token, "")
		require.Equal(t, http.StatusOK, ctxResp.Code)
	})

	t.Run("undecodable token", func(t *testing.T) {
		f.api.SetLoginToken("opaque-token-abc")
		defer f.api.SetLoginToken("")

		w := f.do(http.MethodPost, server.RouteLogin, "", `{"username":"root","password":"Password123"}`)
		require.Equal(t, http.StatusBadGateway, w.Code)
		require.NotContains(t, w.Body.String(), "opaque-token-abc")
	})

	t.Run("wrong password", func(t *testing.T) {
		w := f.do(http.MethodPost, server.RouteLogin, "", `{"username":"root","password":"nope"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		w := f.do(http.MethodPost, server.RouteLogin, "", `{"username":"root"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		w := f.do(http.MethodPost, server.RouteLogin, "", `{`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodGet, server.RouteDashboard, f.api.AdminToken(), "")

	w := f.do(http.MethodGet, server.RouteMetrics, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "console_api_requests_total")
	require.Contains(t, w.Body.String(), "console_endpoint_latency_seconds")
}

func TestCors(t *testing.T) {
	f := newFixture(t)

	t.Run("allowed preflight", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodOptions, server.RouteDashboard, nil)
		r.Header.Set("Origin", "https://console.example.com")
		w := httptest.NewRecorder()
		f.srv.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "https://console.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("unknown origin", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, server.RouteHealth, nil)
		r.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		f.srv.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRecoverMiddleware(t *testing.T) {
	f := newFixture(t)
	f.srv.RegisterRouteHandler("GET /api/panic", server.ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}, f.srv.APIMiddleware()...))

	w := f.do(http.MethodGet, "/api/panic", "", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "internal error", decodeBody[server.ErrorResponse](t, w).Error)
}
