package dashboard_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-console/apiclient"
	"github.com/jrsteele09/go-auth-console/clients"
	"github.com/jrsteele09/go-auth-console/dashboard"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/internal/fakeapi"
	"github.com/jrsteele09/go-auth-console/sessions"
	"github.com/jrsteele09/go-auth-console/tenants"
	"github.com/jrsteele09/go-auth-console/users"
	"github.com/stretchr/testify/require"
)

func serviceFor(t *testing.T, api *fakeapi.Server, token string) *dashboard.Service {
	t.Helper()
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	c := apiclient.New(srv.URL, sessions.FromToken(token))
	return dashboard.NewService(dashboard.FromRepos(c.Clients(), c.Tenants(), c.Users()))
}

func seedTenant(t *testing.T, api *fakeapi.Server, id, name string, members ...*users.TenantUser) {
	t.Helper()
	ctx := context.Background()
	_, err := api.Tenants.Create(ctx, &tenants.Tenant{ID: id, Name: name})
	require.NoError(t, err)
	for _, u := range members {
		_, err := api.Users.Create(ctx, id, u)
		require.NoError(t, err)
	}
}

func TestCompute_AgainstAPI(t *testing.T) {
	api := fakeapi.New()
	ctx := context.Background()

	seedTenant(t, api, "t1", "Unreachable")
	seedTenant(t, api, "t2", "Acme",
		user("first", base.Add(-time.Hour), true),
		user("second", base, true),
	)
	seedTenant(t, api, "t3", "Empty")
	api.Users.FailList("t1", fmt.Errorf("connection reset"))

	web, err := api.Clients.Create(ctx, &clients.Client{Name: "web", IsActive: true})
	require.NoError(t, err)
	broken, err := api.Clients.Create(ctx, &clients.Client{Name: "broken", IsActive: true})
	require.NoError(t, err)
	api.Clients.SetStats(web.ID, clients.Stats{TotalTokens: 5})
	api.Clients.FailStats(broken.ID, fmt.Errorf("stats backend down"))

	stats, err := serviceFor(t, api, api.AdminToken()).Compute(ctx)
	require.NoError(t, err)

	require.EqualValues(t, 5, stats.TotalTokens)
	require.Equal(t, 2, stats.TotalClients)
	require.Equal(t, 3, stats.TotalTenants)
	require.Equal(t, 2, stats.TotalUsers)
	require.Len(t, stats.RecentUsers, 2)
	require.Equal(t, "second", stats.RecentUsers[0].Username)
	require.Equal(t, "first", stats.RecentUsers[1].Username)
	require.Equal(t, "Acme", stats.RecentUsers[1].TenantName)
}

func TestCompute_TenantScope(t *testing.T) {
	api := fakeapi.New()
	seedTenant(t, api, "t1", "Mine", user("me", base, true))
	seedTenant(t, api, "t2", "Theirs", user("them", base, true))

	stats, err := serviceFor(t, api, api.TenantToken("t1", false)).Compute(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalTenants)
	require.Equal(t, 1, stats.TotalUsers)
	require.Equal(t, "me", stats.RecentUsers[0].Username)
}

func TestCompute_RevokedSession(t *testing.T) {
	api := fakeapi.New()
	seedTenant(t, api, "t1", "Acme")
	api.Revoke()

	_, err := serviceFor(t, api, api.AdminToken()).Compute(context.Background())
	require.True(t, errors.Is(err, errors.ErrUnauthorized))
}
