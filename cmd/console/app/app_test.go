package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrsteele09/go-auth-console/clients"
	"github.com/jrsteele09/go-auth-console/cmd/console/app"
	"github.com/jrsteele09/go-auth-console/internal/fakeapi"
	"github.com/jrsteele09/go-auth-console/sessions"
	"github.com/jrsteele09/go-auth-console/tenants"
	"github.com/jrsteele09/go-auth-console/users"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	api   *fakeapi.Server
	url   string
	dir   string
	store *sessions.FileStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := fakeapi.New()
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return &fixture{api: api, url: srv.URL, dir: dir, store: sessions.NewFileStore(dir)}
}

func (f *fixture) loginAs(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, f.store.Save(token))
}

func (f *fixture) run(args ...string) (string, error) {
	cmd := app.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--api-url", f.url, "--data-folder", f.dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	return v
}

func TestLoginWhoamiLogout(t *testing.T) {
	f := newFixture(t)
	_, err := f.api.Admins.Add(users.SystemAdmin{Username: "root", Email: "root@example.com"}, "Password123")
	require.NoError(t, err)

	out, err := f.run("login", "-u", "root", "-p", "Password123")
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as root (system admin)")

	token, err := f.store.Load()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	out, err = f.run("whoami", "-o", "json")
	require.NoError(t, err)
	who := decode[map[string]any](t, out)
	require.Equal(t, "system admin", who["role"])
	require.Equal(t, "/admin", who["authorization"].(map[string]any)["apiBasePath"])

	_, err = f.run("logout")
	require.NoError(t, err)
	token, err = f.store.Load()
	require.NoError(t, err)
	require.Empty(t, token)

	_, err = f.run("whoami")
	require.EqualError(t, err, "not logged in: run `console login`")
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t)

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.run("login", "-u", "root", "-p", "nope")
		require.EqualError(t, err, "invalid username or password")
	})

	t.Run("server answers with an undecodable token", func(t *testing.T) {
		_, err := f.api.Admins.Add(users.SystemAdmin{Username: "root", Email: "root@example.com"}, "Password123")
		require.NoError(t, err)
		f.api.SetLoginToken("opaque-token-abc")
		defer f.api.SetLoginToken("")

		_, err = f.run("login", "-u", "root", "-p", "Password123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "token is not a decodable JWT")
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := f.run("login", "-u", "root")
		require.Error(t, err)
		require.Contains(t, err.Error(), "username and password are required")
	})
}

func TestLogin_PasswordStdin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.api.Users.Create(ctx, "t1", &users.TenantUser{Username: "alice", Email: "alice@example.com", Password: "Password123", IsActive: true})
	require.NoError(t, err)

	cmd := app.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("Password123\n"))
	cmd.SetArgs([]string{"--api-url", f.url, "--data-folder", f.dir, "login", "-u", "alice", "--password-stdin"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "tenant user")
}

func TestCommandsRequireLogin(t *testing.T) {
	f := newFixture(t)
	_, err := f.run("clients", "list")
	require.EqualError(t, err, "not logged in: run `console login`")
	require.Empty(t, f.api.Requests())
}

func TestSessionExpired(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, f.api.AdminToken())
	f.api.Revoke()

	_, err := f.run("tenants", "list")
	require.EqualError(t, err, "session expired: run `console login`")

	token, err := f.store.Load()
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestClients(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, f.api.AdminToken())

	out, err := f.run("clients", "create", "--name", "web", "--redirect-uri", "https://app.example.com/cb",
		"--grant-type", "authorization_code", "-o", "json")
	require.NoError(t, err)
	created := decode[clients.Client](t, out)
	require.Equal(t, "web", created.Name)
	require.NotEmpty(t, created.ClientSecret)

	out, err = f.run("clients", "update", created.ID, "--description", "Web app")
	require.NoError(t, err)
	require.Contains(t, out, "Web app")

	out, err = f.run("clients", "list", "-o", "json")
	require.NoError(t, err)
	list := decode[[]clients.Client](t, out)
	require.Len(t, list, 1)
	require.Empty(t, list[0].ClientSecret)

	out, err = f.run("clients", "list")
	require.NoError(t, err)
	require.Contains(t, out, created.ClientID)

	_, err = f.run("clients", "delete", created.ID)
	require.NoError(t, err)

	_, err = f.run("clients", "get", created.ID)
	require.EqualError(t, err, "not found: check the id against the matching list command")
}

func TestClients_ValidationSendsNothing(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, f.api.AdminToken())

	_, err := f.run("clients", "create", "--name", "web", "--redirect-uri", "not-a-url")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be an absolute URL")
	require.Empty(t, f.api.Requests())
}

func TestUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.api.Tenants.Create(ctx, &tenants.Tenant{ID: "t1", Name: "Acme"})
	require.NoError(t, err)
	_, err = f.api.Users.Create(ctx, "t1", &users.TenantUser{Username: "alice", Email: "alice@example.com", IsActive: true})
	require.NoError(t, err)

	t.Run("system admin needs a tenant", func(t *testing.T) {
		f.loginAs(t, f.api.AdminToken())
		_, err := f.run("users", "list")
		require.EqualError(t, err, "a tenant is required: pass --tenant")

		out, err := f.run("users", "list", "--tenant", "t1", "-o", "yaml")
		require.NoError(t, err)
		require.Contains(t, out, "username: alice")
	})

	t.Run("tenant admin uses own tenant", func(t *testing.T) {
		f.loginAs(t, f.api.TenantToken("t1", true))
		out, err := f.run("users", "list", "-o", "json")
		require.NoError(t, err)
		require.Len(t, decode[[]users.TenantUser](t, out), 1)
	})
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, f.api.AdminToken())
	_, err := f.api.Tenants.Create(ctx, &tenants.Tenant{ID: "t1", Name: "Acme"})
	require.NoError(t, err)
	_, err = f.api.Users.Create(ctx, "t1", &users.TenantUser{Username: "alice", Email: "alice@example.com", IsActive: true})
	require.NoError(t, err)

	out, err := f.run("dashboard")
	require.NoError(t, err)
	require.Contains(t, out, "Recent users")
	require.Contains(t, out, "alice")

	out, err = f.run("dashboard", "-o", "json")
	require.NoError(t, err)
	stats := decode[map[string]any](t, out)
	require.EqualValues(t, 1, stats["total_tenants"])
	require.EqualValues(t, 1, stats["total_users"])
}

func TestLogsStats_InvalidPeriod(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, f.api.AdminToken())

	_, err := f.run("logs", "stats", "--period", "2w")
	require.Error(t, err)
	require.Empty(t, f.api.Requests())
}

func TestInvalidOutputFormat(t *testing.T) {
	f := newFixture(t)
	_, err := f.run("whoami", "-o", "xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "output format")
}

func TestWhoami_Verify(t *testing.T) {
	f := newFixture(t)

	t.Run("issued by the configured issuer", func(t *testing.T) {
		f.api.SetIssuer(f.url)
		f.loginAs(t, f.api.TenantToken("t1", true))

		out, err := f.run("whoami", "--verify", "-o", "json")
		require.NoError(t, err)
		who := decode[map[string]any](t, out)
		require.Equal(t, true, who["verified"])
		require.Equal(t, "tenant admin", who["role"])
	})

	t.Run("issued by someone else", func(t *testing.T) {
		f.api.SetIssuer("http://elsewhere.example.com")
		f.loginAs(t, f.api.AdminToken())
		f.api.SetIssuer(f.url)

		out, err := f.run("whoami", "--verify", "-o", "json")
		require.NoError(t, err)
		require.Equal(t, false, decode[map[string]any](t, out)["verified"])
	})
}
