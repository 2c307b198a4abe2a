package dashboard

//go:generate mockgen -source=backend.go -destination=mocks/mocks.go -package=mocks Backend

import (
	"context"

	"github.com/jrsteele09/go-auth-console/clients"
	"github.com/jrsteele09/go-auth-console/tenants"
	"github.com/jrsteele09/go-auth-console/users"
)

// Backend is what the aggregation reads. Every call is scoped by the caller's session.
type Backend interface {
	ListClients(ctx context.Context) ([]*clients.Client, error)
	ClientStats(ctx context.Context, clientID string) (*clients.Stats, error)
	ListTenants(ctx context.Context) ([]*tenants.Tenant, error)
	ListTenantUsers(ctx context.Context, tenantID string) ([]*users.TenantUser, error)
}

type repoBackend struct {
	clients clients.Repo
	tenants tenants.Repo
	users   users.Repo
}

// FromRepos builds a Backend over the domain repos, such as the API client's services.
func FromRepos(c clients.Repo, t tenants.Repo, u users.Repo) Backend {
	return &repoBackend{clients: c, tenants: t, users: u}
}

func (b *repoBackend) ListClients(ctx context.Context) ([]*clients.Client, error) {
	return b.clients.List(ctx, clients.ListFilter{})
}

func (b *repoBackend) ClientStats(ctx context.Context, clientID string) (*clients.Stats, error) {
	return b.clients.Stats(ctx, clientID)
}

func (b *repoBackend) ListTenants(ctx context.Context) ([]*tenants.Tenant, error) {
	return b.tenants.List(ctx)
}

func (b *repoBackend) ListTenantUsers(ctx context.Context, tenantID string) ([]*users.TenantUser, error) {
	return b.users.List(ctx, tenantID)
}
