package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-auth-console/tenants"
)

type TenantService struct {
	c *Client
}

var _ tenants.Repo = (*TenantService)(nil)

func (s *TenantService) List(ctx context.Context) ([]*tenants.Tenant, error) {
	return list[tenants.Tenant](ctx, s.c, s.c.paths.Tenants())
}

func (s *TenantService) Get(ctx context.Context, id string) (*tenants.Tenant, error) {
	if err := requireID("tenant", id); err != nil {
		return nil, err
	}
	return get[tenants.Tenant](ctx, s.c, s.c.paths.Tenant(id))
}

func (s *TenantService) Create(ctx context.Context, tenant *tenants.Tenant) (*tenants.Tenant, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	return send[tenants.Tenant](ctx, s.c, http.MethodPost, s.c.paths.Tenants(), tenant)
}

func (s *TenantService) Update(ctx context.Context, tenant *tenants.Tenant) (*tenants.Tenant, error) {
	if err := requireID("tenant", tenant.ID); err != nil {
		return nil, err
	}
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	return send[tenants.Tenant](ctx, s.c, http.MethodPut, s.c.paths.Tenant(tenant.ID), tenant)
}

func (s *TenantService) Delete(ctx context.Context, id string) error {
	if err := requireID("tenant", id); err != nil {
		return err
	}
	return s.c.do(ctx, http.MethodDelete, s.c.paths.Tenant(id), nil, nil)
}

func (s *TenantService) Stats(ctx context.Context, id string) (*tenants.Stats, error) {
	if err := requireID("tenant", id); err != nil {
		return nil, err
	}
	return get[tenants.Stats](ctx, s.c, s.c.paths.TenantStats(id))
}
