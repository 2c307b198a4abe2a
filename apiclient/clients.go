package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-auth-console/clients"
)

type ClientService struct {
	c *Client
}

var _ clients.Repo = (*ClientService)(nil)

type tenantIDsBody struct {
	TenantIDs []string `json:"tenant_ids"`
}

func (s *ClientService) List(ctx context.Context, filter clients.ListFilter) ([]*clients.Client, error) {
	return list[clients.Client](ctx, s.c, s.c.paths.Clients(filter.TenantID))
}

func (s *ClientService) Get(ctx context.Context, id string) (*clients.Client, error) {
	if err := requireID("client", id); err != nil {
		return nil, err
	}
	return get[clients.Client](ctx, s.c, s.c.paths.Client(id))
}

func (s *ClientService) Create(ctx context.Context, client *clients.Client) (*clients.Client, error) {
	if err := client.Validate(); err != nil {
		return nil, err
	}
	return send[clients.Client](ctx, s.c, http.MethodPost, s.c.paths.Clients(""), client)
}

func (s *ClientService) Update(ctx context.Context, client *clients.Client) (*clients.Client, error) {
	if err := requireID("client", client.ID); err != nil {
		return nil, err
	}
	if err := client.Validate(); err != nil {
		return nil, err
	}
	return send[clients.Client](ctx, s.c, http.MethodPut, s.c.paths.Client(client.ID), client)
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if err := requireID("client", id); err != nil {
		return err
	}
	return s.c.do(ctx, http.MethodDelete, s.c.paths.Client(id), nil, nil)
}

// RegenerateSecret returns the client carrying its new secret. The secret is shown once.
func (s *ClientService) RegenerateSecret(ctx context.Context, id string) (*clients.Client, error) {
	if err := requireID("client", id); err != nil {
		return nil, err
	}
	return send[clients.Client](ctx, s.c, http.MethodPost, s.c.paths.ClientRegenerateSecret(id), nil)
}

func (s *ClientService) Stats(ctx context.Context, id string) (*clients.Stats, error) {
	if err := requireID("client", id); err != nil {
		return nil, err
	}
	return get[clients.Stats](ctx, s.c, s.c.paths.ClientStats(id))
}

func (s *ClientService) AddTenants(ctx context.Context, id string, tenantIDs []string) error {
	if err := validateAssociation(id, tenantIDs); err != nil {
		return err
	}
	return s.c.do(ctx, http.MethodPost, s.c.paths.ClientTenants(id), tenantIDsBody{TenantIDs: tenantIDs}, nil)
}

func (s *ClientService) RemoveTenants(ctx context.Context, id string, tenantIDs []string) error {
	if err := validateAssociation(id, tenantIDs); err != nil {
		return err
	}
	return s.c.do(ctx, http.MethodDelete, s.c.paths.ClientTenants(id), tenantIDsBody{TenantIDs: tenantIDs}, nil)
}

func validateAssociation(id string, tenantIDs []string) error {
	if err := requireID("client", id); err != nil {
		return err
	}
	if len(tenantIDs) == 0 {
		return requireID("tenant", "")
	}
	return nil
}
