package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-auth-console/apikeys"
)

type APIKeyService struct {
	c *Client
}

var _ apikeys.Repo = (*APIKeyService)(nil)

func (s *APIKeyService) List(ctx context.Context) ([]*apikeys.APIKey, error) {
	return list[apikeys.APIKey](ctx, s.c, s.c.paths.APIKeys())
}

func (s *APIKeyService) Get(ctx context.Context, id string) (*apikeys.APIKey, error) {
	if err := requireID("api key", id); err != nil {
		return nil, err
	}
	return get[apikeys.APIKey](ctx, s.c, s.c.paths.APIKey(id))
}

// Generate returns the new key with its secret value, which the API shows only once.
func (s *APIKeyService) Generate(ctx context.Context, req apikeys.GenerateRequest) (*apikeys.APIKey, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return send[apikeys.APIKey](ctx, s.c, http.MethodPost, s.c.paths.APIKeyGenerate(), req)
}

func (s *APIKeyService) Delete(ctx context.Context, id string) error {
	if err := requireID("api key", id); err != nil {
		return err
	}
	return s.c.do(ctx, http.MethodDelete, s.c.paths.APIKey(id), nil, nil)
}

func (s *APIKeyService) Toggle(ctx context.Context, id string) (*apikeys.APIKey, error) {
	if err := requireID("api key", id); err != nil {
		return nil, err
	}
	return send[apikeys.APIKey](ctx, s.c, http.MethodPost, s.c.paths.APIKeyToggle(id), nil)
}
