package clients

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/jrsteele09/go-auth-console/internal/errors"
)

type ClientType string

const (
	ClientTypeConfidential ClientType = "confidential" // Can keep secrets (server-side apps)
	ClientTypePublic       ClientType = "public"       // Cannot keep secrets (SPAs, mobile apps)
)

// Grant types the identity server accepts on a client registration.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantClientCredentials = "client_credentials"
	GrantRefreshToken      = "refresh_token"
	GrantPassword          = "password"
)

var knownGrantTypes = []string{GrantAuthorizationCode, GrantClientCredentials, GrantRefreshToken, GrantPassword}

// Client is an OAuth application registration as returned by the REST API.
type Client struct {
	ID           string     `json:"id"`
	ClientID     string     `json:"client_id"`
	ClientSecret string     `json:"client_secret,omitempty"` // Only present on create and regenerate
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Type         ClientType `json:"client_type,omitempty"`
	RedirectURIs []string   `json:"redirect_uris"`
	GrantTypes   []string   `json:"grant_types"`
	Scopes       []string   `json:"scopes"`
	IsActive     bool       `json:"is_active"`
	TenantIDs    []string   `json:"tenant_ids,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Stats is the usage summary of one client.
type Stats struct {
	ClientID      string     `json:"client_id"`
	TotalTokens   int64      `json:"total_tokens"`
	ActiveTokens  int64      `json:"active_tokens"`
	TotalRequests int64      `json:"total_requests"`
	LastUsedAt    *time.Time `json:"last_used_at,omitempty"`
}

// ListFilter narrows a client listing. An empty TenantID means every client in scope.
type ListFilter struct {
	TenantID string
}

// Repo is the set of client operations the console performs against the backend.
type Repo interface {
	List(ctx context.Context, filter ListFilter) ([]*Client, error)
	Get(ctx context.Context, id string) (*Client, error)
	Create(ctx context.Context, client *Client) (*Client, error)
	Update(ctx context.Context, client *Client) (*Client, error)
	Delete(ctx context.Context, id string) error
	RegenerateSecret(ctx context.Context, id string) (*Client, error)
	Stats(ctx context.Context, id string) (*Stats, error)
	AddTenants(ctx context.Context, id string, tenantIDs []string) error
	RemoveTenants(ctx context.Context, id string, tenantIDs []string) error
}

// IsPublic returns true if the client is a public client
func (c *Client) IsPublic() bool {
	return c.Type == ClientTypePublic
}

// HasScope checks if the client has permission for a specific scope
func (c *Client) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// InTenant reports whether the client is associated with tenantID.
func (c *Client) InTenant(tenantID string) bool {
	return slices.Contains(c.TenantIDs, tenantID)
}

// Validate checks the form fields before a create or update is sent.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.Validationf("name is required")
	}
	if c.Type != "" && c.Type != ClientTypeConfidential && c.Type != ClientTypePublic {
		return errors.Validationf("client type must be %q or %q", ClientTypeConfidential, ClientTypePublic)
	}
	for _, uri := range c.RedirectURIs {
		u, err := url.Parse(uri)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.Validationf("redirect URI %q must be an absolute URL", uri)
		}
		if u.Fragment != "" {
			return errors.Validationf("redirect URI %q must not contain a fragment", uri)
		}
	}
	for _, grant := range c.GrantTypes {
		if !slices.Contains(knownGrantTypes, grant) {
			return errors.Validationf("unknown grant type %q", grant)
		}
	}
	if slices.Contains(c.GrantTypes, GrantAuthorizationCode) && len(c.RedirectURIs) == 0 {
		return errors.Validationf("authorization_code clients need at least one redirect URI")
	}
	return nil
}

// ParseScopes splits a space separated scope string, dropping empty entries.
func ParseScopes(scopes string) []string {
	return strings.Fields(scopes)
}
