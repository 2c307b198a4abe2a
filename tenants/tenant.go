package tenants

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/jrsteele09/go-auth-console/internal/errors"
)

// Tenant represents a multi-tenant organization with its own OAuth2 configuration.
// Each tenant can have its own issuer and audience for token isolation.
type Tenant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Domain      string    `json:"domain,omitempty"`
	Description string    `json:"description,omitempty"`
	Issuer      string    `json:"issuer,omitempty"`   // OAuth2 issuer URL (e.g., "https://tenant-a.auth.example.com")
	Audience    string    `json:"audience,omitempty"` // OAuth2 audience (e.g., "https://tenant-a.api.example.com")
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Stats is the admin-only usage summary of a tenant.
type Stats struct {
	TenantID     string `json:"tenant_id"`
	TotalUsers   int64  `json:"total_users"`
	ActiveUsers  int64  `json:"active_users"`
	TotalClients int64  `json:"total_clients"`
	TotalTokens  int64  `json:"total_tokens"`
}

// Repo is the set of tenant operations the console performs against the backend.
type Repo interface {
	List(ctx context.Context) ([]*Tenant, error)
	Get(ctx context.Context, id string) (*Tenant, error)
	Create(ctx context.Context, tenant *Tenant) (*Tenant, error)
	Update(ctx context.Context, tenant *Tenant) (*Tenant, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (*Stats, error)
}

var domainPattern = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}$`)

// Validate checks the form fields before a create or update is sent.
func (t *Tenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.Validationf("name is required")
	}
	if t.Domain != "" && !domainPattern.MatchString(strings.ToLower(t.Domain)) {
		return errors.Validationf("domain %q is not a valid host name", t.Domain)
	}
	return nil
}
