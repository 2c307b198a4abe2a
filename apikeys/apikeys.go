package apikeys

import (
	"context"
	"strings"
	"time"

	"github.com/jrsteele09/go-auth-console/internal/errors"
)

// APIKey is a long lived credential for machine access to the admin API.
type APIKey struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Prefix     string     `json:"prefix,omitempty"`
	Key        string     `json:"key,omitempty"` // Only present in the generate response
	Scopes     []string   `json:"scopes,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// GenerateRequest is the body of POST /admin/api-keys/generate.
type GenerateRequest struct {
	Name          string   `json:"name"`
	Scopes        []string `json:"scopes,omitempty"`
	ExpiresInDays int      `json:"expires_in_days,omitempty"`
}

// Repo is the set of API key operations. API keys are admin-only.
type Repo interface {
	List(ctx context.Context) ([]*APIKey, error)
	Get(ctx context.Context, id string) (*APIKey, error)
	Generate(ctx context.Context, req GenerateRequest) (*APIKey, error)
	Delete(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) (*APIKey, error)
}

func (r *GenerateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.Validationf("name is required")
	}
	if r.ExpiresInDays < 0 {
		return errors.Validationf("expires in days must not be negative")
	}
	return nil
}

// Expired reports whether the key has an expiry in the past.
func (k *APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && now.After(*k.ExpiresAt)
}
