// Package apipath maps resource requests onto the identity server's two REST path
// families: /admin for cross-tenant access and /tenant for self-service access.
package apipath

import (
	"net/url"

	"github.com/jrsteele09/go-auth-console/authz"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/reqlogs"
)

const admin = authz.AdminBasePath

// Resolver builds request paths for one authorization context.
type Resolver struct {
	base         string
	tenantScoped bool
}

func New(ctx authz.Context) Resolver {
	base := ctx.APIBasePath
	if base == "" {
		base = admin
	}
	return Resolver{base: base, tenantScoped: ctx.IsTenantUser}
}

// Base returns the path family prefix, "/admin" or "/tenant".
func (r Resolver) Base() string {
	return r.base
}

// Login is always on the admin family, whoever logs in.
func (r Resolver) Login() string {
	return admin + "/login"
}

func (r Resolver) Me() string {
	return r.base + "/me"
}

func (r Resolver) Profile() string {
	return r.base + "/profile"
}

// Clients lists applications. Admin callers may filter by tenant; tenant callers are
// always limited to their own tenant by the backend, so the filter is dropped.
func (r Resolver) Clients(tenantID string) string {
	p := r.base + "/clients"
	if tenantID == "" || r.tenantScoped {
		return p
	}
	return p + "?" + url.Values{"tenant_id": {tenantID}}.Encode()
}

func (r Resolver) Client(id string) string {
	return r.base + "/clients/" + url.PathEscape(id)
}

func (r Resolver) ClientRegenerateSecret(id string) string {
	return r.Client(id) + "/regenerate-secret"
}

func (r Resolver) ClientStats(id string) string {
	return r.Client(id) + "/stats"
}

// ClientTenants is the application-tenant association endpoint. It is admin-only and
// ignores the caller's path family.
func (r Resolver) ClientTenants(id string) string {
	return admin + "/clients/" + url.PathEscape(id) + "/tenants"
}

func (r Resolver) Tenants() string {
	return r.base + "/tenants"
}

func (r Resolver) Tenant(id string) string {
	return r.Tenants() + "/" + url.PathEscape(id)
}

// TenantStats is only served on the admin family.
func (r Resolver) TenantStats(id string) string {
	return admin + "/tenants/" + url.PathEscape(id) + "/stats"
}

// TenantUsers is the user collection. Tenant callers get their own collection whatever
// tenantID says; admin callers must name the tenant.
func (r Resolver) TenantUsers(tenantID string) (string, error) {
	if r.tenantScoped {
		return r.base + "/users", nil
	}
	if tenantID == "" {
		return "", errors.Wrapf(errors.ErrTenantRequired, "[apipath TenantUsers]")
	}
	return admin + "/tenants/" + url.PathEscape(tenantID) + "/users", nil
}

func (r Resolver) TenantUser(tenantID, userID string) (string, error) {
	p, err := r.TenantUsers(tenantID)
	if err != nil {
		return "", err
	}
	return p + "/" + url.PathEscape(userID), nil
}

func (r Resolver) TenantUserResetPassword(tenantID, userID string) (string, error) {
	p, err := r.TenantUser(tenantID, userID)
	if err != nil {
		return "", err
	}
	return p + "/reset-password", nil
}

// Logs lists request logs. The tenant filter only applies to admin callers.
func (r Resolver) Logs(filter reqlogs.Filter) string {
	if r.tenantScoped {
		filter.TenantID = ""
	}
	p := r.base + "/logs"
	if q := filter.Query().Encode(); q != "" {
		return p + "?" + q
	}
	return p
}

func (r Resolver) Log(id string) string {
	return r.base + "/logs/" + url.PathEscape(id)
}

func (r Resolver) LogStats(period string) string {
	p := r.base + "/logs/stats"
	if period == "" {
		return p
	}
	return p + "?" + url.Values{"period": {period}}.Encode()
}
