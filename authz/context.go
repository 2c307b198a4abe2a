package authz

import (
	"github.com/jrsteele09/go-auth-console/internal/utils"
	"github.com/jrsteele09/go-auth-console/sessions"
)

// API path families.
const (
	AdminBasePath  = "/admin"
	TenantBasePath = "/tenant"
)

// Context is the authorization view derived from a session. It is a pure projection
// of the claims and is recomputed, never stored.
type Context struct {
	Role           Role   `json:"-"`
	IsAdmin        bool   `json:"isAdmin"`
	IsTenantUser   bool   `json:"isTenantUser"`
	IsTenantAdmin  bool   `json:"isTenantAdmin"`
	HasAdminAccess bool   `json:"hasAdminAccess"`
	TenantID       string `json:"tenantId,omitempty"`
	APIBasePath    string `json:"apiBasePath"`
}

// Derive projects claims into a Context. Anything that is not a tenant user resolves
// to the /admin path family, including no session at all; callers still have to
// check for a session before issuing authenticated calls.
func Derive(claims *sessions.Claims) Context {
	ctx := Context{
		Role:        RoleOf(claims),
		APIBasePath: AdminBasePath,
	}
	if claims != nil {
		ctx.TenantID = utils.Value(claims.TenantID)
	}

	switch r := ctx.Role.(type) {
	case Admin:
		ctx.IsAdmin = r.Privileged
	case TenantUser:
		ctx.IsTenantUser = true
		ctx.IsTenantAdmin = r.Admin
		ctx.APIBasePath = TenantBasePath
	case Anonymous, Unrecognised:
	}
	ctx.HasAdminAccess = ctx.IsAdmin || ctx.IsTenantAdmin
	return ctx
}

// ForSession derives the context of a possibly nil session.
func ForSession(s *sessions.Session) Context {
	return Derive(s.Claims())
}

// IsAnonymous reports whether there is no session behind the context.
func (c Context) IsAnonymous() bool {
	_, ok := c.Role.(Anonymous)
	return ok || c.Role == nil
}

// RoleName is a short label for display.
func (c Context) RoleName() string {
	switch r := c.Role.(type) {
	case Admin:
		if r.Privileged {
			return "system admin"
		}
		return "admin (restricted)"
	case TenantUser:
		if r.Admin {
			return "tenant admin"
		}
		return "tenant user"
	case Unrecognised:
		return "unknown (" + r.UserType + ")"
	default:
		return "anonymous"
	}
}
