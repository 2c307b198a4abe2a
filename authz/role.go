package authz

import (
	"github.com/jrsteele09/go-auth-console/internal/utils"
	"github.com/jrsteele09/go-auth-console/sessions"
)

// Role is the closed set of caller kinds the console distinguishes.
// Only the types in this file implement it.
type Role interface {
	role()
}

// Anonymous is a caller without a decodable session.
type Anonymous struct{}

// Admin is a system level user (user_type "admin"). Privileged mirrors the is_admin claim.
type Admin struct {
	Privileged bool
}

// TenantUser is a user scoped to one tenant (user_type "tenant").
type TenantUser struct {
	Admin    bool
	TenantID string
}

// Unrecognised carries a user_type this console does not know. It is kept apart from
// Anonymous because a session exists, and it still resolves to the admin API family.
type Unrecognised struct {
	UserType string
}

func (Anonymous) role()    {}
func (Admin) role()        {}
func (TenantUser) role()   {}
func (Unrecognised) role() {}

// RoleOf classifies decoded claims. Nil claims are Anonymous.
func RoleOf(claims *sessions.Claims) Role {
	if claims == nil {
		return Anonymous{}
	}
	switch claims.UserType {
	case sessions.UserTypeAdmin:
		return Admin{Privileged: claims.IsAdmin}
	case sessions.UserTypeTenant:
		return TenantUser{Admin: claims.IsAdmin, TenantID: utils.Value(claims.TenantID)}
	default:
		return Unrecognised{UserType: claims.UserType}
	}
}
