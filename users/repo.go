package users

import "context"

// Repo covers tenant user management. Tenant scoped callers pass an empty tenantID and
// the backend uses the tenant from their token.
type Repo interface {
	List(ctx context.Context, tenantID string) ([]*TenantUser, error)
	Get(ctx context.Context, tenantID, userID string) (*TenantUser, error)
	Create(ctx context.Context, tenantID string, user *TenantUser) (*TenantUser, error)
	Update(ctx context.Context, tenantID string, user *TenantUser) (*TenantUser, error)
	Delete(ctx context.Context, tenantID, userID string) error
	ResetPassword(ctx context.Context, tenantID, userID string) (*PasswordReset, error)
}

// AdminRepo covers system admin accounts. Creation happens on the server side only.
type AdminRepo interface {
	List(ctx context.Context) ([]*SystemAdmin, error)
	Get(ctx context.Context, id string) (*SystemAdmin, error)
	Delete(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, id string) (*PasswordReset, error)
}
