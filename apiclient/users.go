package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-auth-console/users"
)

// UserService manages tenant users. Tenant callers may pass an empty tenant id.
type UserService struct {
	c *Client
}

var _ users.Repo = (*UserService)(nil)

func (s *UserService) List(ctx context.Context, tenantID string) ([]*users.TenantUser, error) {
	path, err := s.c.paths.TenantUsers(tenantID)
	if err != nil {
		return nil, err
	}
	return list[users.TenantUser](ctx, s.c, path)
}

func (s *UserService) Get(ctx context.Context, tenantID, userID string) (*users.TenantUser, error) {
	if err := requireID("user", userID); err != nil {
		return nil, err
	}
	path, err := s.c.paths.TenantUser(tenantID, userID)
	if err != nil {
		return nil, err
	}
	return get[users.TenantUser](ctx, s.c, path)
}

func (s *UserService) Create(ctx context.Context, tenantID string, user *users.TenantUser) (*users.TenantUser, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	path, err := s.c.paths.TenantUsers(tenantID)
	if err != nil {
		return nil, err
	}
	return send[users.TenantUser](ctx, s.c, http.MethodPost, path, user)
}

func (s *UserService) Update(ctx context.Context, tenantID string, user *users.TenantUser) (*users.TenantUser, error) {
	if err := requireID("user", user.ID); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	path, err := s.c.paths.TenantUser(tenantID, user.ID)
	if err != nil {
		return nil, err
	}
	return send[users.TenantUser](ctx, s.c, http.MethodPut, path, user)
}

func (s *UserService) Delete(ctx context.Context, tenantID, userID string) error {
	if err := requireID("user", userID); err != nil {
		return err
	}
	path, err := s.c.paths.TenantUser(tenantID, userID)
	if err != nil {
		return err
	}
	return s.c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (s *UserService) ResetPassword(ctx context.Context, tenantID, userID string) (*users.PasswordReset, error) {
	if err := requireID("user", userID); err != nil {
		return nil, err
	}
	path, err := s.c.paths.TenantUserResetPassword(tenantID, userID)
	if err != nil {
		return nil, err
	}
	return send[users.PasswordReset](ctx, s.c, http.MethodPost, path, nil)
}

type SystemAdminService struct {
	c *Client
}

var _ users.AdminRepo = (*SystemAdminService)(nil)

func (s *SystemAdminService) List(ctx context.Context) ([]*users.SystemAdmin, error) {
	return list[users.SystemAdmin](ctx, s.c, s.c.paths.SystemAdmins())
}

func (s *SystemAdminService) Get(ctx context.Context, id string) (*users.SystemAdmin, error) {
	if err := requireID("admin", id); err != nil {
		return nil, err
	}
	return get[users.SystemAdmin](ctx, s.c, s.c.paths.SystemAdmin(id))
}

func (s *SystemAdminService) Delete(ctx context.Context, id string) error {
	if err := requireID("admin", id); err != nil {
		return err
	}
	return s.c.do(ctx, http.MethodDelete, s.c.paths.SystemAdmin(id), nil, nil)
}

func (s *SystemAdminService) ResetPassword(ctx context.Context, id string) (*users.PasswordReset, error) {
	if err := requireID("admin", id); err != nil {
		return nil, err
	}
	return send[users.PasswordReset](ctx, s.c, http.MethodPost, s.c.paths.SystemAdminResetPassword(id), nil)
}
