package authz_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-console/authz"
	"github.com/jrsteele09/go-auth-console/internal/utils"
	"github.com/jrsteele09/go-auth-console/sessions"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name   string
		claims *sessions.Claims
		want   authz.Context
		role   string
	}{
		{
			name:   "system admin",
			claims: &sessions.Claims{UserType: "admin", IsAdmin: true},
			want:   authz.Context{Role: authz.Admin{Privileged: true}, IsAdmin: true, HasAdminAccess: true, APIBasePath: "/admin"},
			role:   "system admin",
		},
		{
			name:   "admin type without admin flag",
			claims: &sessions.Claims{UserType: "admin"},
			want:   authz.Context{Role: authz.Admin{}, APIBasePath: "/admin"},
			role:   "admin (restricted)",
		},
		{
			name:   "tenant admin",
			claims: &sessions.Claims{UserType: "tenant", IsAdmin: true, TenantID: utils.Ptr("t1")},
			want: authz.Context{
				Role:           authz.TenantUser{Admin: true, TenantID: "t1"},
				IsTenantUser:   true,
				IsTenantAdmin:  true,
				HasAdminAccess: true,
				TenantID:       "t1",
				APIBasePath:    "/tenant",
			},
			role: "tenant admin",
		},
		{
			name:   "tenant user",
			claims: &sessions.Claims{UserType: "tenant", TenantID: utils.Ptr("t2")},
			want: authz.Context{
				Role:         authz.TenantUser{TenantID: "t2"},
				IsTenantUser: true,
				TenantID:     "t2",
				APIBasePath:  "/tenant",
			},
			role: "tenant user",
		},
		{
			name:   "unknown user type keeps admin path",
			claims: &sessions.Claims{UserType: "service", IsAdmin: true},
			want:   authz.Context{Role: authz.Unrecognised{UserType: "service"}, APIBasePath: "/admin"},
			role:   "unknown (service)",
		},
		{
			name:   "unset user type keeps admin path",
			claims: &sessions.Claims{},
			want:   authz.Context{Role: authz.Unrecognised{}, APIBasePath: "/admin"},
			role:   "unknown ()",
		},
		{
			name:   "no session",
			claims: nil,
			want:   authz.Context{Role: authz.Anonymous{}, APIBasePath: "/admin"},
			role:   "anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := authz.Derive(tt.claims)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.role, got.RoleName())
		})
	}
}

func TestDerive_Invariants(t *testing.T) {
	userTypes := []string{"", "admin", "tenant", "other"}
	tenantIDs := []*string{nil, utils.Ptr("t1")}

	for _, userType := range userTypes {
		for _, isAdmin := range []bool{false, true} {
			for _, tenantID := range tenantIDs {
				ctx := authz.Derive(&sessions.Claims{UserType: userType, IsAdmin: isAdmin, TenantID: tenantID})

				if ctx.IsTenantAdmin {
					require.True(t, ctx.IsTenantUser)
				}
				require.Contains(t, []string{"/admin", "/tenant"}, ctx.APIBasePath)
				require.Equal(t, ctx.IsAdmin || ctx.IsTenantAdmin, ctx.HasAdminAccess)
				require.Equal(t, userType == "tenant", ctx.APIBasePath == "/tenant")
				require.False(t, ctx.IsAnonymous())
			}
		}
	}
}

func TestForSession(t *testing.T) {
	ctx := authz.ForSession(nil)
	require.True(t, ctx.IsAnonymous())
	require.False(t, ctx.IsAdmin)
	require.False(t, ctx.IsTenantUser)
	require.False(t, ctx.IsTenantAdmin)
	require.False(t, ctx.HasAdminAccess)
	require.Equal(t, "/admin", ctx.APIBasePath)

	ctx = authz.ForSession(sessions.FromToken("not-a-token"))
	require.True(t, ctx.IsAnonymous())
	require.Equal(t, "/admin", ctx.APIBasePath)
}
