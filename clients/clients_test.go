package clients_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-console/clients"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestClient_Validate(t *testing.T) {
	valid := func() *clients.Client {
		return &clients.Client{
			Name:         "web",
			Type:         clients.ClientTypeConfidential,
			RedirectURIs: []string{"https://app.example.com/callback"},
			GrantTypes:   []string{clients.GrantAuthorizationCode, clients.GrantRefreshToken},
		}
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	tests := map[string]func(c *clients.Client){
		"missing name":          func(c *clients.Client) { c.Name = "  " },
		"bad type":              func(c *clients.Client) { c.Type = "hybrid" },
		"relative redirect":     func(c *clients.Client) { c.RedirectURIs = []string{"/callback"} },
		"fragment redirect":     func(c *clients.Client) { c.RedirectURIs = []string{"https://a.example.com/cb#x"} },
		"unknown grant":         func(c *clients.Client) { c.GrantTypes = []string{"implicit"} },
		"code without redirect": func(c *clients.Client) { c.RedirectURIs = nil },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			err := c.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrValidation))
		})
	}

	t.Run("client credentials without redirect", func(t *testing.T) {
		c := &clients.Client{Name: "svc", GrantTypes: []string{clients.GrantClientCredentials}}
		require.NoError(t, c.Validate())
	})
}

func TestClient_Helpers(t *testing.T) {
	c := &clients.Client{
		Type:      clients.ClientTypePublic,
		Scopes:    clients.ParseScopes(" openid  profile "),
		TenantIDs: []string{"t1"},
	}
	require.True(t, c.IsPublic())
	require.Equal(t, []string{"openid", "profile"}, c.Scopes)
	require.True(t, c.HasScope("openid"))
	require.False(t, c.HasScope("admin"))
	require.True(t, c.InTenant("t1"))
	require.False(t, c.InTenant("t2"))
	require.Empty(t, clients.ParseScopes(""))
}
