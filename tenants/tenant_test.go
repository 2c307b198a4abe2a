package tenants_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/tenants"
	"github.com/stretchr/testify/require"
)

func TestTenant_Validate(t *testing.T) {
	require.NoError(t, (&tenants.Tenant{Name: "Acme"}).Validate())
	require.NoError(t, (&tenants.Tenant{Name: "Acme", Domain: "acme.example.com"}).Validate())

	err := (&tenants.Tenant{Name: ""}).Validate()
	require.True(t, errors.Is(err, errors.ErrValidation))

	err = (&tenants.Tenant{Name: "Acme", Domain: "not a domain"}).Validate()
	require.True(t, errors.Is(err, errors.ErrValidation))
	require.Contains(t, err.Error(), "not a valid host name")
}
