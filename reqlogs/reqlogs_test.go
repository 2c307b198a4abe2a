package reqlogs_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/reqlogs"
	"github.com/stretchr/testify/require"
)

func TestFilter_Query(t *testing.T) {
	require.Empty(t, reqlogs.Filter{}.Query().Encode())

	f := reqlogs.Filter{TenantID: "t1", ClientID: "c1", Method: "POST", Status: 401, Limit: 20, Offset: 40}
	q := f.Query()
	require.Equal(t, "client_id=c1&limit=20&method=POST&offset=40&status=401&tenant_id=t1", q.Encode())
	require.Equal(t, f, reqlogs.FilterFromQuery(q))
}

func TestValidatePeriod(t *testing.T) {
	for _, p := range []string{"1h", "24h", "7d", "30d"} {
		require.NoError(t, reqlogs.ValidatePeriod(p))
	}
	err := reqlogs.ValidatePeriod("1y")
	require.True(t, errors.Is(err, errors.ErrInvalidPeriod))
}

func TestRequestLog_IsError(t *testing.T) {
	require.True(t, (&reqlogs.RequestLog{StatusCode: 500}).IsError())
	require.False(t, (&reqlogs.RequestLog{StatusCode: 204}).IsError())
}
