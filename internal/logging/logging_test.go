package logging_test

import (
	"bytes"
	"testing"

	"github.com/jrsteele09/go-auth-console/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json outside dev", func(t *testing.T) {
		var buf bytes.Buffer
		l := logging.New(&buf, "PROD", false)
		l.Info().Str("tenant_id", "t1").Msg("hello")
		require.Contains(t, buf.String(), `"tenant_id":"t1"`)
		require.Contains(t, buf.String(), `"message":"hello"`)
	})

	t.Run("debug suppressed by default", func(t *testing.T) {
		var buf bytes.Buffer
		l := logging.New(&buf, "PROD", false)
		l.Debug().Msg("hidden")
		require.Empty(t, buf.String())
	})

	t.Run("debug enabled", func(t *testing.T) {
		var buf bytes.Buffer
		l := logging.New(&buf, "PROD", true)
		l.Debug().Msg("shown")
		require.Contains(t, buf.String(), "shown")
	})
}
