package output_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/internal/output"
	"github.com/stretchr/testify/require"
)

type record struct {
	ClientID string `json:"client_id"`
	Active   bool   `json:"is_active"`
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	_, err := output.New(&bytes.Buffer{}, "xml")
	require.True(t, errors.Is(err, errors.ErrValidation))

	p, err := output.New(&bytes.Buffer{}, "")
	require.NoError(t, err)
	require.Equal(t, output.FormatTable, p.Format())
}

func TestPrint(t *testing.T) {
	v := []record{{ClientID: "abc", Active: true}}
	table := output.Table{Headers: []string{"Client ID", "Active"}}
	table.Append("abc", output.Bool(true))

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		p, _ := output.New(&buf, output.FormatJSON)
		require.NoError(t, p.Print(v, table))
		require.JSONEq(t, `[{"client_id":"abc","is_active":true}]`, buf.String())
	})

	t.Run("yaml uses json names", func(t *testing.T) {
		var buf bytes.Buffer
		p, _ := output.New(&buf, output.FormatYAML)
		require.NoError(t, p.Print(v, table))
		require.YAMLEq(t, "- client_id: abc\n  is_active: true\n", buf.String())
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		p, _ := output.New(&buf, output.FormatTable)
		require.NoError(t, p.Print(v, table))
		require.Contains(t, buf.String(), "abc")
		require.Contains(t, buf.String(), "yes")
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		p, _ := output.New(&buf, output.FormatTable)
		require.NoError(t, p.Print(v, output.Table{Headers: []string{"ID"}, Empty: "No clients found."}))
		require.Equal(t, "No clients found.\n", buf.String())
	})
}

func TestMessage_OnlyForTables(t *testing.T) {
	var buf bytes.Buffer
	p, _ := output.New(&buf, output.FormatJSON)
	p.Message("deleted %s", "abc")
	require.Empty(t, buf.String())

	p, _ = output.New(&buf, output.FormatTable)
	p.Message("deleted %s", "abc")
	require.Equal(t, "deleted abc\n", buf.String())
}

func TestFormatters(t *testing.T) {
	require.Equal(t, "-", output.Time(time.Time{}))
	require.Equal(t, "-", output.TimePtr(nil))
	require.Equal(t, "no", output.Bool(false))
	require.Equal(t, "a, b", output.List([]string{"a", "b"}))
	require.Equal(t, "-", output.List(nil))
	require.Equal(t, "42", output.Int(42))
	require.Equal(t, "-", output.OrDash(" "))
	require.Equal(t, []string{"Field", "Value"}, output.KeyValue([2]string{"id", "1"}).Headers)
}
