package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-console/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestClaimString(t *testing.T) {
	s, ok := utils.ClaimString("abc")
	require.True(t, ok)
	require.Equal(t, "abc", s)

	s, ok = utils.ClaimString(float64(42))
	require.True(t, ok)
	require.Equal(t, "42", s)

	_, ok = utils.ClaimString("")
	require.False(t, ok)

	_, ok = utils.ClaimString(nil)
	require.False(t, ok)
}

func TestClaimBool(t *testing.T) {
	require.True(t, utils.ClaimBool(true))
	require.False(t, utils.ClaimBool("true"))
	require.False(t, utils.ClaimBool("TRUE"))
	require.False(t, utils.ClaimBool("1"))
	require.False(t, utils.ClaimBool(float64(1)))
	require.False(t, utils.ClaimBool(false))
	require.False(t, utils.ClaimBool("nope"))
	require.False(t, utils.ClaimBool(nil))
}

func TestPtrValue(t *testing.T) {
	require.Equal(t, "x", utils.Value(utils.Ptr("x")))
	var p *int
	require.Equal(t, 0, utils.Value(p))
}

func TestToStringSlice(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, utils.ToStringSlice([]any{"a", 1, "b"}))
}
