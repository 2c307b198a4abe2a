package sessions_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-auth-console/sessions"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://auth.example.com"

func TestStaticVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	verifier := sessions.NewStaticVerifier(testIssuer, key.Public())

	sign := func(claims jwtlib.MapClaims, k *rsa.PrivateKey) string {
		token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, claims).SignedString(k)
		require.NoError(t, err)
		return token
	}

	t.Run("valid token", func(t *testing.T) {
		token := sign(jwtlib.MapClaims{
			"iss":       testIssuer,
			"sub":       "admin-1",
			"user_type": "admin",
			"exp":       time.Now().Add(time.Hour).Unix(),
		}, key)
		require.NoError(t, verifier.Verify(context.Background(), token))
	})

	t.Run("expired token", func(t *testing.T) {
		token := sign(jwtlib.MapClaims{
			"iss": testIssuer,
			"sub": "admin-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}, key)
		require.Error(t, verifier.Verify(context.Background(), token))
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		token := sign(jwtlib.MapClaims{
			"iss": testIssuer,
			"sub": "admin-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}, other)
		require.Error(t, verifier.Verify(context.Background(), token))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token := sign(jwtlib.MapClaims{
			"iss": "https://evil.example.com",
			"sub": "admin-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}, key)
		require.Error(t, verifier.Verify(context.Background(), token))
	})
}
