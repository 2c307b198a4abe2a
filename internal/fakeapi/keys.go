package fakeapi

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"
	"net/http"
	"sync"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const signingKeyID = "fakeapi-1"

// JWKS represents a JSON Web Key Set
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK represents a JSON Web Key
type JWK struct {
	Kty string `json:"kty"`           // Key type (RSA)
	Use string `json:"use,omitempty"` // sig
	Kid string `json:"kid,omitempty"` // Key ID
	Alg string `json:"alg,omitempty"` // Algorithm
	N   string `json:"n,omitempty"`   // Modulus
	E   string `json:"e,omitempty"`   // Exponent
}

// signingKey is the RS256 key pair every fake signs its tokens with.
type signingKey struct {
	keyID      string
	privateKey *rsa.PrivateKey
}

// sharedKey is generated once per process; RSA generation is too slow to repeat per test.
var sharedKey = sync.OnceValues(func() (*signingKey, error) {
	return generateSigningKey(signingKeyID, 2048)
})

func generateSigningKey(keyID string, bits int) (*signingKey, error) {
	if bits < 2048 {
		bits = 2048
	}
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}
	return &signingKey{keyID: keyID, privateKey: privateKey}, nil
}

func (k *signingKey) sign(claims jwtlib.MapClaims) (string, error) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, claims)
	token.Header["kid"] = k.keyID

	signed, err := token.SignedString(k.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (k *signingKey) verificationKey(token *jwtlib.Token) (any, error) {
	if _, ok := token.Method.(*jwtlib.SigningMethodRSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return &k.privateKey.PublicKey, nil
}

func (k *signingKey) jwks() JWKS {
	pub := k.privateKey.PublicKey
	return JWKS{Keys: []JWK{{
		Kty: "RSA",
		Use: "sig",
		Kid: k.keyID,
		Alg: jwtlib.SigningMethodRS256.Alg(),
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}}}
}

// handleDiscovery serves just enough of the OpenID configuration for go-oidc discovery.
func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	issuer := s.Issuer()
	writeJSON(w, http.StatusOK, map[string]any{
		"issuer":                                issuer,
		"jwks_uri":                              issuer + "/.well-known/jwks.json",
		"authorization_endpoint":                issuer + "/oauth2/authorize",
		"token_endpoint":                        issuer + "/oauth2/token",
		"id_token_signing_alg_values_supported": []string{jwtlib.SigningMethodRS256.Alg()},
	})
}

func (s *Server) handleJWKS(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.key.jwks())
}
