package sessions

import (
	"context"
	"crypto"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Verifier checks a bearer token's signature, issuer and expiry against the identity
// server's published keys. The console never needs this to branch the UI; it backs
// `whoami --verify` for operators who want a real answer.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewVerifier discovers the issuer's JWKS through /.well-known/openid-configuration.
func NewVerifier(ctx context.Context, issuer string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("[sessions NewVerifier] failed to create OIDC provider: %w", err)
	}
	return &Verifier{
		verifier: provider.Verifier(&oidc.Config{SkipClientIDCheck: true}),
	}, nil
}

// NewStaticVerifier verifies against a fixed set of public keys, without discovery.
func NewStaticVerifier(issuer string, keys ...crypto.PublicKey) *Verifier {
	keySet := &oidc.StaticKeySet{PublicKeys: keys}
	return &Verifier{
		verifier: oidc.NewVerifier(issuer, keySet, &oidc.Config{SkipClientIDCheck: true}),
	}
}

// Verify returns nil when the token is authentic and unexpired.
func (v *Verifier) Verify(ctx context.Context, rawToken string) error {
	if _, err := v.verifier.Verify(ctx, rawToken); err != nil {
		return fmt.Errorf("[Verifier Verify] %w", err)
	}
	return nil
}
