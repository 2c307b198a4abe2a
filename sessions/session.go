package sessions

import (
	"fmt"
)

// Session is the immutable, client side view of a logged in user: the raw bearer token
// and the claims decoded from it. A nil *Session means "no session".
type Session struct {
	token  string
	claims Claims
}

// FromToken builds a Session from a bearer token. It returns nil when the token cannot be decoded.
func FromToken(rawToken string) *Session {
	claims := Decode(rawToken)
	if claims == nil {
		return nil
	}
	return &Session{token: rawToken, claims: *claims}
}

// Restore loads the persisted token and decodes it. A missing or undecodable token is
// reported as a nil session, not as an error.
func Restore(store TokenStore) (*Session, error) {
	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("[sessions Restore] %w", err)
	}
	return FromToken(token), nil
}

// Token returns the bearer token, or "" for a nil session.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

// Claims returns a copy of the decoded claims, or nil for a nil session.
func (s *Session) Claims() *Claims {
	if s == nil {
		return nil
	}
	c := s.claims
	if s.claims.TenantID != nil {
		tenantID := *s.claims.TenantID
		c.TenantID = &tenantID
	}
	c.Roles = append([]string(nil), s.claims.Roles...)
	return &c
}

func (s *Session) String() string {
	if s == nil {
		return "<no session>"
	}
	return fmt.Sprintf("%s (%s)", s.claims.Username, s.claims.UserType)
}
