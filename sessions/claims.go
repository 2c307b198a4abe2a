package sessions

import (
	"encoding/json"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-auth-console/internal/utils"
)

// User types issued by the identity server in the user_type claim.
const (
	UserTypeAdmin  = "admin"
	UserTypeTenant = "tenant"
)

// Claims are the identity and role claims the console reads from a bearer token.
// They are read without signature verification and only drive UI branching;
// the backend stays the sole authority on token validity.
type Claims struct {
	SubjectID string    `json:"sub"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	UserType  string    `json:"user_type,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	TenantID  *string   `json:"tenant_id,omitempty"`
	Roles     []string  `json:"roles,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

// Expired reports whether the exp claim is in the past. A token without exp never expires here.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Decode extracts the claims from the payload segment of a JWT without verifying it.
// It never fails loudly: an absent or malformed token yields nil.
func Decode(rawToken string) *Claims {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil
	}

	return decode(rawToken)
}

// decode reads only the payload segment. The header is ignored, so tokens with an
// unknown or missing alg still decode.
func decode(rawToken string) *Claims {
	parts := strings.Split(rawToken, ".")
	if len(parts) < 2 {
		return nil
	}
	payload, err := jwtlib.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil
	}
	mapClaims := jwtlib.MapClaims{}
	if err := json.Unmarshal(payload, &mapClaims); err != nil {
		return nil
	}

	c := &Claims{
		UserType: stringClaim(mapClaims, "user_type"),
		IsAdmin:  utils.ClaimBool(mapClaims["is_admin"]),
		Username: stringClaim(mapClaims, "username", "preferred_username"),
		Email:    stringClaim(mapClaims, "email"),
		Issuer:   stringClaim(mapClaims, "iss"),
	}
	c.SubjectID = stringClaim(mapClaims, "sub", "user_id", "id")
	if tenantID := stringClaim(mapClaims, "tenant_id"); tenantID != "" {
		c.TenantID = &tenantID
	}
	if roles, ok := mapClaims["roles"].([]any); ok {
		c.Roles = utils.ToStringSlice(roles)
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c
}

// stringClaim returns the first non-empty claim among names.
func stringClaim(claims jwtlib.MapClaims, names ...string) string {
	for _, name := range names {
		if s, ok := utils.ClaimString(claims[name]); ok {
			return s
		}
	}
	return ""
}
