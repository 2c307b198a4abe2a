package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-console/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the caller's *sessions.Session
	ContextKeySession ContextKey = "session"
)

// RequireBearer reads the bearer token and stores the caller's session in the request
// context. A missing or undecodable token gets the same 401 as a token the admin API
// rejects.
func (s *Server) RequireBearer() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session := sessions.FromToken(bearerToken(r))
			if session == nil {
				writeUnauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next(w, r.WithContext(ctx))
		}
	}
}

// SessionFromContext returns the session stored by RequireBearer.
func SessionFromContext(ctx context.Context) *sessions.Session {
	s, _ := ctx.Value(ContextKeySession).(*sessions.Session)
	return s
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
