// Package fakeapi is an in-process stand-in for the identity server's admin REST API,
// backed by the in-memory repos. Tests mount Handler on an httptest.Server.
package fakeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	jwtlib "github.com/golang-jwt/jwt/v5"
	fakeclientrepo "github.com/jrsteele09/go-auth-console/clients/fakerepo"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/sessions"
	tenantrepofakes "github.com/jrsteele09/go-auth-console/tenants/repofakes"
	fakeuserrepo "github.com/jrsteele09/go-auth-console/users/repofake"
	"github.com/rs/zerolog/log"
)

const Issuer = "http://fakeapi.local"

// Request is what the fake saw of one incoming call.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
}

// Identity is the verified caller of an authenticated route.
type Identity struct {
	Subject  string
	Username string
	UserType string
	IsAdmin  bool
	TenantID string
}

type contextKey struct{}

type Server struct {
	Clients *fakeclientrepo.FakeClientRepo
	Tenants *tenantrepofakes.FakeTenantRepo
	Users   *fakeuserrepo.FakeUserRepo
	Admins  *fakeuserrepo.FakeAdminRepo
	APIKeys *APIKeyStore
	Logs    *LogStore

	key        *signingKey
	issuer     string
	loginToken string
	lock       sync.Mutex
	requests   []Request
	revoked    bool
	delay      time.Duration
	router     chi.Router
}

func New() *Server {
	key, err := sharedKey()
	if err != nil {
		panic(err)
	}
	s := &Server{
		Clients: fakeclientrepo.NewFakeClientRepo(),
		Tenants: tenantrepofakes.NewFakeTenantRepo(),
		Users:   fakeuserrepo.NewFakeUserRepo(),
		Admins:  fakeuserrepo.NewFakeAdminRepo(),
		APIKeys: NewAPIKeyStore(),
		Logs:    NewLogStore(),
		key:     key,
		issuer:  Issuer,
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Revoke makes every authenticated route answer 401 from now on.
func (s *Server) Revoke() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.revoked = true
}

// SetDelay holds every response for d.
func (s *Server) SetDelay(d time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.delay = d
}

// SetIssuer changes the iss claim of tokens issued from now on and the issuer the
// discovery document names. Tests set it to the httptest URL to make discovery work.
func (s *Server) SetIssuer(issuer string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.issuer = issuer
}

func (s *Server) Issuer() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.issuer
}

// SetLoginToken makes successful logins answer with token instead of a signed one.
func (s *Server) SetLoginToken(token string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.loginToken = token
}

// Requests returns the calls received so far, in arrival order.
func (s *Server) Requests() []Request {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]Request(nil), s.requests...)
}

// IssueToken signs an RS256 token for id with the fake's key.
func (s *Server) IssueToken(id Identity) string {
	claims := jwtlib.MapClaims{
		"sub":       id.Subject,
		"username":  id.Username,
		"user_type": id.UserType,
		"is_admin":  id.IsAdmin,
		"iss":       s.Issuer(),
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	if id.TenantID != "" {
		claims["tenant_id"] = id.TenantID
	}
	signed, err := s.key.sign(claims)
	if err != nil {
		panic(err)
	}
	return signed
}

// AdminToken is a token for a system admin.
func (s *Server) AdminToken() string {
	return s.IssueToken(Identity{Subject: "admin-1", Username: "root", UserType: sessions.UserTypeAdmin, IsAdmin: true})
}

// TenantToken is a token for a user of tenantID.
func (s *Server) TenantToken(tenantID string, isAdmin bool) string {
	return s.IssueToken(Identity{Subject: "user-" + tenantID, Username: "user@" + tenantID, UserType: sessions.UserTypeTenant, IsAdmin: isAdmin, TenantID: tenantID})
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		delay := s.delay
		s.lock.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		revoked := s.revoked
		s.lock.Unlock()

		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if revoked || !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id, err := s.parse(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, id)))
	})
}

func (s *Server) parse(raw string) (Identity, error) {
	claims := jwtlib.MapClaims{}
	_, err := jwtlib.ParseWithClaims(raw, claims, s.key.verificationKey,
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodRS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}
	id := Identity{}
	id.Subject, _ = claims["sub"].(string)
	id.Username, _ = claims["username"].(string)
	id.UserType, _ = claims["user_type"].(string)
	id.IsAdmin, _ = claims["is_admin"].(bool)
	id.TenantID, _ = claims["tenant_id"].(string)
	return id, nil
}

func identity(r *http.Request) Identity {
	id, _ := r.Context().Value(contextKey{}).(Identity)
	return id
}

// requireAdmin guards the /admin family.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := identity(r)
		if id.UserType != sessions.UserTypeAdmin || !id.IsAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireTenant guards the /tenant family. Mutations need a tenant admin.
func requireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := identity(r)
		if id.UserType != sessions.UserTypeTenant || id.TenantID == "" {
			writeError(w, http.StatusForbidden, "tenant access required")
			return
		}
		if r.Method != http.MethodGet && !id.IsAdmin && !strings.HasSuffix(r.URL.Path, "/profile") {
			writeError(w, http.StatusForbidden, "tenant admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("[fakeapi] failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeRepoError maps repo errors onto statuses the real API uses.
func writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errors.ErrValidation), errors.Is(err, errors.ErrTenantRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errors.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, errors.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decode[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return &v, true
}
