package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-auth-console/apiclient"
	"github.com/jrsteele09/go-auth-console/authz"
	"github.com/jrsteele09/go-auth-console/dashboard"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/sessions"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every error answer. Redirect is only set on 401.
type ErrorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// ContextResponse describes the caller as the browser views need it.
type ContextResponse struct {
	Claims        *sessions.Claims `json:"claims"`
	Authorization authz.Context    `json:"authorization"`
	Role          string           `json:"role"`
}

// LoginResponse carries the token the browser keeps for later calls.
type LoginResponse struct {
	Token         string        `json:"token"`
	Authorization authz.Context `json:"authorization"`
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ContextHandler answers from the token alone; the admin API is not consulted.
func (s *Server) ContextHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := SessionFromContext(r.Context())
		authCtx := authz.ForSession(session)
		writeJSON(w, http.StatusOK, ContextResponse{
			Claims:        session.Claims(),
			Authorization: authCtx,
			Role:          authCtx.RoleName(),
		})
	}
}

func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.apiClient(SessionFromContext(r.Context()))
		service := dashboard.NewService(
			dashboard.FromRepos(c.Clients(), c.Tenants(), c.Users()),
			dashboard.WithConcurrency(s.config.GetConcurrency()),
			dashboard.WithMetrics(s.metrics),
		)

		stats, err := service.Compute(r.Context())
		if err != nil {
			writeAPIError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds apiclient.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		session, err := s.apiClient(nil).Auth().Login(r.Context(), creds)
		if err != nil {
			writeAPIError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, LoginResponse{
			Token:         session.Token(),
			Authorization: authz.ForSession(session),
		})
	}
}

// writeAPIError maps admin API failures onto the browser facing responses.
func writeAPIError(w http.ResponseWriter, err error) {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, errors.ErrUnauthorized):
		writeUnauthorized(w)
	case errors.Is(err, errors.ErrValidation):
		writeError(w, http.StatusBadRequest, messageOf(err, apiErr))
	case errors.Is(err, errors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, errors.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		log.Err(err).Msg("[Server] admin API call failed")
		writeError(w, http.StatusBadGateway, "admin API unavailable")
	}
}

func messageOf(err error, apiErr *apiclient.APIError) string {
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Redirect: LoginPage})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("[Server writeJSON] failed to encode response")
	}
}
