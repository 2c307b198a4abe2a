package fakeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/go-auth-console/apikeys"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/reqlogs"
)

func (s *Server) handleListAPIKeys(w http.ResponseWriter, r *http.Request) {
	list, err := s.APIKeys.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetAPIKey(w http.ResponseWriter, r *http.Request) {
	k, err := s.APIKeys.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, k)
}

func (s *Server) handleGenerateAPIKey(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[apikeys.GenerateRequest](w, r)
	if !ok {
		return
	}
	k, err := s.APIKeys.Generate(r.Context(), *req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, k)
}

func (s *Server) handleDeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	if err := s.APIKeys.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleAPIKey(w http.ResponseWriter, r *http.Request) {
	k, err := s.APIKeys.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, k)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	filter := reqlogs.FilterFromQuery(r.URL.Query())
	if t := tenantScope(r); t != "" {
		filter.TenantID = t
	}
	list, err := s.Logs.List(r.Context(), filter)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	l, err := s.Logs.Get(r.Context(), chi.URLParam(r, "id"))
	if err == nil {
		if t := tenantScope(r); t != "" && l.TenantID != t {
			err = errors.ErrNotFound
		}
	}
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleLogStats(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = reqlogs.PeriodDay
	}
	stats, err := s.Logs.StatsFor(period, tenantScope(r))
	if err != nil {
		if errors.Is(err, errors.ErrInvalidPeriod) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
