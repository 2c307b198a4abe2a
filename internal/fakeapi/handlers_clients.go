package fakeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/go-auth-console/clients"
	"github.com/jrsteele09/go-auth-console/internal/errors"
)

// tenantScope is the tenant a /tenant caller is confined to, or "" for admins.
func tenantScope(r *http.Request) string {
	id := identity(r)
	if id.UserType == "tenant" {
		return id.TenantID
	}
	return ""
}

// scopedClient loads a client and hides it from tenant callers outside its tenants.
func (s *Server) scopedClient(r *http.Request) (*clients.Client, error) {
	c, err := s.Clients.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	if t := tenantScope(r); t != "" && !c.InTenant(t) {
		return nil, errors.ErrNotFound
	}
	return c, nil
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	filter := clients.ListFilter{TenantID: r.URL.Query().Get("tenant_id")}
	if t := tenantScope(r); t != "" {
		filter.TenantID = t
	}
	list, err := s.Clients.List(r.Context(), filter)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	c, err := s.scopedClient(r)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[clients.Client](w, r)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		writeRepoError(w, err)
		return
	}
	if t := tenantScope(r); t != "" {
		req.TenantIDs = []string{t}
	}
	c, err := s.Clients.Create(r.Context(), req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	if _, err := s.scopedClient(r); err != nil {
		writeRepoError(w, err)
		return
	}
	req, ok := decode[clients.Client](w, r)
	if !ok {
		return
	}
	req.ID = chi.URLParam(r, "id")
	c, err := s.Clients.Update(r.Context(), req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if _, err := s.scopedClient(r); err != nil {
		writeRepoError(w, err)
		return
	}
	if err := s.Clients.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRegenerateSecret(w http.ResponseWriter, r *http.Request) {
	if _, err := s.scopedClient(r); err != nil {
		writeRepoError(w, err)
		return
	}
	c, err := s.Clients.RegenerateSecret(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleClientStats(w http.ResponseWriter, r *http.Request) {
	if _, err := s.scopedClient(r); err != nil {
		writeRepoError(w, err)
		return
	}
	stats, err := s.Clients.Stats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type tenantIDsRequest struct {
	TenantIDs []string `json:"tenant_ids"`
}

func (s *Server) handleAddClientTenants(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[tenantIDsRequest](w, r)
	if !ok {
		return
	}
	if err := s.Clients.AddTenants(r.Context(), chi.URLParam(r, "id"), req.TenantIDs); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveClientTenants(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[tenantIDsRequest](w, r)
	if !ok {
		return
	}
	if err := s.Clients.RemoveTenants(r.Context(), chi.URLParam(r, "id"), req.TenantIDs); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
