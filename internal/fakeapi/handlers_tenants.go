package fakeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/tenants"
	"github.com/jrsteele09/go-auth-console/users"
)

// scopedTenantID is the tenant named in the path, refused for tenant callers naming
// another tenant.
func scopedTenantID(r *http.Request, param string) (string, error) {
	id := chi.URLParam(r, param)
	t := tenantScope(r)
	switch {
	case t == "":
		return id, nil
	case id == "" || id == t:
		return t, nil
	}
	return "", errors.ErrNotFound
}

func (s *Server) handleListTenants(w http.ResponseWriter, r *http.Request) {
	if t := tenantScope(r); t != "" {
		own, err := s.Tenants.Get(r.Context(), t)
		if err != nil {
			writeRepoError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []*tenants.Tenant{own})
		return
	}
	list, err := s.Tenants.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetTenant(w http.ResponseWriter, r *http.Request) {
	id, err := scopedTenantID(r, "id")
	if err != nil {
		writeRepoError(w, err)
		return
	}
	t, err := s.Tenants.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateTenant(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[tenants.Tenant](w, r)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		writeRepoError(w, err)
		return
	}
	t, err := s.Tenants.Create(r.Context(), req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTenant(w http.ResponseWriter, r *http.Request) {
	id, err := scopedTenantID(r, "id")
	if err != nil {
		writeRepoError(w, err)
		return
	}
	req, ok := decode[tenants.Tenant](w, r)
	if !ok {
		return
	}
	req.ID = id
	t, err := s.Tenants.Update(r.Context(), req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTenant(w http.ResponseWriter, r *http.Request) {
	if err := s.Tenants.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTenantStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Tenants.Stats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	tenantID, err := scopedTenantID(r, "tenantID")
	if err != nil {
		writeRepoError(w, err)
		return
	}
	list, err := s.Users.List(r.Context(), tenantID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	tenantID, err := scopedTenantID(r, "tenantID")
	if err != nil {
		writeRepoError(w, err)
		return
	}
	u, err := s.Users.Get(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	tenantID, err := scopedTenantID(r, "tenantID")
	if err != nil {
		writeRepoError(w, err)
		return
	}
	req, ok := decode[users.TenantUser](w, r)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		writeRepoError(w, err)
		return
	}
	u, err := s.Users.Create(r.Context(), tenantID, req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	tenantID, err := scopedTenantID(r, "tenantID")
	if err != nil {
		writeRepoError(w, err)
		return
	}
	req, ok := decode[users.TenantUser](w, r)
	if !ok {
		return
	}
	req.ID = chi.URLParam(r, "id")
	u, err := s.Users.Update(r.Context(), tenantID, req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	tenantID, err := scopedTenantID(r, "tenantID")
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if err := s.Users.Delete(r.Context(), tenantID, chi.URLParam(r, "id")); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetUserPassword(w http.ResponseWriter, r *http.Request) {
	tenantID, err := scopedTenantID(r, "tenantID")
	if err != nil {
		writeRepoError(w, err)
		return
	}
	reset, err := s.Users.ResetPassword(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reset)
}

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	list, err := s.Admins.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetAdmin(w http.ResponseWriter, r *http.Request) {
	a, err := s.Admins.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	if err := s.Admins.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetAdminPassword(w http.ResponseWriter, r *http.Request) {
	reset, err := s.Admins.ResetPassword(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reset)
}
