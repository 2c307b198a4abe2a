package fakeapi

import (
	"net/http"

	"github.com/jrsteele09/go-auth-console/internal/utils"
	"github.com/jrsteele09/go-auth-console/sessions"
	"github.com/jrsteele09/go-auth-console/users"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin tries system admins first, then users of every tenant.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[loginRequest](w, r)
	if !ok {
		return
	}

	var id Identity
	if admin, ok := s.Admins.Authenticate(req.Username, req.Password); ok {
		id = Identity{Subject: admin.ID, Username: admin.Username, UserType: sessions.UserTypeAdmin, IsAdmin: true}
	} else if user, ok := s.Users.Authenticate(req.Username, req.Password); ok && user.IsActive {
		id = Identity{Subject: user.ID, Username: user.Username, UserType: sessions.UserTypeTenant, IsAdmin: user.IsAdmin, TenantID: user.TenantID}
	} else {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.lock.Lock()
	token := s.loginToken
	s.lock.Unlock()
	if token == "" {
		token = s.IssueToken(id)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  profileOf(id),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, profileOf(identity(r)))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	update, ok := decode[users.ProfileUpdate](w, r)
	if !ok {
		return
	}
	if err := update.Validate(); err != nil {
		writeRepoError(w, err)
		return
	}
	p := profileOf(identity(r))
	p.Email = update.Email
	p.FirstName = update.FirstName
	p.LastName = update.LastName
	writeJSON(w, http.StatusOK, p)
}

func profileOf(id Identity) *users.Profile {
	p := &users.Profile{
		ID:       id.Subject,
		Username: id.Username,
		UserType: id.UserType,
		IsAdmin:  id.IsAdmin,
	}
	if id.TenantID != "" {
		p.TenantID = utils.Ptr(id.TenantID)
	}
	return p
}
