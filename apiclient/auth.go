package apiclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/sessions"
	"github.com/jrsteele09/go-auth-console/users"
	"github.com/rs/zerolog/log"
)

// Credentials is the body of POST /admin/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TenantID string `json:"tenant_id,omitempty"`
}

// LoginResponse is the answer to a successful login. Some deployments name the token
// access_token.
type LoginResponse struct {
	Token       string         `json:"token,omitempty"`
	AccessToken string         `json:"access_token,omitempty"`
	User        *users.Profile `json:"user,omitempty"`
}

func (r *LoginResponse) BearerToken() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

type AuthService struct {
	c *Client
}

// Login exchanges credentials for a token, stores it and returns the new session.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*sessions.Session, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return nil, errors.Validationf("username and password are required")
	}
	resp, err := send[LoginResponse](ctx, s.c, http.MethodPost, s.c.paths.Login(), creds)
	if err != nil {
		return nil, err
	}
	token := resp.BearerToken()
	if token == "" {
		return nil, errors.Wrapf(errors.ErrDecodeResponse, "[apiclient Login] response carried no token")
	}
	session := sessions.FromToken(token)
	if session == nil {
		if s.c.store != nil {
			if err := s.c.store.Clear(); err != nil {
				log.Err(err).Msg("[apiclient Login] failed to clear token store")
			}
		}
		return nil, errors.Wrapf(errors.ErrDecodeResponse, "[apiclient Login] token is not a decodable JWT")
	}
	if s.c.store != nil {
		if err := s.c.store.Save(token); err != nil {
			return nil, errors.Wrapf(err, "[apiclient Login] save token")
		}
	}
	return session, nil
}

// Logout forgets the stored token. The admin API keeps no server side session.
func (s *AuthService) Logout() error {
	if s.c.store == nil {
		return nil
	}
	return errors.Wrapf(s.c.store.Clear(), "[apiclient Logout]")
}

func (s *AuthService) Me(ctx context.Context) (*users.Profile, error) {
	return get[users.Profile](ctx, s.c, s.c.paths.Me())
}

func (s *AuthService) UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*users.Profile, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	return send[users.Profile](ctx, s.c, http.MethodPut, s.c.paths.Profile(), update)
}
