package app

import (
	"fmt"

	"github.com/jrsteele09/go-auth-console/apiclient"
	"github.com/jrsteele09/go-auth-console/internal/errors"
)

var (
	errSessionExpired = errors.New("session expired: run `console login`")
	errNotLoggedIn    = errors.New("not logged in: run `console login`")

	errInvalidCredentials = errors.New("invalid username or password")
)

// describe turns API failures into the message printed by cobra. The token has already
// been cleared by the client when the API answered 401.
func describe(err error) error {
	var apiErr *apiclient.APIError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errors.ErrUnauthorized):
		return errSessionExpired
	case errors.Is(err, errors.ErrNoSession):
		return errNotLoggedIn
	case errors.Is(err, errors.ErrNotFound):
		return fmt.Errorf("not found: check the id against the matching list command")
	case errors.Is(err, errors.ErrForbidden):
		return fmt.Errorf("forbidden: your account cannot perform this action")
	case errors.Is(err, errors.ErrTenantRequired):
		return fmt.Errorf("a tenant is required: pass --tenant")
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return fmt.Errorf("%s", apiErr.Message)
	}
	return err
}
