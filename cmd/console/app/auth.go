package app

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-auth-console/apiclient"
	"github.com/jrsteele09/go-auth-console/authz"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/internal/output"
	"github.com/jrsteele09/go-auth-console/internal/utils"
	"github.com/jrsteele09/go-auth-console/sessions"
	"github.com/spf13/cobra"
)

func (a *app) newLoginCmd() *cobra.Command {
	var (
		creds         apiclient.Credentials
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the bearer token",
		Long: `Sign in with a username and password. System admins and tenant users share the same
login; the token returned decides which endpoints later commands use.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				creds.Password = strings.TrimRight(line, "\r\n")
			}

			session, err := a.anonymousClient().Auth().Login(cmd.Context(), creds)
			if errors.Is(err, errors.ErrUnauthorized) {
				return errInvalidCredentials
			}
			if err != nil {
				return err
			}
			authCtx := authz.ForSession(session)
			a.printer.Message("Logged in as %s (%s)", session.Claims().Username, authCtx.RoleName())
			return nil
		}),
	}
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Password")
	cmd.Flags().StringVar(&creds.TenantID, "tenant", "", "Tenant to sign in to")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved bearer token",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			if err := a.anonymousClient().Auth().Logout(); err != nil {
				return err
			}
			a.printer.Message("Logged out")
			return nil
		}),
	}
}

// whoami describes the caller from the saved token only, unless --verify asks the
// issuer to check the signature.
type whoami struct {
	Claims        *sessions.Claims `json:"claims"`
	Authorization authz.Context    `json:"authorization"`
	Role          string           `json:"role"`
	Verified      *bool            `json:"verified,omitempty"`
}

func (a *app) newWhoamiCmd() *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user and what they can reach",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			session, err := sessions.Restore(a.store)
			if err != nil {
				return err
			}
			if session == nil {
				return errNotLoggedIn
			}

			authCtx := authz.ForSession(session)
			result := whoami{Claims: session.Claims(), Authorization: authCtx, Role: authCtx.RoleName()}
			if verify {
				verifier, err := sessions.NewVerifier(cmd.Context(), a.config.GetIssuer())
				if err != nil {
					return err
				}
				ok := verifier.Verify(cmd.Context(), session.Token()) == nil
				result.Verified = &ok
			}
			return a.printer.Print(result, whoamiTable(result))
		}),
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Verify the token signature against the issuer")
	return cmd
}

func whoamiTable(w whoami) output.Table {
	t := output.KeyValue(
		[2]string{"Username", w.Claims.Username},
		[2]string{"Email", output.OrDash(w.Claims.Email)},
		[2]string{"Role", w.Role},
		[2]string{"Tenant", output.OrDash(utils.Value(w.Claims.TenantID))},
		[2]string{"API base", w.Authorization.APIBasePath},
		[2]string{"Admin access", output.Bool(w.Authorization.HasAdminAccess)},
		[2]string{"Expires", output.Time(w.Claims.ExpiresAt)},
	)
	if w.Verified != nil {
		t.Append("Verified", output.Bool(*w.Verified))
	}
	return t
}
