// Package app provides the commands of the console command-line application.
package app

import (
	"github.com/jrsteele09/go-auth-console/apiclient"
	"github.com/jrsteele09/go-auth-console/internal/config"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/internal/logging"
	"github.com/jrsteele09/go-auth-console/internal/output"
	"github.com/jrsteele09/go-auth-console/sessions"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// keyringService is the keyring entry name the token is saved under.
const keyringService = "go-auth-console"

// app is the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	config  config.Config
	store   sessions.TokenStore
	printer *output.Printer
}

// NewRootCmd creates a new root command for the console CLI.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:               "console",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Administrative console for the OAuth identity server",
		Long: `console manages OAuth clients, tenants, users, system admins, API keys and request
logs through the identity server's admin REST API. It signs in once and keeps the bearer token
between invocations; system admins and tenant users see the scope their token grants.`,
		PersistentPreRunE: a.setup,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Err(err).Msg("Error displaying help")
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file (defaults to $CONSOLE_CONFIG)")
	flags.String("api-url", "", "Base URL of the identity server's admin API")
	flags.StringP("output", "o", "", "Output format: table, json or yaml")
	flags.String("token-store", "", "Where the bearer token is kept: file or keyring")
	flags.String("data-folder", "", "Folder of the file token store")
	flags.Bool("debug", false, "Enable debug logging")
	a.bindFlag(rootCmd, config.KeyAPIURL, "api-url")
	a.bindFlag(rootCmd, config.KeyOutput, "output")
	a.bindFlag(rootCmd, config.KeyTokenStore, "token-store")
	a.bindFlag(rootCmd, config.KeyDataFolder, "data-folder")
	a.bindFlag(rootCmd, config.KeyDebug, "debug")

	rootCmd.AddCommand(a.newLoginCmd())
	rootCmd.AddCommand(a.newLogoutCmd())
	rootCmd.AddCommand(a.newWhoamiCmd())
	rootCmd.AddCommand(a.newProfileCmd())
	rootCmd.AddCommand(a.newDashboardCmd())
	rootCmd.AddCommand(a.newClientsCmd())
	rootCmd.AddCommand(a.newTenantsCmd())
	rootCmd.AddCommand(a.newUsersCmd())
	rootCmd.AddCommand(a.newAdminsCmd())
	rootCmd.AddCommand(a.newAPIKeysCmd())
	rootCmd.AddCommand(a.newLogsCmd())
	rootCmd.AddCommand(a.newServeCmd())

	return rootCmd
}

func (a *app) bindFlag(cmd *cobra.Command, key, flag string) {
	if err := a.v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		log.Err(err).Str("flag", flag).Msg("Error binding flag")
	}
}

// setup loads the configuration and opens the token store before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	c, err := config.Load(a.v, path)
	if err != nil {
		return err
	}
	a.config = c
	logging.Setup(c.GetEnv(), c.IsDebug())

	if a.printer, err = output.New(cmd.OutOrStdout(), c.GetOutput()); err != nil {
		return err
	}

	switch c.GetTokenStore() {
	case "keyring":
		a.store = sessions.NewKeyringStore(keyringService)
	case "file":
		a.store = sessions.NewFileStore(c.GetDataFolder())
	default:
		return errors.Validationf("token store %q must be file or keyring", c.GetTokenStore())
	}
	return nil
}

// client returns an admin API client acting as the saved session. Commands other than
// login fail with a hint when no one is signed in.
func (a *app) client() (*apiclient.Client, error) {
	session, err := sessions.Restore(a.store)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.ErrNoSession
	}
	return a.anonymousClient().WithSession(session), nil
}

func (a *app) anonymousClient() *apiclient.Client {
	return apiclient.New(a.config.GetAPIURL(), nil,
		apiclient.WithTokenStore(a.store),
		apiclient.WithTimeout(a.config.GetTimeout()),
	)
}

// run adapts a command body so the errors it returns read as advice to the operator.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return describe(fn(cmd, args))
	}
}
