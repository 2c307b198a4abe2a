package app

import (
	"github.com/jrsteele09/go-auth-console/apikeys"
	"github.com/jrsteele09/go-auth-console/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) newAPIKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apikeys",
		Aliases: []string{"apikey", "api-keys"},
		Short:   "Manage admin API keys (system admins only)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List API keys",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			list, err := c.APIKeys().List(cmd.Context())
			if err != nil {
				return err
			}
			t := output.Table{
				Headers: []string{"ID", "Name", "Prefix", "Active", "Last used", "Expires"},
				Empty:   "No API keys found",
			}
			for _, k := range list {
				t.Append(k.ID, k.Name, output.OrDash(k.Prefix), output.Bool(k.IsActive), output.TimePtr(k.LastUsedAt), output.TimePtr(k.ExpiresAt))
			}
			return a.printer.Print(list, t)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one API key",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			key, err := c.APIKeys().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(key, apiKeyTable(key))
		}),
	})
	cmd.AddCommand(a.newAPIKeysGenerateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an API key",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.APIKeys().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Message("API key %s deleted", args[0])
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable a disabled API key or disable an enabled one",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			key, err := c.APIKeys().Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(key, apiKeyTable(key))
		}),
	})
	return cmd
}

func (a *app) newAPIKeysGenerateCmd() *cobra.Command {
	var req apikeys.GenerateRequest
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create an API key; the key is shown once",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			key, err := c.APIKeys().Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Print(key, apiKeyTable(key))
		}),
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Name of the key")
	cmd.Flags().StringSliceVar(&req.Scopes, "scope", nil, "Scope granted to the key (repeatable)")
	cmd.Flags().IntVar(&req.ExpiresInDays, "expires-in-days", 0, "Days until the key expires (0 never)")
	return cmd
}

func apiKeyTable(k *apikeys.APIKey) output.Table {
	t := output.KeyValue(
		[2]string{"ID", k.ID},
		[2]string{"Name", k.Name},
		[2]string{"Prefix", output.OrDash(k.Prefix)},
		[2]string{"Scopes", output.List(k.Scopes)},
		[2]string{"Active", output.Bool(k.IsActive)},
		[2]string{"Created", output.Time(k.CreatedAt)},
		[2]string{"Last used", output.TimePtr(k.LastUsedAt)},
		[2]string{"Expires", output.TimePtr(k.ExpiresAt)},
	)
	if k.Key != "" {
		t.Append("Key", k.Key)
	}
	return t
}
