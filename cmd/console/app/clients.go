package app

import (
	"github.com/jrsteele09/go-auth-console/clients"
	"github.com/jrsteele09/go-auth-console/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func (a *app) newClientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "Manage OAuth client applications",
	}
	cmd.AddCommand(a.newClientsListCmd())
	cmd.AddCommand(a.newClientsGetCmd())
	cmd.AddCommand(a.newClientsCreateCmd())
	cmd.AddCommand(a.newClientsUpdateCmd())
	cmd.AddCommand(a.newClientsDeleteCmd())
	cmd.AddCommand(a.newClientsRegenerateSecretCmd())
	cmd.AddCommand(a.newClientsStatsCmd())
	cmd.AddCommand(a.newClientsTenantsCmd("add-tenants", "Give tenants access to a client", true))
	cmd.AddCommand(a.newClientsTenantsCmd("remove-tenants", "Take tenants' access to a client away", false))
	return cmd
}

func (a *app) newClientsListCmd() *cobra.Command {
	var filter clients.ListFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			list, err := c.Clients().List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return a.printer.Print(list, clientsTable(list))
		}),
	}
	cmd.Flags().StringVar(&filter.TenantID, "tenant", "", "Only clients of this tenant (system admins only)")
	return cmd
}

func (a *app) newClientsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one client",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			client, err := c.Clients().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(client, clientTable(client))
		}),
	}
}

// clientFlags are the editable fields of a client. Only flags that were set are applied.
type clientFlags struct {
	name         string
	description  string
	clientType   string
	redirectURIs []string
	grantTypes   []string
	scopes       []string
	tenantIDs    []string
	active       bool
}

func (f *clientFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Display name")
	fs.StringVar(&f.description, "description", "", "Description")
	fs.StringVar(&f.clientType, "type", string(clients.ClientTypeConfidential), "confidential or public")
	fs.StringSliceVar(&f.redirectURIs, "redirect-uri", nil, "Allowed redirect URI (repeatable)")
	fs.StringSliceVar(&f.grantTypes, "grant-type", nil, "Allowed grant type (repeatable)")
	fs.StringSliceVar(&f.scopes, "scope", nil, "Allowed scope (repeatable)")
	fs.StringSliceVar(&f.tenantIDs, "tenant", nil, "Tenant with access (repeatable)")
	fs.BoolVar(&f.active, "active", true, "Whether the client can be used")
}

func (f *clientFlags) apply(fs *pflag.FlagSet, client *clients.Client) {
	if fs.Changed("name") {
		client.Name = f.name
	}
	if fs.Changed("description") {
		client.Description = f.description
	}
	if fs.Changed("type") || client.Type == "" {
		client.Type = clients.ClientType(f.clientType)
	}
	if fs.Changed("redirect-uri") {
		client.RedirectURIs = f.redirectURIs
	}
	if fs.Changed("grant-type") {
		client.GrantTypes = f.grantTypes
	}
	if fs.Changed("scope") {
		client.Scopes = f.scopes
	}
	if fs.Changed("tenant") {
		client.TenantIDs = f.tenantIDs
	}
	if fs.Changed("active") {
		client.IsActive = f.active
	}
}

func (a *app) newClientsCreateCmd() *cobra.Command {
	var flags clientFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a client; the secret is shown once",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			client := &clients.Client{IsActive: true}
			flags.apply(cmd.Flags(), client)

			created, err := c.Clients().Create(cmd.Context(), client)
			if err != nil {
				return err
			}
			return a.printer.Print(created, clientTable(created))
		}),
	}
	flags.register(cmd.Flags())
	return cmd
}

func (a *app) newClientsUpdateCmd() *cobra.Command {
	var flags clientFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a client",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			client, err := c.Clients().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), client)

			updated, err := c.Clients().Update(cmd.Context(), client)
			if err != nil {
				return err
			}
			return a.printer.Print(updated, clientTable(updated))
		}),
	}
	flags.register(cmd.Flags())
	return cmd
}

func (a *app) newClientsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.Clients().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Message("Client %s deleted", args[0])
			return nil
		}),
	}
}

func (a *app) newClientsRegenerateSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate-secret <id>",
		Short: "Issue a new client secret; the old one stops working",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			client, err := c.Clients().RegenerateSecret(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(client, output.KeyValue(
				[2]string{"Client ID", client.ClientID},
				[2]string{"Client secret", client.ClientSecret},
			))
		}),
	}
}

func (a *app) newClientsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <id>",
		Short: "Show token usage of a client",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			stats, err := c.Clients().Stats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(stats, output.KeyValue(
				[2]string{"Total tokens", output.Int(stats.TotalTokens)},
				[2]string{"Active tokens", output.Int(stats.ActiveTokens)},
				[2]string{"Requests", output.Int(stats.TotalRequests)},
				[2]string{"Last used", output.TimePtr(stats.LastUsedAt)},
			))
		}),
	}
}

func (a *app) newClientsTenantsCmd(use, short string, add bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id> <tenant-id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			update := c.Clients().RemoveTenants
			if add {
				update = c.Clients().AddTenants
			}
			if err := update(cmd.Context(), args[0], args[1:]); err != nil {
				return err
			}
			a.printer.Message("Client %s updated", args[0])
			return nil
		}),
	}
}

func clientsTable(list []*clients.Client) output.Table {
	t := output.Table{
		Headers: []string{"ID", "Name", "Client ID", "Type", "Active", "Created"},
		Empty:   "No clients found",
	}
	for _, c := range list {
		t.Append(c.ID, c.Name, c.ClientID, string(c.Type), output.Bool(c.IsActive), output.Time(c.CreatedAt))
	}
	return t
}

func clientTable(c *clients.Client) output.Table {
	t := output.KeyValue(
		[2]string{"ID", c.ID},
		[2]string{"Name", c.Name},
		[2]string{"Description", output.OrDash(c.Description)},
		[2]string{"Client ID", c.ClientID},
		[2]string{"Type", string(c.Type)},
		[2]string{"Redirect URIs", output.List(c.RedirectURIs)},
		[2]string{"Grant types", output.List(c.GrantTypes)},
		[2]string{"Scopes", output.List(c.Scopes)},
		[2]string{"Tenants", output.List(c.TenantIDs)},
		[2]string{"Active", output.Bool(c.IsActive)},
		[2]string{"Created", output.Time(c.CreatedAt)},
	)
	if c.ClientSecret != "" {
		t.Append("Client secret", c.ClientSecret)
	}
	return t
}
