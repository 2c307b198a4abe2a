package app

import (
	"github.com/jrsteele09/go-auth-console/internal/output"
	"github.com/jrsteele09/go-auth-console/tenants"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func (a *app) newTenantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tenants",
		Aliases: []string{"tenant"},
		Short:   "Manage tenants",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tenants",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			list, err := c.Tenants().List(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Print(list, tenantsTable(list))
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one tenant",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			tenant, err := c.Tenants().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(tenant, tenantTable(tenant))
		}),
	})
	cmd.AddCommand(a.newTenantsCreateCmd())
	cmd.AddCommand(a.newTenantsUpdateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.Tenants().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Message("Tenant %s deleted", args[0])
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "stats <id>",
		Short: "Show usage of a tenant (system admins only)",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			stats, err := c.Tenants().Stats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(stats, output.KeyValue(
				[2]string{"Users", output.Int(stats.TotalUsers)},
				[2]string{"Active users", output.Int(stats.ActiveUsers)},
				[2]string{"Clients", output.Int(stats.TotalClients)},
				[2]string{"Tokens issued", output.Int(stats.TotalTokens)},
			))
		}),
	})
	return cmd
}

type tenantFlags struct {
	name        string
	domain      string
	description string
	issuer      string
	audience    string
	active      bool
}

func (f *tenantFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Tenant name")
	fs.StringVar(&f.domain, "domain", "", "Domain the tenant's users sign in from")
	fs.StringVar(&f.description, "description", "", "Description")
	fs.StringVar(&f.issuer, "issuer", "", "OAuth issuer URL of the tenant")
	fs.StringVar(&f.audience, "audience", "", "OAuth audience of the tenant")
	fs.BoolVar(&f.active, "active", true, "Whether the tenant is enabled")
}

func (f *tenantFlags) apply(fs *pflag.FlagSet, t *tenants.Tenant) {
	if fs.Changed("name") {
		t.Name = f.name
	}
	if fs.Changed("domain") {
		t.Domain = f.domain
	}
	if fs.Changed("description") {
		t.Description = f.description
	}
	if fs.Changed("issuer") {
		t.Issuer = f.issuer
	}
	if fs.Changed("audience") {
		t.Audience = f.audience
	}
	if fs.Changed("active") {
		t.IsActive = f.active
	}
}

func (a *app) newTenantsCreateCmd() *cobra.Command {
	var flags tenantFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tenant",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			tenant := &tenants.Tenant{IsActive: true}
			flags.apply(cmd.Flags(), tenant)

			created, err := c.Tenants().Create(cmd.Context(), tenant)
			if err != nil {
				return err
			}
			return a.printer.Print(created, tenantTable(created))
		}),
	}
	flags.register(cmd.Flags())
	return cmd
}

func (a *app) newTenantsUpdateCmd() *cobra.Command {
	var flags tenantFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			tenant, err := c.Tenants().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), tenant)

			updated, err := c.Tenants().Update(cmd.Context(), tenant)
			if err != nil {
				return err
			}
			return a.printer.Print(updated, tenantTable(updated))
		}),
	}
	flags.register(cmd.Flags())
	return cmd
}

func tenantsTable(list []*tenants.Tenant) output.Table {
	t := output.Table{
		Headers: []string{"ID", "Name", "Domain", "Active", "Created"},
		Empty:   "No tenants found",
	}
	for _, tenant := range list {
		t.Append(tenant.ID, tenant.Name, output.OrDash(tenant.Domain), output.Bool(tenant.IsActive), output.Time(tenant.CreatedAt))
	}
	return t
}

func tenantTable(t *tenants.Tenant) output.Table {
	return output.KeyValue(
		[2]string{"ID", t.ID},
		[2]string{"Name", t.Name},
		[2]string{"Domain", output.OrDash(t.Domain)},
		[2]string{"Description", output.OrDash(t.Description)},
		[2]string{"Issuer", output.OrDash(t.Issuer)},
		[2]string{"Audience", output.OrDash(t.Audience)},
		[2]string{"Active", output.Bool(t.IsActive)},
		[2]string{"Created", output.Time(t.CreatedAt)},
	)
}
