package app

import (
	"strconv"

	"github.com/jrsteele09/go-auth-console/dashboard"
	"github.com/jrsteele09/go-auth-console/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals across clients, tenants and users",
		Long: `Show the dashboard aggregate for the signed in user. Tenants or clients whose details
cannot be fetched are counted as empty; the rest of the totals are still shown.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			service := dashboard.NewService(
				dashboard.FromRepos(c.Clients(), c.Tenants(), c.Users()),
				dashboard.WithConcurrency(a.config.GetConcurrency()),
			)

			stats, err := service.Compute(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.printer.Print(stats, summaryTable(stats)); err != nil {
				return err
			}
			if a.printer.Format() != output.FormatTable {
				return nil
			}
			a.printer.Message("\nRecent users")
			return a.printer.Print(nil, recentUsersTable(stats.RecentUsers))
		}),
	}
}

func summaryTable(s *dashboard.Stats) output.Table {
	return output.KeyValue(
		[2]string{"Clients", strconv.Itoa(s.TotalClients)},
		[2]string{"Active clients", strconv.Itoa(s.ActiveClients)},
		[2]string{"Tokens issued", output.Int(s.TotalTokens)},
		[2]string{"Tenants", strconv.Itoa(s.TotalTenants)},
		[2]string{"Users", strconv.Itoa(s.TotalUsers)},
		[2]string{"Active users", strconv.Itoa(s.ActiveUsers)},
	)
}

func recentUsersTable(recent []dashboard.RecentUser) output.Table {
	t := output.Table{
		Headers: []string{"Username", "Email", "Tenant", "Created"},
		Empty:   "No users yet",
	}
	for _, u := range recent {
		t.Append(u.Username, u.Email, output.OrDash(u.TenantName), output.Time(u.CreatedAt))
	}
	return t
}
