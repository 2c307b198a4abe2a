package app

import (
	"sort"
	"strconv"

	"github.com/jrsteele09/go-auth-console/internal/output"
	"github.com/jrsteele09/go-auth-console/reqlogs"
	"github.com/spf13/cobra"
)

func (a *app) newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logs",
		Aliases: []string{"log"},
		Short:   "Browse the identity server's request logs",
	}
	cmd.AddCommand(a.newLogsListCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one request",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			entry, err := c.Logs().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(entry, output.KeyValue(
				[2]string{"ID", entry.ID},
				[2]string{"Request", entry.Method + " " + entry.Path},
				[2]string{"Status", strconv.Itoa(entry.StatusCode)},
				[2]string{"Duration (ms)", output.Int(entry.DurationMS)},
				[2]string{"Client", output.OrDash(entry.ClientID)},
				[2]string{"Tenant", output.OrDash(entry.TenantID)},
				[2]string{"User", output.OrDash(entry.UserID)},
				[2]string{"IP address", output.OrDash(entry.IPAddress)},
				[2]string{"User agent", output.OrDash(entry.UserAgent)},
				[2]string{"Time", output.Time(entry.CreatedAt)},
			))
		}),
	})
	cmd.AddCommand(a.newLogsStatsCmd())
	return cmd
}

func (a *app) newLogsListCmd() *cobra.Command {
	var filter reqlogs.Filter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent requests",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			list, err := c.Logs().List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			t := output.Table{
				Headers: []string{"Time", "Method", "Path", "Status", "Duration (ms)", "Client"},
				Empty:   "No requests found",
			}
			for _, l := range list {
				t.Append(output.Time(l.CreatedAt), l.Method, l.Path, strconv.Itoa(l.StatusCode), output.Int(l.DurationMS), output.OrDash(l.ClientID))
			}
			return a.printer.Print(list, t)
		}),
	}
	cmd.Flags().StringVar(&filter.TenantID, "tenant", "", "Only requests of this tenant (system admins only)")
	cmd.Flags().StringVar(&filter.ClientID, "client", "", "Only requests of this client")
	cmd.Flags().StringVar(&filter.Method, "method", "", "Only requests with this HTTP method")
	cmd.Flags().IntVar(&filter.Status, "status", 0, "Only requests answered with this status")
	cmd.Flags().IntVar(&filter.Limit, "limit", 50, "Maximum number of requests")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "Number of requests to skip")
	return cmd
}

func (a *app) newLogsStatsCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise requests over a period",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			stats, err := c.Logs().Stats(cmd.Context(), period)
			if err != nil {
				return err
			}
			t := output.KeyValue(
				[2]string{"Period", stats.Period},
				[2]string{"Requests", output.Int(stats.TotalRequests)},
				[2]string{"Errors", output.Int(stats.ErrorRequests)},
				[2]string{"Avg duration (ms)", strconv.FormatFloat(stats.AvgDurationMS, 'f', 1, 64)},
			)
			for _, status := range sortedKeys(stats.ByStatus) {
				t.Append("Status "+status, output.Int(stats.ByStatus[status]))
			}
			return a.printer.Print(stats, t)
		}),
	}
	cmd.Flags().StringVar(&period, "period", reqlogs.PeriodDay, "One of 1h, 24h, 7d or 30d")
	return cmd
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
