package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSweepCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Recompute the anonymized fields of every record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, err := client.RefreshAnonymization()
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(map[string]int{"records": count})
			}
			fmt.Printf("Refreshed %d records\n", count)
			return nil
		},
	}
}

func newAuditCmd(client *Client) *cobra.Command {
	var (
		role    string
		actorID int64
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List recent audit events (admin only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			events, err := client.ListAudit(role, actorID, limit)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(events)
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tACTOR\tROLE\tACTION\tDETAILS\tAT")
			for _, e := range events {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n",
					e.ID, e.ActorID, e.ActorRole, e.Action, e.Details,
					e.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Filter by actor role")
	cmd.Flags().Int64Var(&actorID, "actor-id", 0, "Filter by actor id")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum events to return (default 100)")
	return cmd
}
