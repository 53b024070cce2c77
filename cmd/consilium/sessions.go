package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/voletro/consilium/internal/db"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "sessions",
		Short:        "List stored debate sessions",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			storeDB, closeFn, err := openDB()
			if err != nil {
				return err
			}
			defer closeFn()

			records, err := db.NewStore(storeDB).ListSessions(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SESSION\tCREATED\tSTATUS\tPROJECT\tREQUIREMENT")
			for _, r := range records {
				status := "converged"
				if r.Degraded {
					status = "degraded (" + r.LastError + ")"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.SessionID, r.CreatedAt, status, r.Spec.ProjectName, truncate(r.Requirement, 60))
			}
			return w.Flush()
		},
	}
	return cmd
}

// truncate shortens s to at most n runes. Requirements are frequently
// non-ASCII, so slicing happens on rune boundaries.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
