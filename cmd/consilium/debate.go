package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/voletro/consilium/internal/db"
	"github.com/voletro/consilium/internal/debate"
	"github.com/voletro/consilium/internal/provider"
	"github.com/voletro/consilium/internal/scaffold"
)

func debateCmd() *cobra.Command {
	var doScaffold bool
	cmd := &cobra.Command{
		Use:          "debate <requirement>",
		Short:        "Run a proposer/auditor debate over a requirement and emit the consensus specification",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			requirement := strings.TrimSpace(strings.Join(args, " "))
			if requirement == "" {
				return fmt.Errorf("requirement must not be empty")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			orch, err := debate.New(cmd.Context(), cfg, provider.NewRegistry())
			if err != nil {
				return err
			}

			res := orch.Run(cmd.Context(), requirement)
			if res.Degraded {
				log.Warn().Str("last_error", res.LastError).Msg("debate did not converge, specification is a placeholder")
			}

			storeDB, closeFn, err := openDB()
			if err != nil {
				return err
			}
			defer closeFn()
			if err := db.NewStore(storeDB).SaveResult(cmd.Context(), requirement, res); err != nil {
				return fmt.Errorf("persist session: %w", err)
			}

			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if doScaffold && !res.Degraded {
				sres, err := scaffold.Materialize(res.Spec, cfg.OutputDir)
				if err != nil {
					return fmt.Errorf("scaffold: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "scaffolded %d files under %s\n", len(sres.Created), sres.Root)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&doScaffold, "scaffold", false, "materialize the specification as a project skeleton")
	return cmd
}
