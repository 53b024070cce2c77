package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voletro/consilium/internal/scaffold"
	"github.com/voletro/consilium/internal/spec"
)

func scaffoldCmd() *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:          "scaffold <spec.json>",
		Short:        "Materialize a saved specification as a project skeleton",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var s spec.ProjectSpec
			if err := json.Unmarshal(data, &s); err != nil {
				return fmt.Errorf("parse specification: %w", err)
			}
			if violations := spec.Validate(s); len(violations) > 0 {
				msgs := make([]string, 0, len(violations))
				for _, v := range violations {
					msgs = append(msgs, v.String())
				}
				return fmt.Errorf("specification is invalid: %s", strings.Join(msgs, "; "))
			}

			res, err := scaffold.Materialize(s, outputDir)
			if err != nil {
				return err
			}
			for _, rel := range res.Created {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", rel)
			}
			for _, rel := range res.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %s (exists)\n", rel)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "output", "directory to materialize the project under")
	return cmd
}
