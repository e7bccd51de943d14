package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spiritlog/internal/config"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var flags fetchFlags
	var outputPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch plays, append unplayed spirits and write the play list",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, cfg, err := ctx.newTracker(cmd)
			if err != nil {
				return err
			}
			opts := trackerOptions(cfg)
			if err := flags.apply(&opts.Fetch); err != nil {
				return err
			}
			if target := strings.TrimSpace(outputPath); target != "" {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				opts.OutputPath = expanded
			}

			result, err := t.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"run_id":    result.RunID,
					"fetched":   result.Fetched,
					"parsed":    result.Parsed,
					"skipped":   result.Skipped,
					"synthetic": result.Synthetic,
					"output":    result.OutputPath,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fetched %d plays (%d parsed, %d without comments)\n", result.Fetched, result.Parsed, result.Skipped)
			fmt.Fprintf(out, "Added %d unplayed-spirit records\n", result.Synthetic)
			fmt.Fprintf(out, "Wrote %s\n", result.OutputPath)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Override the output document path")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}
