package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"spiritlog/internal/tracker"
)

func newCoverageCommand(ctx *commandContext) *cobra.Command {
	var flags fetchFlags
	var jsonOutput bool
	var showRemaining bool

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Show how many spirits of each set every player has played",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, cfg, err := ctx.newTracker(cmd)
			if err != nil {
				return err
			}
			opts := trackerOptions(cfg)
			if err := flags.apply(&opts.Fetch); err != nil {
				return err
			}

			_, plays, catalogs, err := t.Collect(cmd.Context(), opts)
			if err != nil {
				return err
			}
			rows := tracker.Coverage(plays, catalogs.Spirits, opts.Synthetic)

			if jsonOutput {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Coverage as of %s\n", opts.Synthetic.Cutoff)
			if len(rows) == 0 {
				fmt.Fprintln(out, "No spirit sets configured")
				return nil
			}
			fmt.Fprintln(out, renderTable(coverageHeaders(showRemaining), coverageRows(rows, showRemaining), coverageAligns(showRemaining), shouldColorize(out)))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit coverage rows as JSON")
	cmd.Flags().BoolVar(&showRemaining, "remaining", false, "List the unplayed spirits of each row")
	return cmd
}

func coverageHeaders(showRemaining bool) []string {
	headers := []string{"Set", "Player", "Played", "Total", "Percent"}
	if showRemaining {
		headers = append(headers, "Remaining")
	}
	return headers
}

func coverageAligns(showRemaining bool) []columnAlignment {
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight}
	if showRemaining {
		aligns = append(aligns, alignLeft)
	}
	return aligns
}

func coverageRows(rows []tracker.CoverageRow, showRemaining bool) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := []string{
			row.Source,
			row.Player,
			strconv.Itoa(row.Played),
			strconv.Itoa(row.Total),
			percent(row.Played, row.Total),
		}
		if showRemaining {
			line = append(line, strings.Join(row.Remaining, ", "))
		}
		out = append(out, line)
	}
	return out
}

func percent(part, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", float64(part)*100/float64(total))
}
