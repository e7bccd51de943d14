package main

import (
	"github.com/spf13/cobra"

	"spiritlog/internal/bgg"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch plays from BoardGameGeek and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, cfg, err := ctx.newClient(cmd)
			if err != nil {
				return err
			}
			opts := trackerOptions(cfg).Fetch
			if err := flags.apply(&opts); err != nil {
				return err
			}
			plays, err := client.FetchPlays(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if plays == nil {
				plays = []bgg.RawPlay{}
			}
			return writeJSON(cmd, plays)
		},
	}

	flags.register(cmd)
	return cmd
}
