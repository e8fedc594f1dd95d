package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"reelist/internal/tracker"
	"reelist/internal/watchlist"
)

func newRandomCommand(ctx *commandContext) *cobra.Command {
	var (
		typeFlag  string
		genreFlag string
		tagFlag   string
		allFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Pick a random entry to watch",
		Long: `Pick one random entry from the watchlist. Seen entries are skipped unless
--all is set; the type, genre, and tag filters work like they do for list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildListOptions(!allFlag, typeFlag, genreFlag, tagFlag, 0, "")
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				entry, err := svc.RandomPick(runCtx, opts)
				if err != nil {
					return err
				}
				if entry == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing matches; try --all or different filters.")
					return nil
				}
				return renderEntries(cmd, ctx, runCtx, svc, []*watchlist.Entry{entry}, false, "")
			})
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Filter by media type: movie, show, or youtube")
	cmd.Flags().StringVarP(&genreFlag, "genre", "g", "", "Filter by genre name")
	cmd.Flags().StringVar(&tagFlag, "tag", "", "Filter by tag name")
	cmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Include entries already seen")

	return cmd
}
