package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"reelist/internal/tracker"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search tracked titles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				entries, err := svc.Search(runCtx, query)
				if err != nil {
					return err
				}
				return renderEntries(cmd, ctx, runCtx, svc, entries, jsonFlag, "No matches")
			})
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of a table")
	return cmd
}
