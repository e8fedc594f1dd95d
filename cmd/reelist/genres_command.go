package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelist/internal/tracker"
)

func newGenresCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List genres with entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				genres, err := svc.Genres(runCtx)
				if err != nil {
					return err
				}
				if len(genres) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No genres recorded")
					return nil
				}
				rows := make([][]string, 0, len(genres))
				for _, genre := range genres {
					rows = append(rows, []string{genre.Name, strconv.Itoa(genre.Count)})
				}
				table := renderTable([]string{"Genre", "Entries"}, rows, tableOptions{
					aligns: []columnAlignment{alignLeft, alignRight},
				})
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}
