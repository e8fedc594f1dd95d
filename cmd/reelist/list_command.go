package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelist/internal/tracker"
	"reelist/internal/watchlist"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		unseenFlag bool
		typeFlag   string
		genreFlag  string
		tagFlag    string
		limitFlag  int
		sortFlag   string
		jsonFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List watchlist entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildListOptions(unseenFlag, typeFlag, genreFlag, tagFlag, limitFlag, sortFlag)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				entries, err := svc.List(runCtx, opts)
				if err != nil {
					return err
				}
				return renderEntries(cmd, ctx, runCtx, svc, entries, jsonFlag, "Watchlist is empty")
			})
		},
	}

	cmd.Flags().BoolVarP(&unseenFlag, "unseen", "u", false, "Only entries not marked seen")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Filter by media type: movie, show, or youtube")
	cmd.Flags().StringVarP(&genreFlag, "genre", "g", "", "Filter by genre name")
	cmd.Flags().StringVar(&tagFlag, "tag", "", "Filter by tag name")
	cmd.Flags().IntVarP(&limitFlag, "limit", "l", 0, "Maximum entries to show (0 uses the configured default)")
	cmd.Flags().StringVarP(&sortFlag, "sort", "s", "", "Sort order: updated, title, runtime, or -runtime")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of a table")

	return cmd
}

func buildListOptions(unseen bool, typeValue, genre, tag string, limit int, sortValue string) (watchlist.ListOptions, error) {
	mediaType, err := parseTypeFlag(typeValue)
	if err != nil {
		return watchlist.ListOptions{}, err
	}
	sort, ok := watchlist.ParseSort(sortValue)
	if !ok {
		return watchlist.ListOptions{}, fmt.Errorf("unknown sort %q (updated, title, runtime, -runtime)", sortValue)
	}
	return watchlist.ListOptions{
		UnseenOnly: unseen,
		Type:       mediaType,
		Genre:      strings.TrimSpace(genre),
		Tag:        strings.TrimSpace(tag),
		Limit:      limit,
		Sort:       sort,
	}, nil
}

// renderEntries prints entries as a table or JSON, batch-loading tags so
// every row can show and color by its labels.
func renderEntries(cmd *cobra.Command, cliCtx *commandContext, ctx context.Context, svc *tracker.Service, entries []*watchlist.Entry, asJSON bool, emptyMessage string) error {
	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	tagsByEntry, err := svc.TagsForEntries(ctx, ids)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd, toEntryJSONList(entries, tagsByEntry))
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), emptyMessage)
		return nil
	}
	colorize := colorEnabled(cliCtx.configValue(), cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), renderEntryTable(entries, tagsByEntry, colorize))
	return nil
}
