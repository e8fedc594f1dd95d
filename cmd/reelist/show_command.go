package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelist/internal/tracker"
	"reelist/internal/watchlist"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parsePositiveIDs(args)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				entry, err := svc.Entry(runCtx, ids[0])
				if err != nil {
					return err
				}
				tags, err := svc.EntryTags(runCtx, entry.ID)
				if err != nil {
					return err
				}
				if jsonFlag {
					return writeJSON(cmd, toEntryJSON(entry, tags))
				}
				printEntryDetail(cmd, entry, tags)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of the detail view")
	return cmd
}

func printEntryDetail(cmd *cobra.Command, entry *watchlist.Entry, tags []*watchlist.Tag) {
	out := cmd.OutOrStdout()
	detail := func(label, value string) {
		fmt.Fprintf(out, "  %-9s %s\n", label+":", value)
	}

	fmt.Fprintf(out, "Entry #%d\n", entry.ID)
	detail("Title", decorateTitle(entry.Title, entry.Year))
	detail("Type", string(entry.Type))
	detail("Seen", yesNo(entry.Seen))
	detail("Runtime", formatRuntime(entry.RuntimeMinutes))
	if entry.FromLookup() {
		detail("TMDB ID", strconv.FormatInt(entry.TMDBID, 10))
	}
	detail("Genres", joinOrDash(entry.Genres))
	detail("Tags", joinOrDash(tagLabels(tags)))
	notes := entry.Notes
	if notes == "" {
		notes = "-"
	}
	detail("Notes", notes)
	detail("Added", formatTimestamp(entry.CreatedAt))
	detail("Updated", formatTimestamp(entry.UpdatedAt))
}

func tagLabels(tags []*watchlist.Tag) []string {
	labels := make([]string, 0, len(tags))
	for _, tag := range tags {
		labels = append(labels, fmt.Sprintf("%s (%s)", tag.Name, tag.Color))
	}
	return labels
}
