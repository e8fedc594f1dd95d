package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reelist/internal/tracker"
	"reelist/internal/watchlist"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report database health and watchlist counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				health, healthErr := svc.Health(runCtx)
				stats, err := svc.Stats(runCtx)
				if err != nil {
					return err
				}
				if jsonFlag {
					return writeJSON(cmd, buildStatusJSON(health, stats, healthErr))
				}
				printStatus(cmd, ctx, health, stats, healthErr)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of the report")
	return cmd
}

type statusDatabaseJSON struct {
	Path           string   `json:"path"`
	Exists         bool     `json:"exists"`
	Readable       bool     `json:"readable"`
	SchemaVersion  int      `json:"schema_version"`
	IntegrityCheck bool     `json:"integrity_check"`
	TotalEntries   int      `json:"total_entries"`
	MissingTables  []string `json:"missing_tables,omitempty"`
	Error          string   `json:"error,omitempty"`
}

type statusJSON struct {
	Database         statusDatabaseJSON `json:"database"`
	Entries          int                `json:"entries"`
	Seen             int                `json:"seen"`
	Unseen           int                `json:"unseen"`
	ByType           map[string]int     `json:"by_type"`
	Tags             int                `json:"tags"`
	Genres           int                `json:"genres"`
	LookupConfigured bool               `json:"lookup_configured"`
}

func buildStatusJSON(health tracker.Health, stats watchlist.Stats, healthErr error) statusJSON {
	db := health.Database
	payload := statusJSON{
		Database: statusDatabaseJSON{
			Path:           db.DBPath,
			Exists:         db.DatabaseExists,
			Readable:       db.DatabaseReadable,
			SchemaVersion:  db.SchemaVersion,
			IntegrityCheck: db.IntegrityCheck,
			TotalEntries:   db.TotalEntries,
			MissingTables:  db.MissingTables,
			Error:          db.Error,
		},
		Entries:          stats.Entries,
		Seen:             stats.Seen,
		Unseen:           stats.Unseen,
		ByType:           make(map[string]int, len(stats.ByType)),
		Tags:             stats.Tags,
		Genres:           stats.Genres,
		LookupConfigured: health.LookupConfigured,
	}
	for mediaType, count := range stats.ByType {
		payload.ByType[string(mediaType)] = count
	}
	if healthErr != nil && payload.Database.Error == "" {
		payload.Database.Error = healthErr.Error()
	}
	return payload
}

func printStatus(cmd *cobra.Command, cliCtx *commandContext, health tracker.Health, stats watchlist.Stats, healthErr error) {
	out := cmd.OutOrStdout()
	colorize := colorEnabled(cliCtx.configValue(), out)
	db := health.Database

	for _, line := range renderSectionHeader("Database", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Path", statusInfo, db.DBPath, colorize))
	fmt.Fprintln(out, renderStatusLine("Schema", statusBool(db.DatabaseReadable), fmt.Sprintf("version %d", db.SchemaVersion), colorize))
	integrityKind := statusBool(db.IntegrityCheck)
	integrityMessage := ""
	if len(db.MissingTables) > 0 {
		integrityMessage = "missing tables: " + strings.Join(db.MissingTables, ", ")
	}
	fmt.Fprintln(out, renderStatusLine("Integrity", integrityKind, integrityMessage, colorize))
	if healthErr != nil {
		fmt.Fprintln(out, renderStatusLine("Check", statusError, healthErr.Error(), colorize))
	}

	fmt.Fprintln(out)
	for _, line := range renderSectionHeader("Watchlist", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Entries", statusInfo,
		fmt.Sprintf("%d total (%d seen, %d unseen)", stats.Entries, stats.Seen, stats.Unseen), colorize))
	for _, mediaType := range watchlist.AllMediaTypes() {
		fmt.Fprintln(out, renderStatusLine(mediaTypeLabel(mediaType), statusInfo, strconv.Itoa(stats.ByType[mediaType]), colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Tags", statusInfo, strconv.Itoa(stats.Tags), colorize))
	fmt.Fprintln(out, renderStatusLine("Genres", statusInfo, strconv.Itoa(stats.Genres), colorize))

	fmt.Fprintln(out)
	for _, line := range renderSectionHeader("Lookup", colorize) {
		fmt.Fprintln(out, line)
	}
	if health.LookupConfigured {
		fmt.Fprintln(out, renderStatusLine("TMDB", statusOK, "configured", colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("TMDB", statusWarn, "no token configured (set TMDB_TOKEN)", colorize))
	}
}

func mediaTypeLabel(mediaType watchlist.MediaType) string {
	switch mediaType {
	case watchlist.TypeMovie:
		return "Movies"
	case watchlist.TypeShow:
		return "Shows"
	case watchlist.TypeYouTube:
		return "YouTube"
	default:
		return string(mediaType)
	}
}
