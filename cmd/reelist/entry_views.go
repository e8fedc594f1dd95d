package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"reelist/internal/watchlist"
)

// decorateTitle appends the release year when known.
func decorateTitle(title string, year int) string {
	if year > 0 {
		return fmt.Sprintf("%s (%d)", title, year)
	}
	return title
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d min", minutes)
}

func formatTimestamp(ts time.Time) string {
	return ts.Local().Format("2006-01-02 15:04")
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func tagNames(tags []*watchlist.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

// entryRowColors picks the row color for one entry: seen rows render faint,
// unseen rows take the first tag color mapped to the nearest terminal color.
func entryRowColors(entry *watchlist.Entry, tags []*watchlist.Tag) text.Colors {
	if entry.Seen {
		return text.Colors{text.Faint}
	}
	for _, tag := range tags {
		if color, ok := nearestANSIColor(tag.Color); ok {
			return text.Colors{color}
		}
	}
	return nil
}

func renderEntryTable(entries []*watchlist.Entry, tagsByEntry map[int64][]*watchlist.Tag, colorize bool) string {
	rows := make([][]string, 0, len(entries))
	rowColors := make(map[string]text.Colors, len(entries))
	for _, entry := range entries {
		id := strconv.FormatInt(entry.ID, 10)
		tags := tagsByEntry[entry.ID]
		rows = append(rows, []string{
			id,
			decorateTitle(entry.Title, entry.Year),
			string(entry.Type),
			yesNo(entry.Seen),
			formatRuntime(entry.RuntimeMinutes),
			joinOrDash(entry.Genres),
			joinOrDash(tagNames(tags)),
		})
		if colorize {
			if colors := entryRowColors(entry, tags); colors != nil {
				rowColors[id] = colors
			}
		}
	}

	opts := tableOptions{
		aligns: []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	}
	if len(rowColors) > 0 {
		opts.painter = func(row table.Row) text.Colors {
			if len(row) == 0 {
				return nil
			}
			return rowColors[fmt.Sprint(row[0])]
		}
	}
	return renderTable([]string{"ID", "Title", "Type", "Seen", "Runtime", "Genres", "Tags"}, rows, opts)
}

type tagJSON struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type entryJSON struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Type           string    `json:"type"`
	Year           int       `json:"year,omitempty"`
	RuntimeMinutes int       `json:"runtime_minutes,omitempty"`
	Seen           bool      `json:"seen"`
	TMDBID         int64     `json:"tmdb_id,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Genres         []string  `json:"genres,omitempty"`
	Tags           []tagJSON `json:"tags,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toEntryJSON(entry *watchlist.Entry, tags []*watchlist.Tag) entryJSON {
	payload := entryJSON{
		ID:             entry.ID,
		Title:          entry.Title,
		Type:           string(entry.Type),
		Year:           entry.Year,
		RuntimeMinutes: entry.RuntimeMinutes,
		Seen:           entry.Seen,
		TMDBID:         entry.TMDBID,
		Notes:          entry.Notes,
		Genres:         entry.Genres,
		CreatedAt:      entry.CreatedAt,
		UpdatedAt:      entry.UpdatedAt,
	}
	for _, tag := range tags {
		payload.Tags = append(payload.Tags, tagJSON{Name: tag.Name, Color: tag.Color})
	}
	return payload
}

func toEntryJSONList(entries []*watchlist.Entry, tagsByEntry map[int64][]*watchlist.Tag) []entryJSON {
	payload := make([]entryJSON, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, toEntryJSON(entry, tagsByEntry[entry.ID]))
	}
	return payload
}
