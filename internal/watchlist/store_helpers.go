package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

const entryColumns = "id, title, title_norm, media_type, seen, tmdb_id, year, runtime_minutes, notes, created_at, updated_at"

// qualifiedEntryColumns prefixes every entry column with the "e" alias used by
// queries that join through the link tables.
var qualifiedEntryColumns = func() string {
	cols := strings.Split(entryColumns, ", ")
	for i, col := range cols {
		cols[i] = "e." + col
	}
	return strings.Join(cols, ", ")
}()

// dbtx is satisfied by both *sql.DB and *sql.Tx so genre helpers can run
// inside or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id         int64
		title      string
		titleNorm  string
		mediaType  string
		seen       sql.NullInt64
		tmdbID     sql.NullInt64
		year       sql.NullInt64
		runtime    sql.NullInt64
		notes      sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&title,
		&titleNorm,
		&mediaType,
		&seen,
		&tmdbID,
		&year,
		&runtime,
		&notes,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:        id,
		Title:     title,
		TitleNorm: titleNorm,
		Type:      MediaType(mediaType),
		Notes:     notes.String,
	}
	if seen.Valid {
		entry.Seen = seen.Int64 != 0
	}
	if tmdbID.Valid {
		entry.TMDBID = tmdbID.Int64
	}
	if year.Valid {
		entry.Year = int(year.Int64)
	}
	if runtime.Valid {
		entry.RuntimeMinutes = int(runtime.Int64)
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		entry.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		entry.UpdatedAt = updated
	}
	return entry, nil
}

func collectEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt64(value int64) any {
	if value <= 0 {
		return nil
	}
	return value
}

func nullableInt(value int) any {
	if value <= 0 {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
