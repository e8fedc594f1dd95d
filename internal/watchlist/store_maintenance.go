package watchlist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Stats aggregates entry, tag, and genre counts for status output.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	ctx = ensureContext(ctx)
	stats := Stats{ByType: make(map[MediaType]int)}

	rows, err := s.db.QueryContext(ctx, `SELECT media_type, seen, COUNT(1) FROM entries GROUP BY media_type, seen`)
	if err != nil {
		return Stats{}, fmt.Errorf("entry stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			mediaType string
			seen      int
			count     int
		)
		if err := rows.Scan(&mediaType, &seen, &count); err != nil {
			return Stats{}, err
		}
		stats.Entries += count
		stats.ByType[MediaType(mediaType)] += count
		if seen != 0 {
			stats.Seen += count
		} else {
			stats.Unseen += count
		}
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tags`).Scan(&stats.Tags); err != nil {
		return Stats{}, fmt.Errorf("tag stats: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM genres`).Scan(&stats.Genres); err != nil {
		return Stats{}, fmt.Errorf("genre stats: %w", err)
	}
	return stats, nil
}

// requiredTables is checked by CheckHealth; keep in sync with schema.sql.
var requiredTables = []string{"entries", "genres", "entry_genres", "tags", "entry_tags"}

// CheckHealth returns diagnostic information about the watchlist database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{
		DBPath:        s.path,
		SchemaVersion: schemaVersion,
	}

	if s.path == "" {
		return health, errors.New("watchlist database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			health.DatabaseExists = false
			return health, nil
		}
		return health, fmt.Errorf("stat watchlist database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("watchlist database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("watchlist database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ensureContext(ctx), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping watchlist database: %w", err)
	}
	health.DatabaseReadable = true

	rows, err := s.db.QueryContext(connCtx, "SELECT name FROM sqlite_master WHERE type = 'table'")
	if err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	present := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("scan table name: %w", err)
		}
		present[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("iterate tables: %w", err)
	}

	for _, table := range requiredTables {
		if _, ok := present[table]; ok {
			health.TablesPresent = append(health.TablesPresent, table)
		} else {
			health.MissingTables = append(health.MissingTables, table)
		}
	}

	if len(health.MissingTables) == 0 {
		row := s.db.QueryRowContext(connCtx, "SELECT COUNT(*) FROM entries")
		if err := row.Scan(&health.TotalEntries); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("count entries: %w", err)
		}
	}

	row := s.db.QueryRowContext(connCtx, "PRAGMA integrity_check")
	var integrityResult string
	if err := row.Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}
