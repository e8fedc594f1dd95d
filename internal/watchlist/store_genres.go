package watchlist

import (
	"context"
	"fmt"
	"strings"
)

// ReplaceEntryGenres replaces the genre set for an entry, creating genre rows
// by name as needed.
func (s *Store) ReplaceEntryGenres(ctx context.Context, entryID int64, names []string) error {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin genre tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := replaceGenreLinks(ctx, tx, entryID, names); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit genres: %w", err)
	}
	return nil
}

// ListGenres returns every genre attached to at least one entry, with entry
// counts, ordered by name.
func (s *Store) ListGenres(ctx context.Context) ([]GenreCount, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT g.name, COUNT(*) AS count
         FROM genres g
         JOIN entry_genres eg ON eg.genre_id = g.id
         GROUP BY g.id
         ORDER BY g.name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	var genres []GenreCount
	for rows.Next() {
		var gc GenreCount
		if err := rows.Scan(&gc.Name, &gc.Count); err != nil {
			return nil, err
		}
		genres = append(genres, gc)
	}
	return genres, rows.Err()
}

// attachGenres loads genre names for the given entries in one query.
func (s *Store) attachGenres(ctx context.Context, entries []*Entry) error {
	if len(entries) == 0 {
		return nil
	}
	args := make([]any, 0, len(entries))
	byID := make(map[int64]*Entry, len(entries))
	for _, entry := range entries {
		args = append(args, entry.ID)
		byID[entry.ID] = entry
	}

	query := `SELECT eg.entry_id, g.name
        FROM entry_genres eg
        JOIN genres g ON g.id = eg.genre_id
        WHERE eg.entry_id IN (` + makePlaceholders(len(args)) + `)
        ORDER BY g.name`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("load genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entryID int64
			name    string
		)
		if err := rows.Scan(&entryID, &name); err != nil {
			return err
		}
		if entry, ok := byID[entryID]; ok {
			entry.Genres = append(entry.Genres, name)
		}
	}
	return rows.Err()
}

func replaceGenreLinks(ctx context.Context, q dbtx, entryID int64, names []string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM entry_genres WHERE entry_id = ?`, entryID); err != nil {
		return fmt.Errorf("clear genre links: %w", err)
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		genreID, err := ensureGenre(ctx, q, name)
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO entry_genres (entry_id, genre_id) VALUES (?, ?)`,
			entryID,
			genreID,
		); err != nil {
			return fmt.Errorf("link genre %q: %w", name, err)
		}
	}
	return nil
}

func ensureGenre(ctx context.Context, q dbtx, name string) (int64, error) {
	if _, err := q.ExecContext(ctx, `INSERT OR IGNORE INTO genres (name) VALUES (?)`, name); err != nil {
		return 0, fmt.Errorf("ensure genre %q: %w", name, err)
	}
	var id int64
	if err := q.QueryRowContext(ctx, `SELECT id FROM genres WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("resolve genre %q: %w", name, err)
	}
	return id, nil
}
