package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CreateEntry inserts a new entry together with its genre links and returns
// the stored row. Uniqueness violations surface as ErrDuplicate.
func (s *Store) CreateEntry(ctx context.Context, entry *Entry) (*Entry, error) {
	if entry == nil {
		return nil, errors.New("entry is nil")
	}
	title := strings.TrimSpace(entry.Title)
	if title == "" || strings.TrimSpace(entry.TitleNorm) == "" {
		return nil, errors.New("entry title is empty")
	}
	if _, ok := ParseMediaType(string(entry.Type)); !ok {
		return nil, fmt.Errorf("unknown media type %q", entry.Type)
	}
	ctx = ensureContext(ctx)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO entries (
            title, title_norm, media_type, seen, tmdb_id, year,
            runtime_minutes, notes, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		title,
		entry.TitleNorm,
		string(entry.Type),
		boolToInt(entry.Seen),
		nullableInt64(entry.TMDBID),
		nullableInt(entry.Year),
		nullableInt(entry.RuntimeMinutes),
		nullableString(entry.Notes),
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := replaceGenreLinks(ctx, tx, id, entry.Genres); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches an entry by identifier, nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Entry, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if err := s.attachGenres(ctx, []*Entry{entry}); err != nil {
		return nil, err
	}
	return entry, nil
}

// FindByNormalizedTitle returns the entry of the given type whose normalized
// title matches, nil when absent.
func (s *Store) FindByNormalizedTitle(ctx context.Context, mediaType MediaType, titleNorm string) (*Entry, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+entryColumns+` FROM entries WHERE media_type = ? AND title_norm = ? LIMIT 1`,
		string(mediaType),
		titleNorm,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by normalized title: %w", err)
	}
	if err := s.attachGenres(ctx, []*Entry{entry}); err != nil {
		return nil, err
	}
	return entry, nil
}

// FindByTMDBID returns the entry of the given type sourced from the TMDB
// identifier, nil when absent.
func (s *Store) FindByTMDBID(ctx context.Context, mediaType MediaType, tmdbID int64) (*Entry, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+entryColumns+` FROM entries WHERE media_type = ? AND tmdb_id = ? LIMIT 1`,
		string(mediaType),
		tmdbID,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by tmdb id: %w", err)
	}
	if err := s.attachGenres(ctx, []*Entry{entry}); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns entries matching the provided filters in the requested order.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]*Entry, error) {
	ctx = ensureContext(ctx)
	joins, where, args := buildFilters(opts)
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	query := `SELECT DISTINCT ` + qualifiedEntryColumns + ` FROM entries e` + joins + where + orderClause(opts.Sort) + ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachGenres(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RandomPick returns one random entry honoring the same filters as List,
// nil when nothing matches.
func (s *Store) RandomPick(ctx context.Context, opts ListOptions) (*Entry, error) {
	ctx = ensureContext(ctx)
	joins, where, args := buildFilters(opts)
	query := `SELECT DISTINCT ` + qualifiedEntryColumns + ` FROM entries e` + joins + where + ` ORDER BY RANDOM() LIMIT 1`
	row := s.db.QueryRowContext(ctx, query, args...)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("random pick: %w", err)
	}
	if err := s.attachGenres(ctx, []*Entry{entry}); err != nil {
		return nil, err
	}
	return entry, nil
}

// SearchTitles returns entries whose normalized title contains every provided
// word, most recently updated first. Words must already be normalized.
func (s *Store) SearchTitles(ctx context.Context, words []string, limit int) ([]*Entry, error) {
	if len(words) == 0 {
		return nil, nil
	}
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = DefaultListLimit
	}

	clauses := make([]string, 0, len(words))
	args := make([]any, 0, len(words)+1)
	for _, word := range words {
		clauses = append(clauses, "title_norm LIKE ?")
		args = append(args, "%"+word+"%")
	}
	args = append(args, limit)

	query := `SELECT ` + entryColumns + ` FROM entries WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY updated_at DESC, id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search titles: %w", err)
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachGenres(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetSeen flips the watched flag and bumps updated_at. Tag and genre links
// are left untouched. Returns false when no entry has the identifier.
func (s *Store) SetSeen(ctx context.Context, id int64, seen bool) (bool, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE entries SET seen = ?, updated_at = ? WHERE id = ?`,
		boolToInt(seen),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("set seen: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// UpdateNotes replaces the free-form notes for an entry.
func (s *Store) UpdateNotes(ctx context.Context, id int64, notes string) (bool, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE entries SET notes = ?, updated_at = ? WHERE id = ?`,
		nullableString(strings.TrimSpace(notes)),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("update notes: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Remove deletes an entry by identifier; tag and genre links cascade.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func buildFilters(opts ListOptions) (joins, where string, args []any) {
	clauses := make([]string, 0, 4)
	if opts.UnseenOnly {
		clauses = append(clauses, "e.seen = 0")
	}
	if opts.Type != "" {
		clauses = append(clauses, "e.media_type = ?")
		args = append(args, string(opts.Type))
	}
	if opts.Genre != "" {
		joins += ` JOIN entry_genres eg ON eg.entry_id = e.id JOIN genres g ON g.id = eg.genre_id`
		clauses = append(clauses, "g.name = ? COLLATE NOCASE")
		args = append(args, opts.Genre)
	}
	if opts.Tag != "" {
		joins += ` JOIN entry_tags et ON et.entry_id = e.id JOIN tags t ON t.id = et.tag_id`
		clauses = append(clauses, "t.name = ? COLLATE NOCASE")
		args = append(args, opts.Tag)
	}
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}
	return joins, where, args
}

func orderClause(sort Sort) string {
	switch sort {
	case SortTitle:
		return ` ORDER BY e.title COLLATE NOCASE ASC`
	case SortRuntime:
		// Unknown runtimes sort last in both directions.
		return ` ORDER BY e.runtime_minutes IS NULL, e.runtime_minutes ASC, e.title COLLATE NOCASE ASC`
	case SortRuntimeDesc:
		return ` ORDER BY e.runtime_minutes IS NULL, e.runtime_minutes DESC, e.title COLLATE NOCASE ASC`
	default:
		return ` ORDER BY e.updated_at DESC, e.id DESC`
	}
}
