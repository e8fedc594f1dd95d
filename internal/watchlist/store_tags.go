package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const tagColumns = "id, name, color"

func scanTag(scanner interface{ Scan(dest ...any) error }) (*Tag, error) {
	var tag Tag
	if err := scanner.Scan(&tag.ID, &tag.Name, &tag.Color); err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag inserts a new tag. Names are unique case-insensitively; a clash
// surfaces as ErrDuplicate.
func (s *Store) CreateTag(ctx context.Context, name, color string) (*Tag, error) {
	ctx = ensureContext(ctx)
	res, err := s.execWithRetry(ctx, `INSERT INTO tags (name, color) VALUES (?, ?)`, name, color)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert tag: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &Tag{ID: id, Name: name, Color: color}, nil
}

// UpdateTag persists a tag rename or recolor. Returns false when the tag does
// not exist; a name clash surfaces as ErrDuplicate.
func (s *Store) UpdateTag(ctx context.Context, tag *Tag) (bool, error) {
	if tag == nil {
		return false, errors.New("tag is nil")
	}
	res, err := s.execWithRetry(ctx, `UPDATE tags SET name = ?, color = ? WHERE id = ?`, tag.Name, tag.Color, tag.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicate
		}
		return false, fmt.Errorf("update tag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteTag removes a tag by identifier; entry links cascade.
func (s *Store) DeleteTag(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete tag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// TagByName resolves a tag case-insensitively, nil when absent.
func (s *Store) TagByName(ctx context.Context, name string) (*Tag, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE name = ? COLLATE NOCASE`, name)
	tag, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tag by name: %w", err)
	}
	return tag, nil
}

// ListTags returns every tag ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*Tag, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// SetEntryTags replaces the tag set for an entry. An empty id list clears it.
func (s *Store) SetEntryTags(ctx context.Context, entryID int64, tagIDs []int64) error {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tag tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, entryID); err != nil {
		return fmt.Errorf("clear tag links: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO entry_tags (entry_id, tag_id) VALUES (?, ?)`,
			entryID,
			tagID,
		); err != nil {
			return fmt.Errorf("link tag %d: %w", tagID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tag links: %w", err)
	}
	return nil
}

// TagsForEntry returns the tags attached to one entry ordered by name.
func (s *Store) TagsForEntry(ctx context.Context, entryID int64) ([]*Tag, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT t.id, t.name, t.color
         FROM tags t
         JOIN entry_tags et ON et.tag_id = t.id
         WHERE et.entry_id = ?
         ORDER BY t.name COLLATE NOCASE`,
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("tags for entry: %w", err)
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// TagsForEntries batch-loads tags for multiple entries so list rendering
// avoids one query per row.
func (s *Store) TagsForEntries(ctx context.Context, entryIDs []int64) (map[int64][]*Tag, error) {
	result := make(map[int64][]*Tag, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	ctx = ensureContext(ctx)

	args := make([]any, 0, len(entryIDs))
	for _, id := range entryIDs {
		args = append(args, id)
	}
	query := `SELECT et.entry_id, t.id, t.name, t.color
        FROM tags t
        JOIN entry_tags et ON et.tag_id = t.id
        WHERE et.entry_id IN (` + makePlaceholders(len(args)) + `)
        ORDER BY t.name COLLATE NOCASE`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tags for entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entryID int64
			tag     Tag
		)
		if err := rows.Scan(&entryID, &tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		tagCopy := tag
		result[entryID] = append(result[entryID], &tagCopy)
	}
	return result, rows.Err()
}
