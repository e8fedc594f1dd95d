package watchlist

import (
	"errors"
	"strings"
)

// ErrDuplicate reports an insert or update that violates a uniqueness
// constraint: a repeated (type, TMDB id) pair, a normalized title already
// tracked for the type, or a tag name differing only by case.
var ErrDuplicate = errors.New("already exists")

// ErrLocked reports that another process holds the watchlist database lock.
var ErrLocked = errors.New("watchlist database is locked by another process")

// isUniqueViolation detects SQLite uniqueness constraint failures. The
// modernc driver surfaces them as plain errors, so match on the message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
