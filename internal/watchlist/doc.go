// Package watchlist persists tracked media entries in SQLite and exposes the
// queries the tracker service is built on.
//
// The Store manages the database connection, schema initialization, filtered
// list/random/search queries, the seen flag, and the tag and genre link
// tables. Uniqueness lives in the schema: one normalized title per media
// type, one TMDB id per media type, and case-insensitive tag names. Constraint
// violations surface as ErrDuplicate so callers can treat them as a non-fatal
// "already exists" condition.
//
// A file lock next to the database keeps a second process from opening the
// same watchlist concurrently; Open returns ErrLocked instead of blocking.
//
// Treat this package as the single source of truth for watchlist semantics;
// when you add new columns, update schema.sql and bump schemaVersion.
package watchlist
