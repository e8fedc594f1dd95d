// Package tracker implements the watchlist operations behind the CLI: the
// add flow with optional metadata lookup, listing, search, random picks,
// seen-state and notes updates, and tag and genre management.
//
// The service wraps the SQLite store, classifies failures through the
// internal/services markers, and talks to TMDB through the tmdb.Searcher
// interface so tests can inject stubs. A missing credential degrades the add
// flow to manual entry instead of failing.
package tracker
