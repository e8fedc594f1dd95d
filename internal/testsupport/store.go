package testsupport

import (
	"context"
	"testing"

	"reelist/internal/config"
	"reelist/internal/textutil"
	"reelist/internal/watchlist"
)

// MustOpenStore opens a watchlist.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *watchlist.Store {
	t.Helper()

	store, err := watchlist.Open(cfg)
	if err != nil {
		t.Fatalf("watchlist.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewEntry creates a watchlist entry for tests using the provided store.
func NewEntry(t testing.TB, store *watchlist.Store, title string, mediaType watchlist.MediaType) *watchlist.Entry {
	t.Helper()

	entry, err := store.CreateEntry(context.Background(), &watchlist.Entry{
		Title:     title,
		TitleNorm: textutil.Normalize(title),
		Type:      mediaType,
	})
	if err != nil {
		t.Fatalf("store.CreateEntry: %v", err)
	}
	return entry
}
