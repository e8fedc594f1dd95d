package tracker

import (
	"context"

	"reelist/internal/watchlist"
)

// Health reports database diagnostics plus whether metadata lookup is
// configured.
type Health struct {
	Database         watchlist.DatabaseHealth
	LookupConfigured bool
}

// Stats surfaces aggregate watchlist counts.
func (s *Service) Stats(ctx context.Context) (watchlist.Stats, error) {
	return s.store.Stats(ctx)
}

// Health runs store diagnostics and reports lookup availability.
func (s *Service) Health(ctx context.Context) (Health, error) {
	db, err := s.store.CheckHealth(ctx)
	return Health{Database: db, LookupConfigured: s.LookupEnabled()}, err
}
