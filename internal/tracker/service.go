package tracker

import (
	"fmt"
	"log/slog"
	"time"

	"reelist/internal/config"
	"reelist/internal/logging"
	"reelist/internal/services"
	"reelist/internal/tmdb"
	"reelist/internal/watchlist"
)

const component = "tracker"

// ErrLookupUnavailable reports that metadata lookup cannot run, either
// because no credential is configured or because the metadata service
// failed. Callers fall back to manual entry.
var ErrLookupUnavailable = fmt.Errorf("metadata lookup unavailable: %w", services.ErrUnavailable)

// Service orchestrates watchlist operations on top of the store and the
// optional metadata searcher.
type Service struct {
	store    *watchlist.Store
	cfg      *config.Config
	logger   *slog.Logger
	searcher tmdb.Searcher
}

// New builds the service from config, constructing a TMDB client when a
// credential is configured. Lookup stays disabled otherwise.
func New(cfg *config.Config, store *watchlist.Store, logger *slog.Logger) *Service {
	var searcher tmdb.Searcher
	if cfg != nil && cfg.LookupEnabled() {
		client, err := tmdb.New(
			cfg.TMDB.Token,
			cfg.TMDB.BaseURL,
			cfg.TMDB.Language,
			tmdb.WithTimeout(time.Duration(cfg.TMDB.RequestTimeout)*time.Second),
		)
		if err != nil {
			logging.NewComponentLogger(logger, component).Warn("tmdb client initialization failed", logging.Error(err))
		} else {
			searcher = client
		}
	}
	return NewWithDependencies(cfg, store, logger, searcher)
}

// NewWithDependencies allows injecting the metadata searcher (used in tests).
func NewWithDependencies(cfg *config.Config, store *watchlist.Store, logger *slog.Logger, searcher tmdb.Searcher) *Service {
	return &Service{
		store:    store,
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, component),
		searcher: searcher,
	}
}

// LookupEnabled reports whether a metadata searcher is wired in.
func (s *Service) LookupEnabled() bool {
	return s.searcher != nil
}

func (s *Service) listLimit() int {
	if s.cfg != nil && s.cfg.UI.DefaultLimit > 0 {
		return s.cfg.UI.DefaultLimit
	}
	return watchlist.DefaultListLimit
}
