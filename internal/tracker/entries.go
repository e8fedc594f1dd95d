package tracker

import (
	"context"
	"fmt"

	"reelist/internal/logging"
	"reelist/internal/services"
	"reelist/internal/textutil"
	"reelist/internal/watchlist"
)

// Entry fetches a single entry by identifier.
func (s *Service) Entry(ctx context.Context, id int64) (*watchlist.Entry, error) {
	entry, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFound("show", id)
	}
	return entry, nil
}

// List returns entries honoring the provided filters, applying the
// configured default limit when none is set.
func (s *Service) List(ctx context.Context, opts watchlist.ListOptions) ([]*watchlist.Entry, error) {
	if err := validateType(opts.Type, "list"); err != nil {
		return nil, err
	}
	if opts.Limit <= 0 {
		opts.Limit = s.listLimit()
	}
	return s.store.List(ctx, opts)
}

// RandomPick returns one random entry matching the filters, nil when
// nothing matches.
func (s *Service) RandomPick(ctx context.Context, opts watchlist.ListOptions) (*watchlist.Entry, error) {
	if err := validateType(opts.Type, "random"); err != nil {
		return nil, err
	}
	return s.store.RandomPick(ctx, opts)
}

// Search returns entries whose normalized title contains every normalized
// query word, most recently updated first. A query with no searchable words
// matches nothing.
func (s *Service) Search(ctx context.Context, query string) ([]*watchlist.Entry, error) {
	words := textutil.NormalizeWords(query)
	if len(words) == 0 {
		return nil, nil
	}
	return s.store.SearchTitles(ctx, words, s.listLimit())
}

// SetSeen flips the watched flag, bumping the entry's recency, and returns
// the updated entry.
func (s *Service) SetSeen(ctx context.Context, id int64, seen bool) (*watchlist.Entry, error) {
	ok, err := s.store.SetSeen(ctx, id, seen)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("seen", id)
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("seen flag updated",
		logging.Int64(logging.FieldEntryID, id),
		logging.Bool("seen", seen),
	)
	return s.store.GetByID(ctx, id)
}

// SetNotes replaces the entry's notes and returns the updated entry.
func (s *Service) SetNotes(ctx context.Context, id int64, notes string) (*watchlist.Entry, error) {
	ok, err := s.store.UpdateNotes(ctx, id, notes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("notes", id)
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("notes updated", logging.Int64(logging.FieldEntryID, id))
	return s.store.GetByID(ctx, id)
}

// Delete removes an entry; tag and genre links cascade.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("rm", id)
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("entry removed", logging.Int64(logging.FieldEntryID, id))
	return nil
}

// Genres returns genre names with the number of entries carrying each.
func (s *Service) Genres(ctx context.Context) ([]watchlist.GenreCount, error) {
	return s.store.ListGenres(ctx)
}

func notFound(operation string, id int64) error {
	return services.Wrap(services.ErrNotFound, component, operation, fmt.Sprintf("entry %d", id), nil)
}

func validateType(mediaType watchlist.MediaType, operation string) error {
	if mediaType == "" {
		return nil
	}
	if _, ok := watchlist.ParseMediaType(string(mediaType)); !ok {
		return services.Wrap(services.ErrValidation, component, operation, fmt.Sprintf("unknown media type %q", mediaType), nil)
	}
	return nil
}
