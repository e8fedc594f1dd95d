package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"reelist/internal/logging"
	"reelist/internal/services"
	"reelist/internal/textutil"
	"reelist/internal/tmdb"
	"reelist/internal/watchlist"
)

const (
	// maxCandidates caps the merged candidate list offered to the user.
	maxCandidates = 8
	// perSourceCap limits how many raw results each search contributes
	// before ranking.
	perSourceCap = 10
)

// Candidate is one ranked metadata match offered during the add flow.
type Candidate struct {
	TMDBID     int64
	Title      string
	Type       watchlist.MediaType
	Year       int
	Overview   string
	Genres     []string
	Popularity float64
	VoteCount  int64
}

// AddStart reports the outcome of the lookup phase of the add flow: either
// the entry that already tracks the title, or ranked candidates to choose
// from.
type AddStart struct {
	Existing   *watchlist.Entry
	Candidates []Candidate
}

// ManualOptions carries the optional fields of a manual entry.
type ManualOptions struct {
	Year    int
	Runtime int
	Notes   string
	Seen    bool
}

// StartAdd begins the add flow: it rejects empty titles, reports a duplicate
// when the normalized title is already tracked, and otherwise returns ranked
// metadata candidates. A positive year narrows the search.
func (s *Service) StartAdd(ctx context.Context, title string, typeHint watchlist.MediaType, year int) (*AddStart, error) {
	trimmed := strings.TrimSpace(title)
	norm := textutil.Normalize(trimmed)
	if norm == "" {
		return nil, services.Wrap(services.ErrValidation, component, "add", "title is required", nil)
	}
	if typeHint != "" {
		if _, ok := watchlist.ParseMediaType(string(typeHint)); !ok {
			return nil, services.Wrap(services.ErrValidation, component, "add", fmt.Sprintf("unknown media type %q", typeHint), nil)
		}
	}

	existing, err := s.findTracked(ctx, typeHint, norm)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &AddStart{Existing: existing}, duplicateErr(existing)
	}

	if typeHint == watchlist.TypeYouTube {
		return nil, services.Wrap(ErrLookupUnavailable, component, "lookup", "youtube entries are added manually", nil)
	}
	if s.searcher == nil {
		return nil, services.Wrap(ErrLookupUnavailable, component, "lookup", "no TMDB token configured", nil)
	}

	opts := tmdb.SearchOptions{Year: year}
	var candidates []Candidate
	if typeHint == "" || typeHint == watchlist.TypeMovie {
		resp, err := s.searcher.SearchMovie(ctx, trimmed, opts)
		if err != nil {
			return nil, services.Wrap(ErrLookupUnavailable, component, "lookup", "movie search failed", err)
		}
		candidates = appendCandidates(candidates, resp, watchlist.TypeMovie)
	}
	if typeHint == "" || typeHint == watchlist.TypeShow {
		resp, err := s.searcher.SearchTV(ctx, trimmed, opts)
		if err != nil {
			return nil, services.Wrap(ErrLookupUnavailable, component, "lookup", "tv search failed", err)
		}
		candidates = appendCandidates(candidates, resp, watchlist.TypeShow)
	}

	candidates = rankCandidates(candidates)
	logger := logging.WithContext(ctx, s.logger)
	logger.Debug("metadata search finished",
		logging.String("query", trimmed),
		logging.Int("candidates", len(candidates)),
	)
	return &AddStart{Candidates: candidates}, nil
}

// ConfirmAdd fetches full details for the chosen candidate and inserts the
// entry with its external identifier, year, runtime, and genres. When the
// title turns out to be tracked already, the existing entry is returned
// alongside a duplicate error.
func (s *Service) ConfirmAdd(ctx context.Context, candidate Candidate) (*watchlist.Entry, error) {
	if candidate.TMDBID <= 0 {
		return nil, services.Wrap(services.ErrValidation, component, "confirm", "candidate has no TMDB id", nil)
	}
	if s.searcher == nil {
		return nil, services.Wrap(ErrLookupUnavailable, component, "confirm", "no TMDB token configured", nil)
	}

	var (
		details *tmdb.Details
		err     error
	)
	switch candidate.Type {
	case watchlist.TypeMovie:
		details, err = s.searcher.MovieDetails(ctx, candidate.TMDBID)
	case watchlist.TypeShow:
		details, err = s.searcher.TVDetails(ctx, candidate.TMDBID)
	default:
		return nil, services.Wrap(services.ErrValidation, component, "confirm", fmt.Sprintf("cannot look up media type %q", candidate.Type), nil)
	}
	if err != nil {
		return nil, services.Wrap(ErrLookupUnavailable, component, "confirm", "details fetch failed", err)
	}

	title := strings.TrimSpace(details.DisplayTitle())
	if title == "" {
		title = strings.TrimSpace(candidate.Title)
	}
	norm := textutil.Normalize(title)
	if norm == "" {
		return nil, services.Wrap(services.ErrValidation, component, "confirm", "lookup returned an empty title", nil)
	}

	created, err := s.store.CreateEntry(ctx, &watchlist.Entry{
		Title:          title,
		TitleNorm:      norm,
		Type:           candidate.Type,
		TMDBID:         candidate.TMDBID,
		Year:           details.Year(),
		RuntimeMinutes: details.RuntimeMinutes(),
		Genres:         details.GenreNames(),
	})
	if errors.Is(err, watchlist.ErrDuplicate) {
		existing, findErr := s.resolveDuplicate(ctx, candidate.Type, candidate.TMDBID, norm)
		if findErr != nil {
			return nil, findErr
		}
		if existing != nil {
			return existing, duplicateErr(existing)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	logger := logging.WithContext(ctx, s.logger)
	logger.Info("entry added",
		logging.Int64(logging.FieldEntryID, created.ID),
		logging.String("title", created.Title),
		logging.String("media_type", string(created.Type)),
		logging.Int64("tmdb_id", created.TMDBID),
	)
	return created, nil
}

// AddManual inserts an entry without consulting the metadata service.
func (s *Service) AddManual(ctx context.Context, title string, mediaType watchlist.MediaType, opts ManualOptions) (*watchlist.Entry, error) {
	trimmed := strings.TrimSpace(title)
	norm := textutil.Normalize(trimmed)
	if norm == "" {
		return nil, services.Wrap(services.ErrValidation, component, "add", "title is required", nil)
	}
	if mediaType == "" {
		mediaType = watchlist.TypeMovie
	} else if _, ok := watchlist.ParseMediaType(string(mediaType)); !ok {
		return nil, services.Wrap(services.ErrValidation, component, "add", fmt.Sprintf("unknown media type %q", mediaType), nil)
	}
	if opts.Year < 0 || opts.Runtime < 0 {
		return nil, services.Wrap(services.ErrValidation, component, "add", "year and runtime cannot be negative", nil)
	}

	existing, err := s.store.FindByNormalizedTitle(ctx, mediaType, norm)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, duplicateErr(existing)
	}

	created, err := s.store.CreateEntry(ctx, &watchlist.Entry{
		Title:          trimmed,
		TitleNorm:      norm,
		Type:           mediaType,
		Seen:           opts.Seen,
		Year:           opts.Year,
		RuntimeMinutes: opts.Runtime,
		Notes:          strings.TrimSpace(opts.Notes),
	})
	if err != nil {
		return nil, err
	}

	logger := logging.WithContext(ctx, s.logger)
	logger.Info("entry added",
		logging.Int64(logging.FieldEntryID, created.ID),
		logging.String("title", created.Title),
		logging.String("media_type", string(created.Type)),
	)
	return created, nil
}

func (s *Service) findTracked(ctx context.Context, typeHint watchlist.MediaType, norm string) (*watchlist.Entry, error) {
	if typeHint != "" {
		return s.store.FindByNormalizedTitle(ctx, typeHint, norm)
	}
	for _, mediaType := range watchlist.AllMediaTypes() {
		entry, err := s.store.FindByNormalizedTitle(ctx, mediaType, norm)
		if err != nil || entry != nil {
			return entry, err
		}
	}
	return nil, nil
}

func (s *Service) resolveDuplicate(ctx context.Context, mediaType watchlist.MediaType, tmdbID int64, norm string) (*watchlist.Entry, error) {
	existing, err := s.store.FindByTMDBID(ctx, mediaType, tmdbID)
	if err != nil || existing != nil {
		return existing, err
	}
	return s.store.FindByNormalizedTitle(ctx, mediaType, norm)
}

func duplicateErr(entry *watchlist.Entry) error {
	return fmt.Errorf("%q (%s): %w", entry.Title, entry.Type, watchlist.ErrDuplicate)
}

func appendCandidates(dst []Candidate, resp *tmdb.Response, mediaType watchlist.MediaType) []Candidate {
	if resp == nil {
		return dst
	}
	results := resp.Results
	if len(results) > perSourceCap {
		results = results[:perSourceCap]
	}
	for _, result := range results {
		if result.ID <= 0 {
			continue
		}
		dst = append(dst, Candidate{
			TMDBID:     result.ID,
			Title:      strings.TrimSpace(result.DisplayTitle()),
			Type:       mediaType,
			Year:       result.Year(),
			Overview:   strings.TrimSpace(result.Overview),
			Genres:     tmdb.GenreNames(result.GenreIDs),
			Popularity: result.Popularity,
			VoteCount:  result.VoteCount,
		})
	}
	return dst
}

func rankCandidates(candidates []Candidate) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Popularity != candidates[j].Popularity {
			return candidates[i].Popularity > candidates[j].Popularity
		}
		return candidates[i].VoteCount > candidates[j].VoteCount
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}
