package watchlist

import (
	"strings"
	"time"
)

// MediaType identifies the kind of media an entry tracks.
type MediaType string

const (
	TypeMovie   MediaType = "movie"
	TypeShow    MediaType = "show"
	TypeYouTube MediaType = "youtube"
)

var allMediaTypes = []MediaType{TypeMovie, TypeShow, TypeYouTube}

var mediaTypeSet = func() map[MediaType]struct{} {
	set := make(map[MediaType]struct{}, len(allMediaTypes))
	for _, mediaType := range allMediaTypes {
		set[mediaType] = struct{}{}
	}
	return set
}()

// AllMediaTypes returns the ordered list of known media types.
func AllMediaTypes() []MediaType {
	cp := make([]MediaType, len(allMediaTypes))
	copy(cp, allMediaTypes)
	return cp
}

// ParseMediaType converts a string into a known MediaType.
func ParseMediaType(value string) (MediaType, bool) {
	normalized := MediaType(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := mediaTypeSet[normalized]
	return normalized, ok
}

// Sort selects the ordering applied to list queries.
type Sort string

const (
	SortUpdated     Sort = "updated"
	SortTitle       Sort = "title"
	SortRuntime     Sort = "runtime"
	SortRuntimeDesc Sort = "runtime-desc"
)

// ParseSort converts a string into a known Sort. Empty input selects the
// default most-recently-updated ordering.
func ParseSort(value string) (Sort, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(SortUpdated):
		return SortUpdated, true
	case string(SortTitle):
		return SortTitle, true
	case string(SortRuntime):
		return SortRuntime, true
	case string(SortRuntimeDesc), "-runtime":
		return SortRuntimeDesc, true
	default:
		return "", false
	}
}

// DefaultListLimit caps list and search queries when the caller does not
// choose a limit.
const DefaultListLimit = 200

// Entry represents a tracked media item persisted in SQLite.
type Entry struct {
	ID             int64
	Title          string
	TitleNorm      string
	Type           MediaType
	Seen           bool
	TMDBID         int64 // 0 for manually added entries
	Year           int
	RuntimeMinutes int // 0 when unknown; stored as NULL
	Notes          string
	Genres         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FromLookup reports whether the entry carries an external metadata identifier.
func (e Entry) FromLookup() bool {
	return e.TMDBID > 0
}

// HasRuntime reports whether a runtime is recorded for the entry.
func (e Entry) HasRuntime() bool {
	return e.RuntimeMinutes > 0
}

// Tag is a user-defined label with a "#RRGGBB" display color.
type Tag struct {
	ID    int64
	Name  string
	Color string
}

// GenreCount pairs a genre name with the number of entries carrying it.
type GenreCount struct {
	Name  string
	Count int
}

// ListOptions filters and orders list queries. The zero value lists every
// entry with the default sort and limit.
type ListOptions struct {
	UnseenOnly bool
	Type       MediaType // empty matches all types
	Genre      string
	Tag        string
	Limit      int
	Sort       Sort
}

// Stats aggregates watchlist counts for status output.
type Stats struct {
	Entries int
	Seen    int
	Unseen  int
	ByType  map[MediaType]int
	Tags    int
	Genres  int
}

// DatabaseHealth captures diagnostic information about the watchlist database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    int
	TablesPresent    []string
	MissingTables    []string
	IntegrityCheck   bool
	TotalEntries     int
	Error            string
}
