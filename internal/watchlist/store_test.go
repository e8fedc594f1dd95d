package watchlist_test

import (
	"context"
	"errors"
	"testing"

	"reelist/internal/testsupport"
	"reelist/internal/textutil"
	"reelist/internal/watchlist"
)

func TestOpenCreatesSchemaAndAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	entry, err := store.CreateEntry(ctx, &watchlist.Entry{
		Title:          "The Matrix",
		TitleNorm:      textutil.Normalize("The Matrix"),
		Type:           watchlist.TypeMovie,
		TMDBID:         603,
		Year:           1999,
		RuntimeMinutes: 136,
		Notes:          "rewatch in 4k",
		Genres:         []string{"Science Fiction", "Action"},
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected entry ID to be assigned")
	}
	if entry.CreatedAt.IsZero() || entry.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set, got %#v", entry)
	}
	// The notes column arrives via migration, not the baseline schema.
	if entry.Notes != "rewatch in 4k" {
		t.Fatalf("expected notes to round-trip, got %q", entry.Notes)
	}
	if len(entry.Genres) != 2 || entry.Genres[0] != "Action" || entry.Genres[1] != "Science Fiction" {
		t.Fatalf("expected sorted genres, got %v", entry.Genres)
	}

	fetched, err := store.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil || fetched.Title != "The Matrix" || fetched.TMDBID != 603 {
		t.Fatalf("unexpected fetched entry: %#v", fetched)
	}
	if fetched.RuntimeMinutes != 136 || fetched.Year != 1999 {
		t.Fatalf("expected metadata to round-trip, got %#v", fetched)
	}

	missing, err := store.GetByID(ctx, entry.ID+100)
	if err != nil {
		t.Fatalf("GetByID for missing id failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing id, got %#v", missing)
	}
}

func TestOpenHoldsProcessLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustOpenStore(t, cfg)

	if _, err := watchlist.Open(cfg); !errors.Is(err, watchlist.ErrLocked) {
		t.Fatalf("expected ErrLocked for second open, got %v", err)
	}
}

func TestReopenKeepsExistingData(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	first, err := watchlist.Open(cfg)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	created := testsupport.NewEntry(t, first, "Alien", watchlist.TypeMovie)
	if err := first.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	second := testsupport.MustOpenStore(t, cfg)
	fetched, err := second.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID after reopen failed: %v", err)
	}
	if fetched == nil || fetched.Title != "Alien" {
		t.Fatalf("expected entry to survive reopen, got %#v", fetched)
	}
}

func TestCreateEntryRejectsInvalidInput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if _, err := store.CreateEntry(ctx, &watchlist.Entry{Title: "  ", TitleNorm: "", Type: watchlist.TypeMovie}); err == nil {
		t.Fatal("expected error for blank title")
	}
	if _, err := store.CreateEntry(ctx, &watchlist.Entry{Title: "Heat", TitleNorm: "heat", Type: "vinyl"}); err == nil {
		t.Fatal("expected error for unknown media type")
	}
}

func TestCreateEntryDuplicateNormalizedTitle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.NewEntry(t, store, "Seven", watchlist.TypeMovie)

	_, err := store.CreateEntry(ctx, &watchlist.Entry{
		Title:     "SEVEN!",
		TitleNorm: textutil.Normalize("SEVEN!"),
		Type:      watchlist.TypeMovie,
	})
	if !errors.Is(err, watchlist.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for same normalized title, got %v", err)
	}

	// The same title under a different media type is a distinct entry.
	if _, err := store.CreateEntry(ctx, &watchlist.Entry{
		Title:     "Seven",
		TitleNorm: textutil.Normalize("Seven"),
		Type:      watchlist.TypeShow,
	}); err != nil {
		t.Fatalf("expected same title under another type to insert, got %v", err)
	}
}

func TestCreateEntryDuplicateTMDBID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if _, err := store.CreateEntry(ctx, &watchlist.Entry{
		Title:     "Blade Runner",
		TitleNorm: textutil.Normalize("Blade Runner"),
		Type:      watchlist.TypeMovie,
		TMDBID:    78,
	}); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	_, err := store.CreateEntry(ctx, &watchlist.Entry{
		Title:     "Blade Runner Directors Cut",
		TitleNorm: textutil.Normalize("Blade Runner Directors Cut"),
		Type:      watchlist.TypeMovie,
		TMDBID:    78,
	})
	if !errors.Is(err, watchlist.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for same TMDB id, got %v", err)
	}

	// Manual entries carry no TMDB id; several of them must coexist.
	for _, title := range []string{"Home Movie One", "Home Movie Two"} {
		if _, err := store.CreateEntry(ctx, &watchlist.Entry{
			Title:     title,
			TitleNorm: textutil.Normalize(title),
			Type:      watchlist.TypeMovie,
		}); err != nil {
			t.Fatalf("manual entry %q failed: %v", title, err)
		}
	}
}

func TestFindByNormalizedTitle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	created := testsupport.NewEntry(t, store, "Léon: The Professional", watchlist.TypeMovie)

	found, err := store.FindByNormalizedTitle(ctx, watchlist.TypeMovie, textutil.Normalize("leon the professional"))
	if err != nil {
		t.Fatalf("FindByNormalizedTitle failed: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("expected to find inserted entry, got %#v", found)
	}

	absent, err := store.FindByNormalizedTitle(ctx, watchlist.TypeShow, textutil.Normalize("leon the professional"))
	if err != nil {
		t.Fatalf("FindByNormalizedTitle for other type failed: %v", err)
	}
	if absent != nil {
		t.Fatalf("expected nil for other media type, got %#v", absent)
	}
}

func TestListFilters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	movie, err := store.CreateEntry(ctx, &watchlist.Entry{
		Title:     "Dune",
		TitleNorm: textutil.Normalize("Dune"),
		Type:      watchlist.TypeMovie,
		Genres:    []string{"Science Fiction"},
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	showSeen, err := store.CreateEntry(ctx, &watchlist.Entry{
		Title:     "The Wire",
		TitleNorm: textutil.Normalize("The Wire"),
		Type:      watchlist.TypeShow,
		Seen:      true,
		Genres:    []string{"Crime", "Drama"},
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	video := testsupport.NewEntry(t, store, "Conference Talk", watchlist.TypeYouTube)

	tag, err := store.CreateTag(ctx, "weekend", "#00ff00")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := store.SetEntryTags(ctx, movie.ID, []int64{tag.ID}); err != nil {
		t.Fatalf("SetEntryTags failed: %v", err)
	}

	all, err := store.List(ctx, watchlist.ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	// Default order is most recently updated first.
	if all[0].ID != video.ID || all[2].ID != movie.ID {
		t.Fatalf("unexpected default order: %d,%d,%d", all[0].ID, all[1].ID, all[2].ID)
	}

	unseen, err := store.List(ctx, watchlist.ListOptions{UnseenOnly: true})
	if err != nil {
		t.Fatalf("List unseen failed: %v", err)
	}
	if len(unseen) != 2 {
		t.Fatalf("expected 2 unseen entries, got %d", len(unseen))
	}
	for _, entry := range unseen {
		if entry.ID == showSeen.ID {
			t.Fatal("seen entry leaked into unseen filter")
		}
	}

	shows, err := store.List(ctx, watchlist.ListOptions{Type: watchlist.TypeShow})
	if err != nil {
		t.Fatalf("List shows failed: %v", err)
	}
	if len(shows) != 1 || shows[0].ID != showSeen.ID {
		t.Fatalf("unexpected show filter result: %#v", shows)
	}

	drama, err := store.List(ctx, watchlist.ListOptions{Genre: "Drama"})
	if err != nil {
		t.Fatalf("List by genre failed: %v", err)
	}
	if len(drama) != 1 || drama[0].ID != showSeen.ID {
		t.Fatalf("unexpected genre filter result: %#v", drama)
	}

	tagged, err := store.List(ctx, watchlist.ListOptions{Tag: "WEEKEND"})
	if err != nil {
		t.Fatalf("List by tag failed: %v", err)
	}
	if len(tagged) != 1 || tagged[0].ID != movie.ID {
		t.Fatalf("expected tag filter to match case-insensitively, got %#v", tagged)
	}

	limited, err := store.List(ctx, watchlist.ListOptions{Limit: 2})
	if err != nil {
		t.Fatalf("List limited failed: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected limit to cap results, got %d", len(limited))
	}
}

func TestListSortModes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	type seed struct {
		title   string
		runtime int
	}
	for _, sd := range []seed{
		{"Zodiac", 157},
		{"arrival", 116},
		{"Backlog Mystery", 0},
	} {
		if _, err := store.CreateEntry(ctx, &watchlist.Entry{
			Title:          sd.title,
			TitleNorm:      textutil.Normalize(sd.title),
			Type:           watchlist.TypeMovie,
			RuntimeMinutes: sd.runtime,
		}); err != nil {
			t.Fatalf("CreateEntry %q failed: %v", sd.title, err)
		}
	}

	byTitle, err := store.List(ctx, watchlist.ListOptions{Sort: watchlist.SortTitle})
	if err != nil {
		t.Fatalf("List by title failed: %v", err)
	}
	if byTitle[0].Title != "arrival" || byTitle[1].Title != "Backlog Mystery" || byTitle[2].Title != "Zodiac" {
		t.Fatalf("unexpected title order: %q,%q,%q", byTitle[0].Title, byTitle[1].Title, byTitle[2].Title)
	}

	byRuntime, err := store.List(ctx, watchlist.ListOptions{Sort: watchlist.SortRuntime})
	if err != nil {
		t.Fatalf("List by runtime failed: %v", err)
	}
	if byRuntime[0].Title != "arrival" || byRuntime[1].Title != "Zodiac" {
		t.Fatalf("unexpected runtime order: %q,%q", byRuntime[0].Title, byRuntime[1].Title)
	}
	if byRuntime[2].Title != "Backlog Mystery" {
		t.Fatalf("expected unknown runtime last, got %q", byRuntime[2].Title)
	}

	byRuntimeDesc, err := store.List(ctx, watchlist.ListOptions{Sort: watchlist.SortRuntimeDesc})
	if err != nil {
		t.Fatalf("List by runtime desc failed: %v", err)
	}
	if byRuntimeDesc[0].Title != "Zodiac" || byRuntimeDesc[1].Title != "arrival" {
		t.Fatalf("unexpected runtime desc order: %q,%q", byRuntimeDesc[0].Title, byRuntimeDesc[1].Title)
	}
	if byRuntimeDesc[2].Title != "Backlog Mystery" {
		t.Fatalf("expected unknown runtime last in desc order, got %q", byRuntimeDesc[2].Title)
	}
}

func TestRandomPickHonorsFilters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	unseen := testsupport.NewEntry(t, store, "Stalker", watchlist.TypeMovie)
	if _, err := store.CreateEntry(ctx, &watchlist.Entry{
		Title:     "Solaris",
		TitleNorm: textutil.Normalize("Solaris"),
		Type:      watchlist.TypeMovie,
		Seen:      true,
	}); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		pick, err := store.RandomPick(ctx, watchlist.ListOptions{UnseenOnly: true})
		if err != nil {
			t.Fatalf("RandomPick failed: %v", err)
		}
		if pick == nil || pick.ID != unseen.ID {
			t.Fatalf("expected the only unseen entry, got %#v", pick)
		}
	}

	none, err := store.RandomPick(ctx, watchlist.ListOptions{Type: watchlist.TypeShow})
	if err != nil {
		t.Fatalf("RandomPick with empty result failed: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil when nothing matches, got %#v", none)
	}
}

func TestSearchTitlesMatchesAllWords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	matrix := testsupport.NewEntry(t, store, "The Matrix", watchlist.TypeMovie)
	reloaded := testsupport.NewEntry(t, store, "The Matrix Reloaded", watchlist.TypeMovie)
	testsupport.NewEntry(t, store, "Heat", watchlist.TypeMovie)

	both, err := store.SearchTitles(ctx, textutil.NormalizeWords("matrix"), 0)
	if err != nil {
		t.Fatalf("SearchTitles failed: %v", err)
	}
	if len(both) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(both))
	}
	// Most recently updated first.
	if both[0].ID != reloaded.ID || both[1].ID != matrix.ID {
		t.Fatalf("unexpected search order: %d,%d", both[0].ID, both[1].ID)
	}

	one, err := store.SearchTitles(ctx, textutil.NormalizeWords("Matrix RELOADED"), 0)
	if err != nil {
		t.Fatalf("SearchTitles failed: %v", err)
	}
	if len(one) != 1 || one[0].ID != reloaded.ID {
		t.Fatalf("expected words to AND together, got %#v", one)
	}

	empty, err := store.SearchTitles(ctx, nil, 0)
	if err != nil {
		t.Fatalf("SearchTitles with no words failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no results without words, got %d", len(empty))
	}
}

func TestSetSeenBumpsRecency(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	older := testsupport.NewEntry(t, store, "First Added", watchlist.TypeMovie)
	newer := testsupport.NewEntry(t, store, "Second Added", watchlist.TypeMovie)

	ok, err := store.SetSeen(ctx, older.ID, true)
	if err != nil {
		t.Fatalf("SetSeen failed: %v", err)
	}
	if !ok {
		t.Fatal("expected SetSeen to report an update")
	}

	updated, err := store.GetByID(ctx, older.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !updated.Seen {
		t.Fatal("expected entry to be marked seen")
	}
	if updated.UpdatedAt.Before(older.UpdatedAt) {
		t.Fatalf("expected updated_at to move forward, got %v -> %v", older.UpdatedAt, updated.UpdatedAt)
	}

	entries, err := store.List(ctx, watchlist.ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if entries[0].ID != older.ID || entries[1].ID != newer.ID {
		t.Fatalf("expected seen update to move entry to the top, got %d,%d", entries[0].ID, entries[1].ID)
	}

	ok, err = store.SetSeen(ctx, older.ID+100, true)
	if err != nil {
		t.Fatalf("SetSeen for missing id failed: %v", err)
	}
	if ok {
		t.Fatal("expected SetSeen to report no update for missing id")
	}
}

func TestUpdateNotes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	entry := testsupport.NewEntry(t, store, "Ran", watchlist.TypeMovie)

	ok, err := store.UpdateNotes(ctx, entry.ID, "recommended by Sam")
	if err != nil {
		t.Fatalf("UpdateNotes failed: %v", err)
	}
	if !ok {
		t.Fatal("expected UpdateNotes to report an update")
	}
	fetched, err := store.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Notes != "recommended by Sam" {
		t.Fatalf("unexpected notes: %q", fetched.Notes)
	}

	if _, err := store.UpdateNotes(ctx, entry.ID, "  "); err != nil {
		t.Fatalf("UpdateNotes clear failed: %v", err)
	}
	cleared, err := store.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if cleared.Notes != "" {
		t.Fatalf("expected notes cleared, got %q", cleared.Notes)
	}
}

func TestRemoveDeletesLinks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	entry, err := store.CreateEntry(ctx, &watchlist.Entry{
		Title:     "Chernobyl",
		TitleNorm: textutil.Normalize("Chernobyl"),
		Type:      watchlist.TypeShow,
		Genres:    []string{"Drama"},
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	tag, err := store.CreateTag(ctx, "miniseries", "#aa00aa")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := store.SetEntryTags(ctx, entry.ID, []int64{tag.ID}); err != nil {
		t.Fatalf("SetEntryTags failed: %v", err)
	}

	ok, err := store.Remove(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !ok {
		t.Fatal("expected Remove to report a deletion")
	}

	again, err := store.Remove(ctx, entry.ID)
	if err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}
	if again {
		t.Fatal("expected second Remove to report nothing deleted")
	}

	genres, err := store.ListGenres(ctx)
	if err != nil {
		t.Fatalf("ListGenres failed: %v", err)
	}
	if len(genres) != 0 {
		t.Fatalf("expected no attached genres after delete, got %v", genres)
	}

	// The tag itself survives; only the link is removed.
	tags, err := store.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "miniseries" {
		t.Fatalf("expected tag to survive entry delete, got %#v", tags)
	}
}
