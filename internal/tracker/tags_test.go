package tracker_test

import (
	"context"
	"errors"
	"testing"

	"reelist/internal/services"
	"reelist/internal/testsupport"
	"reelist/internal/tracker"
	"reelist/internal/watchlist"
)

func TestCreateTagValidatesInput(t *testing.T) {
	svc, _ := newService(t, nil)

	tag, err := svc.CreateTag(context.Background(), "horror", "#ff0000")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if tag.Name != "horror" || tag.Color != "#ff0000" {
		t.Fatalf("unexpected tag: %#v", tag)
	}

	if _, err := svc.CreateTag(context.Background(), "", "#ff0000"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
	if _, err := svc.CreateTag(context.Background(), "noir", "red"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for bad color, got %v", err)
	}
	if _, err := svc.CreateTag(context.Background(), "HORROR", "#00ff00"); !errors.Is(err, watchlist.ErrDuplicate) {
		t.Fatalf("expected case-insensitive duplicate, got %v", err)
	}
}

func TestRenameTag(t *testing.T) {
	svc, _ := newService(t, nil)
	if _, err := svc.CreateTag(context.Background(), "horror", "#ff0000"); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if _, err := svc.CreateTag(context.Background(), "noir", "#222222"); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	renamed, err := svc.RenameTag(context.Background(), "horror", "slasher")
	if err != nil {
		t.Fatalf("RenameTag failed: %v", err)
	}
	if renamed.Name != "slasher" || renamed.Color != "#ff0000" {
		t.Fatalf("rename should keep the color: %#v", renamed)
	}

	if _, err := svc.RenameTag(context.Background(), "noir", "Slasher"); !errors.Is(err, watchlist.ErrDuplicate) {
		t.Fatalf("expected duplicate error on name clash, got %v", err)
	}
	if _, err := svc.RenameTag(context.Background(), "ghost", "spirit"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found for unknown tag, got %v", err)
	}
	if _, err := svc.RenameTag(context.Background(), "noir", "  "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for blank new name, got %v", err)
	}
}

func TestRecolorTag(t *testing.T) {
	svc, _ := newService(t, nil)
	if _, err := svc.CreateTag(context.Background(), "noir", "#222222"); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	tag, err := svc.RecolorTag(context.Background(), "noir", "#ABCDEF")
	if err != nil {
		t.Fatalf("RecolorTag failed: %v", err)
	}
	if tag.Color != "#ABCDEF" {
		t.Fatalf("unexpected color: %q", tag.Color)
	}

	if _, err := svc.RecolorTag(context.Background(), "noir", "#12"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for short hex, got %v", err)
	}
	if _, err := svc.RecolorTag(context.Background(), "ghost", "#112233"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found for unknown tag, got %v", err)
	}
}

func TestDeleteTagDetachesEntries(t *testing.T) {
	svc, store := newService(t, nil)
	entry := testsupport.NewEntry(t, store, "Heat", watchlist.TypeMovie)
	if _, err := svc.CreateTag(context.Background(), "crime", "#112233"); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := svc.SetEntryTags(context.Background(), entry.ID, []string{"crime"}); err != nil {
		t.Fatalf("SetEntryTags failed: %v", err)
	}

	if err := svc.DeleteTag(context.Background(), "crime"); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	tags, err := svc.EntryTags(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("EntryTags failed: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("expected tag links to cascade, got %v", tags)
	}
	if _, err := svc.Entry(context.Background(), entry.ID); err != nil {
		t.Fatalf("entry should survive tag deletion: %v", err)
	}
	if err := svc.DeleteTag(context.Background(), "crime"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found on second delete, got %v", err)
	}
}

func TestSetEntryTagsReplacesSet(t *testing.T) {
	svc, store := newService(t, nil)
	entry := testsupport.NewEntry(t, store, "Heat", watchlist.TypeMovie)
	for _, name := range []string{"crime", "drama", "slow"} {
		if _, err := svc.CreateTag(context.Background(), name, "#112233"); err != nil {
			t.Fatalf("CreateTag failed: %v", err)
		}
	}

	if err := svc.SetEntryTags(context.Background(), entry.ID, []string{"crime", "drama"}); err != nil {
		t.Fatalf("SetEntryTags failed: %v", err)
	}
	if err := svc.SetEntryTags(context.Background(), entry.ID, []string{"slow"}); err != nil {
		t.Fatalf("SetEntryTags failed: %v", err)
	}
	tags, err := svc.EntryTags(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("EntryTags failed: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "slow" {
		t.Fatalf("expected replacement semantics, got %v", tags)
	}

	if err := svc.SetEntryTags(context.Background(), entry.ID, []string{"ghost"}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found for unknown tag, got %v", err)
	}
	tags, _ = svc.EntryTags(context.Background(), entry.ID)
	if len(tags) != 1 {
		t.Fatalf("failed set must leave the tag set untouched, got %v", tags)
	}

	if err := svc.SetEntryTags(context.Background(), entry.ID, nil); err != nil {
		t.Fatalf("SetEntryTags failed: %v", err)
	}
	tags, _ = svc.EntryTags(context.Background(), entry.ID)
	if len(tags) != 0 {
		t.Fatalf("expected cleared tag set, got %v", tags)
	}

	if err := svc.SetEntryTags(context.Background(), 9999, []string{"crime"}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found for missing entry, got %v", err)
	}
}

func TestAttachTagsCreatesMissing(t *testing.T) {
	svc, store := newService(t, nil)
	entry := testsupport.NewEntry(t, store, "Heat", watchlist.TypeMovie)
	if _, err := svc.CreateTag(context.Background(), "classic", "#112233"); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := svc.SetEntryTags(context.Background(), entry.ID, []string{"classic"}); err != nil {
		t.Fatalf("SetEntryTags failed: %v", err)
	}

	if err := svc.AttachTags(context.Background(), entry.ID, []string{"noir", "classic"}); err != nil {
		t.Fatalf("AttachTags failed: %v", err)
	}
	tags, err := svc.EntryTags(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("EntryTags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected union of existing and new tags, got %v", tags)
	}
	byName := make(map[string]*watchlist.Tag, len(tags))
	for _, tag := range tags {
		byName[tag.Name] = tag
	}
	if byName["classic"] == nil || byName["classic"].Color != "#112233" {
		t.Fatalf("existing tag changed: %#v", byName["classic"])
	}
	if byName["noir"] == nil || byName["noir"].Color != tracker.DefaultTagColor {
		t.Fatalf("expected implicit tag with default color, got %#v", byName["noir"])
	}

	// Re-attaching is a no-op rather than a duplicate link.
	if err := svc.AttachTags(context.Background(), entry.ID, []string{"noir"}); err != nil {
		t.Fatalf("AttachTags failed: %v", err)
	}
	tags, _ = svc.EntryTags(context.Background(), entry.ID)
	if len(tags) != 2 {
		t.Fatalf("expected stable tag set, got %v", tags)
	}

	if err := svc.AttachTags(context.Background(), 9999, []string{"noir"}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found for missing entry, got %v", err)
	}
}
