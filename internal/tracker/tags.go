package tracker

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"reelist/internal/logging"
	"reelist/internal/services"
	"reelist/internal/watchlist"
)

// DefaultTagColor is applied when a tag is created implicitly while tagging
// an entry.
const DefaultTagColor = "#ffcc00"

var tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CreateTag adds a new label with a "#RRGGBB" display color.
func (s *Service) CreateTag(ctx context.Context, name, color string) (*watchlist.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, services.Wrap(services.ErrValidation, component, "tag add", "tag name is required", nil)
	}
	color = strings.TrimSpace(color)
	if !tagColorPattern.MatchString(color) {
		return nil, services.Wrap(services.ErrValidation, component, "tag add", fmt.Sprintf("color %q is not #RRGGBB", color), nil)
	}

	tag, err := s.store.CreateTag(ctx, name, color)
	if errors.Is(err, watchlist.ErrDuplicate) {
		return nil, fmt.Errorf("tag %q: %w", name, err)
	}
	if err != nil {
		return nil, err
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("tag created",
		logging.String("tag", tag.Name),
		logging.String("color", tag.Color),
	)
	return tag, nil
}

// RenameTag changes a tag's name, keeping its color.
func (s *Service) RenameTag(ctx context.Context, name, newName string) (*watchlist.Tag, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, services.Wrap(services.ErrValidation, component, "tag rename", "tag name is required", nil)
	}
	tag, err := s.resolveTag(ctx, name, "tag rename")
	if err != nil {
		return nil, err
	}

	tag.Name = newName
	ok, err := s.store.UpdateTag(ctx, tag)
	if errors.Is(err, watchlist.ErrDuplicate) {
		return nil, fmt.Errorf("tag %q: %w", newName, err)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tagNotFound("tag rename", name)
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("tag renamed",
		logging.String("tag", name),
		logging.String("new_name", newName),
	)
	return tag, nil
}

// RecolorTag changes a tag's display color.
func (s *Service) RecolorTag(ctx context.Context, name, color string) (*watchlist.Tag, error) {
	color = strings.TrimSpace(color)
	if !tagColorPattern.MatchString(color) {
		return nil, services.Wrap(services.ErrValidation, component, "tag color", fmt.Sprintf("color %q is not #RRGGBB", color), nil)
	}
	tag, err := s.resolveTag(ctx, name, "tag color")
	if err != nil {
		return nil, err
	}

	tag.Color = color
	ok, err := s.store.UpdateTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tagNotFound("tag color", name)
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("tag recolored",
		logging.String("tag", tag.Name),
		logging.String("color", color),
	)
	return tag, nil
}

// DeleteTag removes a tag; entry links cascade.
func (s *Service) DeleteTag(ctx context.Context, name string) error {
	tag, err := s.resolveTag(ctx, name, "tag rm")
	if err != nil {
		return err
	}
	ok, err := s.store.DeleteTag(ctx, tag.ID)
	if err != nil {
		return err
	}
	if !ok {
		return tagNotFound("tag rm", name)
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("tag removed", logging.String("tag", tag.Name))
	return nil
}

// Tags lists every tag ordered by name.
func (s *Service) Tags(ctx context.Context) ([]*watchlist.Tag, error) {
	return s.store.ListTags(ctx)
}

// SetEntryTags replaces the entry's tag set with the named tags. Every name
// must refer to an existing tag; an empty list clears the set.
func (s *Service) SetEntryTags(ctx context.Context, entryID int64, names []string) error {
	if _, err := s.Entry(ctx, entryID); err != nil {
		return err
	}
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		tag, err := s.resolveTag(ctx, name, "tag set")
		if err != nil {
			return err
		}
		ids = append(ids, tag.ID)
	}
	if err := s.store.SetEntryTags(ctx, entryID, ids); err != nil {
		return err
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("entry tags set",
		logging.Int64(logging.FieldEntryID, entryID),
		logging.Int("tags", len(ids)),
	)
	return nil
}

// AttachTags adds the named tags to the entry's existing set, creating
// missing tags with the default color. Used by the add flow's --tag flags.
func (s *Service) AttachTags(ctx context.Context, entryID int64, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if _, err := s.Entry(ctx, entryID); err != nil {
		return err
	}

	current, err := s.store.TagsForEntry(ctx, entryID)
	if err != nil {
		return err
	}
	ids := make([]int64, 0, len(current)+len(names))
	seen := make(map[int64]struct{}, len(current)+len(names))
	for _, tag := range current {
		ids = append(ids, tag.ID)
		seen[tag.ID] = struct{}{}
	}

	logger := logging.WithContext(ctx, s.logger)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return services.Wrap(services.ErrValidation, component, "tag", "tag name is required", nil)
		}
		tag, err := s.store.TagByName(ctx, name)
		if err != nil {
			return err
		}
		if tag == nil {
			tag, err = s.store.CreateTag(ctx, name, DefaultTagColor)
			if err != nil {
				return err
			}
			logger.Info("tag created",
				logging.String("tag", tag.Name),
				logging.String("color", tag.Color),
			)
		}
		if _, dup := seen[tag.ID]; dup {
			continue
		}
		ids = append(ids, tag.ID)
		seen[tag.ID] = struct{}{}
	}

	return s.store.SetEntryTags(ctx, entryID, ids)
}

// EntryTags returns the tags attached to one entry ordered by name.
func (s *Service) EntryTags(ctx context.Context, entryID int64) ([]*watchlist.Tag, error) {
	return s.store.TagsForEntry(ctx, entryID)
}

// TagsForEntries batch-loads tags for list rendering.
func (s *Service) TagsForEntries(ctx context.Context, entryIDs []int64) (map[int64][]*watchlist.Tag, error) {
	return s.store.TagsForEntries(ctx, entryIDs)
}

func (s *Service) resolveTag(ctx context.Context, name, operation string) (*watchlist.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, services.Wrap(services.ErrValidation, component, operation, "tag name is required", nil)
	}
	tag, err := s.store.TagByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, tagNotFound(operation, name)
	}
	return tag, nil
}

func tagNotFound(operation, name string) error {
	return services.Wrap(services.ErrNotFound, component, operation, fmt.Sprintf("tag %q", name), nil)
}
