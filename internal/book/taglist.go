package book

import (
	"slices"

	"github.com/tallybook/tallybook-cli/internal/model"
)

// TagList is the book's master tag registry: an ordered, duplicate-free list
// of canonical tag instances addressed by name. Contacts store tag names and
// resolve the canonical instance through Lookup, so "the same tag" is a
// shared registry entry rather than a fragile shared pointer.
type TagList struct {
	entries []model.Tag
}

// Add registers t. Returns ErrDuplicateTag if a tag with the same name
// already exists.
func (l *TagList) Add(t model.Tag) error {
	if l.Contains(t.Name) {
		return ErrDuplicateTag
	}
	l.entries = append(l.entries, t)
	return nil
}

// Remove deletes the tag with t's name.
// Returns ErrTagNotFound if there is none.
func (l *TagList) Remove(t model.Tag) error {
	i := slices.IndexFunc(l.entries, func(e model.Tag) bool { return e.Same(t) })
	if i < 0 {
		return ErrTagNotFound
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	return nil
}

// Merge adds every tag of other not already present. Duplicates are skipped
// silently: this is set union, not an error path.
func (l *TagList) Merge(other []model.Tag) {
	for _, t := range other {
		if !l.Contains(t.Name) {
			l.entries = append(l.entries, t)
		}
	}
}

// Set replaces the whole contents. The input is validated for internal
// duplicates before any mutation; on error the list is unchanged.
func (l *TagList) Set(tags []model.Tag) error {
	for i, t := range tags {
		for _, u := range tags[i+1:] {
			if t.Same(u) {
				return ErrDuplicateTag
			}
		}
	}
	l.entries = slices.Clone(tags)
	return nil
}

func (l *TagList) Contains(name string) bool {
	return slices.ContainsFunc(l.entries, func(e model.Tag) bool { return e.Name == name })
}

// Lookup returns the canonical instance for a tag name.
func (l *TagList) Lookup(name string) (model.Tag, bool) {
	for _, e := range l.entries {
		if e.Name == name {
			return e, true
		}
	}
	return model.Tag{}, false
}

// Tags returns the registry entries as a fresh slice, in insertion order.
func (l *TagList) Tags() []model.Tag {
	return slices.Clone(l.entries)
}

func (l *TagList) Len() int { return len(l.entries) }

// Equal disregards order: two registries are equal when they hold the same
// tag names.
func (l *TagList) Equal(other *TagList) bool {
	if len(l.entries) != len(other.entries) {
		return false
	}
	for _, t := range l.entries {
		if !other.Contains(t.Name) {
			return false
		}
	}
	return true
}
