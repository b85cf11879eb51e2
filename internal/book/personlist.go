package book

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/tallybook/tallybook-cli/internal/model"
)

// PersonList is an ordered collection of contacts with no two entries
// equivalent under model.Person.Same. Insertion order is the display order.
// Uniqueness is checked by linear scan at the point of insertion: the
// equivalence predicate is an attribute subset, not structural equality, and
// at address-book scale a hash index buys nothing.
type PersonList struct {
	entries []*model.Person
}

// Add appends p to the end of the list.
// Returns ErrDuplicatePerson if an equivalent contact already exists.
func (l *PersonList) Add(p *model.Person) error {
	if l.IndexOf(p) >= 0 {
		return ErrDuplicatePerson
	}
	l.entries = append(l.entries, p.Clone())
	return nil
}

// Insert places p at position i, shifting later entries right. Used by bulk
// loads that must reproduce a stored order exactly.
func (l *PersonList) Insert(i int, p *model.Person) error {
	if l.IndexOf(p) >= 0 {
		return ErrDuplicatePerson
	}
	if i < 0 || i > len(l.entries) {
		return fmt.Errorf("insert position %d out of range [0,%d]", i, len(l.entries))
	}
	l.entries = slices.Insert(l.entries, i, p.Clone())
	return nil
}

// Remove deletes the first entry equivalent to p.
// Returns ErrPersonNotFound if there is none.
func (l *PersonList) Remove(p *model.Person) error {
	i := l.IndexOf(p)
	if i < 0 {
		return ErrPersonNotFound
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	return nil
}

// Replace swaps the entry equivalent to target for replacement, keeping its
// position. The duplicate check runs before any mutation: replacement may
// collide with target itself (an edit that keeps the identity fields) but
// not with any other entry.
func (l *PersonList) Replace(target, replacement *model.Person) error {
	i := l.IndexOf(target)
	if i < 0 {
		return ErrPersonNotFound
	}
	if j := l.IndexOf(replacement); j >= 0 && j != i {
		return ErrDuplicatePerson
	}
	l.entries[i] = replacement.Clone()
	return nil
}

// Update applies fn to the entry at index i in place. The entry's position
// never changes, so flag flips and debt changes cannot disturb display
// order. fn receives a clone; the modified clone replaces the original only
// if its identity fields still match (callers that change identity fields
// must go through Replace).
func (l *PersonList) Update(i int, fn func(*model.Person)) error {
	if i < 0 || i >= len(l.entries) {
		return ErrPersonNotFound
	}
	c := l.entries[i].Clone()
	fn(c)
	l.entries[i] = c
	return nil
}

// IndexOf returns the position of the entry equivalent to p, or -1.
func (l *PersonList) IndexOf(p *model.Person) int {
	return slices.IndexFunc(l.entries, func(e *model.Person) bool { return e.Same(p) })
}

// At returns a copy of the entry at index i.
func (l *PersonList) At(i int) (*model.Person, error) {
	if i < 0 || i >= len(l.entries) {
		return nil, ErrPersonNotFound
	}
	return l.entries[i].Clone(), nil
}

// Set replaces the whole contents. The input is validated for internal
// duplicates before any mutation; on error the list is unchanged.
func (l *PersonList) Set(persons []*model.Person) error {
	for i, p := range persons {
		for _, q := range persons[i+1:] {
			if p.Same(q) {
				return ErrDuplicatePerson
			}
		}
	}
	entries := make([]*model.Person, 0, len(persons))
	for _, p := range persons {
		entries = append(entries, p.Clone())
	}
	l.entries = entries
	return nil
}

// Persons returns the entries as a fresh slice of copies, in display order.
// The view is a snapshot: it does not track later mutations.
func (l *PersonList) Persons() []*model.Person {
	out := make([]*model.Person, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.Clone())
	}
	return out
}

func (l *PersonList) Len() int { return len(l.entries) }

// SortBy reorders the list by "name" (case-insensitive lexicographic) or
// "debt" (largest first). Any other field is rejected.
func (l *PersonList) SortBy(field string) error {
	switch field {
	case "name":
		slices.SortStableFunc(l.entries, func(a, b *model.Person) int {
			return cmp.Compare(strings.ToLower(string(a.Name)), strings.ToLower(string(b.Name)))
		})
	case "debt":
		slices.SortStableFunc(l.entries, func(a, b *model.Person) int {
			return cmp.Compare(b.Debt.Cents(), a.Debt.Cents())
		})
	default:
		return fmt.Errorf("cannot sort by %q: valid orderings are \"name\" and \"debt\"", field)
	}
	return nil
}

// Equal is order-sensitive full equality.
func (l *PersonList) Equal(other *PersonList) bool {
	return slices.EqualFunc(l.entries, other.entries, func(a, b *model.Person) bool {
		return a.Equal(b)
	})
}
