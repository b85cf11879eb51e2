// Package book holds the in-memory contact book: one ordered unique list of
// contacts plus the master tag registry, and the mutation API the command
// layer drives. The book is not safe for concurrent use; all mutations must
// run on one goroutine (the CLI is single-threaded by construction).
package book

import (
	"fmt"
	"slices"

	"github.com/tallybook/tallybook-cli/internal/model"
)

// Book owns the canonical contact list and tag registry and enforces the
// cross-cutting invariants: no two equivalent contacts, every tag name a
// contact references exists in the registry, and attribute mutations never
// change a contact's position. Tags left behind by removed contacts are
// tolerated; use RemoveTag to retire them.
type Book struct {
	persons PersonList
	tags    TagList
}

// Snapshot is a read-only, point-in-time copy of the book's state, used for
// persistence and bulk reset.
type Snapshot struct {
	Persons []*model.Person `json:"persons"`
	Tags    []model.Tag     `json:"tags"`
}

// New returns an empty book.
func New() *Book {
	return &Book{}
}

// NewFromSnapshot builds a book from a stored snapshot, re-running tag
// canonicalization over every imported contact. A duplicate inside the
// snapshot means the caller handed over corrupt data.
func NewFromSnapshot(s Snapshot) (*Book, error) {
	b := New()
	if err := b.Reset(s); err != nil {
		return nil, err
	}
	return b, nil
}

// AddPerson appends p to the book. The duplicate check runs before the tag
// registry is touched, so a failed add never registers new tags.
// Returns ErrDuplicatePerson if an equivalent contact exists.
func (b *Book) AddPerson(p *model.Person) error {
	if b.persons.IndexOf(p) >= 0 {
		return ErrDuplicatePerson
	}
	c := p.Clone()
	if err := b.syncTags(c); err != nil {
		return err
	}
	return b.persons.Add(c)
}

// UpdatePerson replaces target with edited at the same position.
// Returns ErrPersonNotFound if target is absent and ErrDuplicatePerson if
// edited collides with a contact other than target; both are checked before
// anything mutates.
func (b *Book) UpdatePerson(target, edited *model.Person) error {
	i := b.persons.IndexOf(target)
	if i < 0 {
		return ErrPersonNotFound
	}
	if j := b.persons.IndexOf(edited); j >= 0 && j != i {
		return ErrDuplicatePerson
	}
	c := edited.Clone()
	if err := b.syncTags(c); err != nil {
		return err
	}
	return b.persons.Replace(target, c)
}

// RemovePerson deletes the contact equivalent to key.
func (b *Book) RemovePerson(key *model.Person) error {
	return b.persons.Remove(key)
}

// SetBlacklisted flips the blacklist flag in place; the contact keeps its
// position in the display order.
func (b *Book) SetBlacklisted(target *model.Person, blacklisted bool) error {
	i := b.persons.IndexOf(target)
	if i < 0 {
		return ErrPersonNotFound
	}
	return b.persons.Update(i, func(p *model.Person) { p.Blacklisted = blacklisted })
}

// SetWhitelisted flips the whitelist flag in place; the contact keeps its
// position in the display order.
func (b *Book) SetWhitelisted(target *model.Person, whitelisted bool) error {
	i := b.persons.IndexOf(target)
	if i < 0 {
		return ErrPersonNotFound
	}
	return b.persons.Update(i, func(p *model.Person) { p.Whitelisted = whitelisted })
}

// AddDebt increases target's debt by amount. Negative amounts are not
// constructible: model.NewDebt rejects them before the book is reached.
func (b *Book) AddDebt(target *model.Person, amount model.Debt) error {
	i := b.persons.IndexOf(target)
	if i < 0 {
		return ErrPersonNotFound
	}
	return b.persons.Update(i, func(p *model.Person) { p.Debt = p.Debt.Plus(amount) })
}

// ResetDebt zeroes target's debt and returns the updated contact.
func (b *Book) ResetDebt(target *model.Person) (*model.Person, error) {
	i := b.persons.IndexOf(target)
	if i < 0 {
		return nil, ErrPersonNotFound
	}
	if err := b.persons.Update(i, func(p *model.Person) { p.Debt = model.DebtZero }); err != nil {
		return nil, err
	}
	return b.persons.At(i)
}

// AddTag registers t in the master tag list.
func (b *Book) AddTag(t model.Tag) error {
	return b.tags.Add(t)
}

// RemoveTag retires t from the master tag list and strips it from every
// contact referencing it, so no contact is left pointing at a tag the
// registry no longer knows.
func (b *Book) RemoveTag(t model.Tag) error {
	if err := b.tags.Remove(t); err != nil {
		return err
	}
	for i := 0; i < b.persons.Len(); i++ {
		_ = b.persons.Update(i, func(p *model.Person) {
			p.Tags = slices.DeleteFunc(p.Tags, func(name string) bool { return name == t.Name })
		})
	}
	return nil
}

// Persons returns the contacts in display order. The slice is a snapshot:
// call again after a mutation for fresh data.
func (b *Book) Persons() []*model.Person { return b.persons.Persons() }

// Tags returns the master tag list in insertion order.
func (b *Book) Tags() []model.Tag { return b.tags.Tags() }

// Lookup resolves a tag name to its canonical registry instance.
func (b *Book) Lookup(name string) (model.Tag, bool) { return b.tags.Lookup(name) }

// Blacklisted derives the blacklist view by scanning the full contact list.
// Computed on every call; O(n) is fine at this scale.
func (b *Book) Blacklisted() []*model.Person {
	return b.filter(func(p *model.Person) bool { return p.Blacklisted })
}

// Whitelisted derives the whitelist view by scanning the full contact list.
func (b *Book) Whitelisted() []*model.Person {
	return b.filter(func(p *model.Person) bool { return p.Whitelisted })
}

func (b *Book) filter(keep func(*model.Person) bool) []*model.Person {
	var out []*model.Person
	for _, p := range b.persons.Persons() {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// PersonAt returns the contact at displayed index i (0-based).
func (b *Book) PersonAt(i int) (*model.Person, error) { return b.persons.At(i) }

// IndexOf returns the displayed position of the contact equivalent to p,
// or -1. Positions are valid only until the next mutation.
func (b *Book) IndexOf(p *model.Person) int { return b.persons.IndexOf(p) }

// Len returns the number of contacts.
func (b *Book) Len() int { return b.persons.Len() }

// SortBy reorders the contact list by "name" or "debt".
func (b *Book) SortBy(field string) error { return b.persons.SortBy(field) }

// Snapshot returns a deep copy of the book's state.
func (b *Book) Snapshot() Snapshot {
	return Snapshot{Persons: b.persons.Persons(), Tags: b.tags.Tags()}
}

// Reset replaces the book's state with the snapshot in one atomic swap:
// the new state is fully built and canonicalized before the old one is
// dropped, so a corrupt snapshot leaves the book untouched.
func (b *Book) Reset(s Snapshot) error {
	var persons PersonList
	var tags TagList
	if err := tags.Set(s.Tags); err != nil {
		return fmt.Errorf("corrupt snapshot: %w", err)
	}
	if err := persons.Set(s.Persons); err != nil {
		return fmt.Errorf("corrupt snapshot: %w", err)
	}
	next := &Book{persons: persons, tags: tags}
	for _, e := range next.persons.entries {
		if err := next.syncTags(e); err != nil {
			return fmt.Errorf("corrupt snapshot: %w", err)
		}
	}
	*b = *next
	return nil
}

// Equal reports state equality: contacts order-sensitive, tags
// order-insensitive.
func (b *Book) Equal(other *Book) bool {
	return b.persons.Equal(&other.persons) && b.tags.Equal(&other.tags)
}

func (b *Book) String() string {
	return fmt.Sprintf("%d contacts, %d tags", b.persons.Len(), b.tags.Len())
}

// syncTags canonicalizes p's tag set against the master registry: the set is
// normalized, every name missing from the registry is validated and staged,
// and the registry is only touched once the whole set is known good.
// Calling it twice with the same registry is a no-op the second time.
func (b *Book) syncTags(p *model.Person) error {
	p.Tags = model.NormalizeTags(p.Tags)
	var missing []model.Tag
	for _, name := range p.Tags {
		if b.tags.Contains(name) {
			continue
		}
		t, err := model.NewTag(name)
		if err != nil {
			return err
		}
		missing = append(missing, t)
	}
	b.tags.Merge(missing)
	return nil
}
