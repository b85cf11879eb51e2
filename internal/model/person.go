package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Person is a single contact. Field values are validated on construction by
// the value types; the tag set holds tag names that the book canonicalizes
// against its master tag list. The ID is storage identity only and plays no
// part in equivalence.
type Person struct {
	ID           uuid.UUID  `json:"id"`
	Name         Name       `json:"name"`
	Phone        Phone      `json:"phone"`
	Email        Email      `json:"email"`
	Address      Address    `json:"address"`
	PostalCode   PostalCode `json:"postal_code"`
	Debt         Debt       `json:"debt"`
	Interest     Interest   `json:"interest"`
	Deadline     Deadline   `json:"deadline"`
	DateBorrowed time.Time  `json:"date_borrowed"`
	Tags         []string   `json:"tags"`
	Blacklisted  bool       `json:"blacklisted"`
	Whitelisted  bool       `json:"whitelisted"`
}

// NewPerson builds a contact from already-validated field values. The borrow
// date is stamped at creation.
func NewPerson(name Name, phone Phone, email Email, address Address, postal PostalCode,
	debt Debt, interest Interest, deadline Deadline, tags []string) *Person {
	return &Person{
		ID:           uuid.New(),
		Name:         name,
		Phone:        phone,
		Email:        email,
		Address:      address,
		PostalCode:   postal,
		Debt:         debt,
		Interest:     interest,
		Deadline:     deadline,
		DateBorrowed: time.Now(),
		Tags:         NormalizeTags(tags),
	}
}

// Same is the equivalence predicate used for uniqueness checks: two entries
// are the same contact when name, phone and email all match. Debt, interest,
// deadline, tags and the membership flags are mutable attributes and do not
// contribute.
func (p *Person) Same(other *Person) bool {
	if other == nil {
		return false
	}
	return p.Name == other.Name && p.Phone == other.Phone && p.Email == other.Email
}

// Equal is full attribute equality, storage identity excluded.
func (p *Person) Equal(other *Person) bool {
	if other == nil {
		return false
	}
	return p.Name == other.Name &&
		p.Phone == other.Phone &&
		p.Email == other.Email &&
		p.Address == other.Address &&
		p.PostalCode == other.PostalCode &&
		p.Debt == other.Debt &&
		p.Interest == other.Interest &&
		p.Deadline == other.Deadline &&
		p.Blacklisted == other.Blacklisted &&
		p.Whitelisted == other.Whitelisted &&
		slices.Equal(p.Tags, other.Tags)
}

// Clone returns a deep copy. Mutating operations on the book work on clones
// so callers never hold a reference into the book's own state.
func (p *Person) Clone() *Person {
	c := *p
	c.Tags = slices.Clone(p.Tags)
	return &c
}

func (p *Person) HasTag(name string) bool {
	return slices.Contains(p.Tags, name)
}

func (p *Person) String() string {
	return fmt.Sprintf("%s (phone: %s, email: %s, debt: %s)", p.Name, p.Phone, p.Email, p.Debt)
}

// NormalizeTags deduplicates and sorts a tag-name set. A sorted set gives
// every person the same canonical ordering, which keeps set comparisons and
// storage round trips stable.
func NormalizeTags(tags []string) []string {
	out := slices.Clone(tags)
	slices.Sort(out)
	return slices.Compact(out)
}
