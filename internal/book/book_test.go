package book

import (
	"errors"
	"testing"

	"github.com/tallybook/tallybook-cli/internal/model"
)

func bookPerson(t *testing.T, name, phone, debt string, tags ...string) *model.Person {
	t.Helper()
	p := listPerson(t, name, phone)
	d, err := model.NewDebt(debt)
	if err != nil {
		t.Fatal(err)
	}
	p.Debt = d
	p.Tags = tags
	return p
}

func mustTag(t *testing.T, name string) model.Tag {
	t.Helper()
	tag, err := model.NewTag(name)
	if err != nil {
		t.Fatal(err)
	}
	return tag
}

func TestAddPerson(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "0.00", "friend")
	if err := b.AddPerson(a); err != nil {
		t.Fatalf("AddPerson() error = %v", err)
	}
	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
	tags := b.Tags()
	if len(tags) != 1 || tags[0].Name != "friend" {
		t.Errorf("tag list = %v, want exactly [friend]", tags)
	}
}

func TestAddPersonRejectsDuplicate(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "0.00")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}
	if err := b.AddPerson(a.Clone()); !errors.Is(err, ErrDuplicatePerson) {
		t.Errorf("AddPerson(duplicate) error = %v, want ErrDuplicatePerson", err)
	}
	if b.Len() != 1 {
		t.Error("failed add must leave the contact list unchanged")
	}
}

func TestFailedAddRegistersNoTags(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "0.00")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}

	// duplicate add carrying new tags: the duplicate check runs before the
	// registry is touched, so the tags must not leak in
	dup := a.Clone()
	dup.Tags = []string{"newTag"}
	if err := b.AddPerson(dup); !errors.Is(err, ErrDuplicatePerson) {
		t.Fatalf("AddPerson() error = %v, want ErrDuplicatePerson", err)
	}
	if len(b.Tags()) != 0 {
		t.Errorf("failed add leaked tags into the registry: %v", b.Tags())
	}
}

func TestTagCanonicalization(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "0.00", "friend")
	c := bookPerson(t, "Bernice Yu", "99272758", "0.00", "friend", "colleague")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}
	if err := b.AddPerson(c); err != nil {
		t.Fatal(err)
	}

	// exactly one canonical "friend" entry, referenced by both contacts
	friends := 0
	for _, tag := range b.Tags() {
		if tag.Name == "friend" {
			friends++
		}
	}
	if friends != 1 {
		t.Errorf("registry holds %d \"friend\" entries, want 1", friends)
	}
	for _, p := range b.Persons() {
		if !p.HasTag("friend") {
			t.Errorf("%s lost its friend tag", p.Name)
		}
		for _, name := range p.Tags {
			if _, ok := b.Lookup(name); !ok {
				t.Errorf("%s references tag %q missing from the registry", p.Name, name)
			}
		}
	}
}

func TestUpdatePerson(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "0.00")
	c := bookPerson(t, "Bernice Yu", "99272758", "0.00")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}
	if err := b.AddPerson(c); err != nil {
		t.Fatal(err)
	}

	edited := a.Clone()
	edited.Tags = []string{"debtor"}
	if err := b.UpdatePerson(a, edited); err != nil {
		t.Fatalf("UpdatePerson() error = %v", err)
	}
	if got := b.IndexOf(edited); got != 0 {
		t.Errorf("edited contact moved to index %d, want 0", got)
	}
	if _, ok := b.Lookup("debtor"); !ok {
		t.Error("edited contact's new tag missing from registry")
	}

	// collision with a different contact
	steal := c.Clone()
	steal.Name = a.Name
	steal.Phone = a.Phone
	steal.Email = a.Email
	if err := b.UpdatePerson(c, steal); !errors.Is(err, ErrDuplicatePerson) {
		t.Errorf("UpdatePerson(collision) error = %v, want ErrDuplicatePerson", err)
	}

	absent := bookPerson(t, "Nobody", "80000000", "0.00")
	if err := b.UpdatePerson(absent, edited); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("UpdatePerson(absent) error = %v, want ErrPersonNotFound", err)
	}
}

func TestMembershipFlagsPreserveOrder(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "0.00")
	c := bookPerson(t, "Bernice Yu", "99272758", "0.00")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}
	if err := b.AddPerson(c); err != nil {
		t.Fatal(err)
	}

	if err := b.SetBlacklisted(a, true); err != nil {
		t.Fatalf("SetBlacklisted() error = %v", err)
	}
	if b.IndexOf(a) != 0 || b.IndexOf(c) != 1 {
		t.Error("flag flip changed display order")
	}

	persons := b.Persons()
	if !persons[0].Blacklisted {
		t.Error("first contact should be blacklisted")
	}
	if persons[1].Blacklisted {
		t.Error("second contact must be untouched")
	}

	black := b.Blacklisted()
	if len(black) != 1 || !black[0].Same(a) {
		t.Errorf("Blacklisted() = %v, want exactly the flagged contact", black)
	}
	if len(b.Whitelisted()) != 0 {
		t.Error("Whitelisted() should be empty")
	}

	if err := b.SetBlacklisted(a, false); err != nil {
		t.Fatal(err)
	}
	if len(b.Blacklisted()) != 0 {
		t.Error("unflagging should empty the blacklist view")
	}

	absent := bookPerson(t, "Nobody", "80000000", "0.00")
	if err := b.SetWhitelisted(absent, true); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("SetWhitelisted(absent) error = %v, want ErrPersonNotFound", err)
	}
}

func TestAddDebt(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "10.00")
	c := bookPerson(t, "Bernice Yu", "99272758", "0.00")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}
	if err := b.AddPerson(c); err != nil {
		t.Fatal(err)
	}

	amount, err := model.NewDebt("5.00")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.AddDebt(a, amount); err != nil {
		t.Fatalf("AddDebt() error = %v", err)
	}
	got, err := b.PersonAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Debt.String() != "15.00" {
		t.Errorf("debt after borrow = %s, want 15.00", got.Debt)
	}
	if b.IndexOf(a) != 0 {
		t.Error("debt change moved the contact")
	}

	if err := b.AddDebt(bookPerson(t, "Nobody", "80000000", "0.00"), amount); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("AddDebt(absent) error = %v, want ErrPersonNotFound", err)
	}
}

func TestResetDebt(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "120.50")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}

	got, err := b.ResetDebt(a)
	if err != nil {
		t.Fatalf("ResetDebt() error = %v", err)
	}
	if !got.Debt.IsZero() {
		t.Errorf("debt after reset = %s, want 0.00", got.Debt)
	}

	if _, err := b.ResetDebt(bookPerson(t, "Nobody", "80000000", "0.00")); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("ResetDebt(absent) error = %v, want ErrPersonNotFound", err)
	}
}

func TestTagOperations(t *testing.T) {
	b := New()
	friend := mustTag(t, "friend")
	if err := b.AddTag(friend); err != nil {
		t.Fatalf("AddTag() error = %v", err)
	}
	if err := b.AddTag(mustTag(t, "friend")); !errors.Is(err, ErrDuplicateTag) {
		t.Errorf("AddTag(duplicate) error = %v, want ErrDuplicateTag", err)
	}

	if err := b.RemoveTag(mustTag(t, "ghost")); !errors.Is(err, ErrTagNotFound) {
		t.Errorf("RemoveTag(absent) error = %v, want ErrTagNotFound", err)
	}
}

func TestRemoveTagCascades(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "0.00", "friend", "debtor")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}

	if err := b.RemoveTag(mustTag(t, "friend")); err != nil {
		t.Fatalf("RemoveTag() error = %v", err)
	}
	got, err := b.PersonAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if got.HasTag("friend") {
		t.Error("removed tag still referenced by a contact")
	}
	if !got.HasTag("debtor") {
		t.Error("unrelated tag stripped")
	}
	if _, ok := b.Lookup("friend"); ok {
		t.Error("removed tag still in registry")
	}
}

func TestSyncTagsIdempotent(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "0.00", "friend")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}

	// updating with the same tag set must not duplicate or diverge
	got, err := b.PersonAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.UpdatePerson(got, got); err != nil {
		t.Fatalf("identity update error = %v", err)
	}
	if len(b.Tags()) != 1 {
		t.Errorf("registry grew on re-sync: %v", b.Tags())
	}
}

func TestRemovePerson(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "0.00")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}
	if err := b.RemovePerson(a); err != nil {
		t.Fatalf("RemovePerson() error = %v", err)
	}
	if b.Len() != 0 {
		t.Error("contact still present after removal")
	}
	if err := b.RemovePerson(a); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("RemovePerson(absent) error = %v, want ErrPersonNotFound", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "25.00", "friend")
	c := bookPerson(t, "Bernice Yu", "99272758", "0.00", "colleague")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}
	if err := b.AddPerson(c); err != nil {
		t.Fatal(err)
	}
	if err := b.SetWhitelisted(c, true); err != nil {
		t.Fatal(err)
	}

	restored, err := NewFromSnapshot(b.Snapshot())
	if err != nil {
		t.Fatalf("NewFromSnapshot() error = %v", err)
	}
	if !b.Equal(restored) {
		t.Errorf("round trip lost state: %s vs %s", b, restored)
	}

	// the snapshot is detached from the book
	if err := b.RemovePerson(a); err != nil {
		t.Fatal(err)
	}
	if restored.Len() != 2 {
		t.Error("mutating the source book changed the restored copy")
	}
}

func TestResetRejectsCorruptSnapshot(t *testing.T) {
	b := New()
	a := bookPerson(t, "Alex Yeoh", "87438807", "0.00")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}

	bad := Snapshot{Persons: []*model.Person{a, a.Clone()}}
	if err := b.Reset(bad); !errors.Is(err, ErrDuplicatePerson) {
		t.Fatalf("Reset(corrupt) error = %v, want wrapped ErrDuplicatePerson", err)
	}
	if b.Len() != 1 {
		t.Error("failed reset must leave the book untouched")
	}
}

func TestBookEqual(t *testing.T) {
	build := func(tagOrder []string) *Book {
		b := New()
		for _, name := range tagOrder {
			if err := b.AddTag(mustTag(t, name)); err != nil {
				t.Fatal(err)
			}
		}
		if err := b.AddPerson(bookPerson(t, "Alex Yeoh", "87438807", "0.00")); err != nil {
			t.Fatal(err)
		}
		return b
	}

	// tag order is disregarded, person order is not
	x := build([]string{"friend", "colleague"})
	y := build([]string{"colleague", "friend"})
	if !x.Equal(y) {
		t.Error("tag order must not affect book equality")
	}

	if err := y.AddPerson(bookPerson(t, "Bernice Yu", "99272758", "0.00")); err != nil {
		t.Fatal(err)
	}
	if x.Equal(y) {
		t.Error("different contact lists must not be equal")
	}
}

func TestSortByKeepsAttributes(t *testing.T) {
	b := New()
	a := bookPerson(t, "Zack", "81111111", "5.00")
	c := bookPerson(t, "Alice", "82222222", "50.00")
	if err := b.AddPerson(a); err != nil {
		t.Fatal(err)
	}
	if err := b.AddPerson(c); err != nil {
		t.Fatal(err)
	}

	if err := b.SortBy("name"); err != nil {
		t.Fatalf("SortBy() error = %v", err)
	}
	persons := b.Persons()
	if persons[0].Name != "Alice" || persons[1].Name != "Zack" {
		t.Errorf("sorted order = [%s, %s]", persons[0].Name, persons[1].Name)
	}
	if persons[0].Debt.String() != "50.00" {
		t.Error("sorting must not touch attributes")
	}
}
