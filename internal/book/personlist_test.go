package book

import (
	"errors"
	"testing"

	"github.com/tallybook/tallybook-cli/internal/model"
)

func listPerson(t *testing.T, name, phone string) *model.Person {
	t.Helper()
	n, err := model.NewName(name)
	if err != nil {
		t.Fatal(err)
	}
	ph, err := model.NewPhone(phone)
	if err != nil {
		t.Fatal(err)
	}
	e, err := model.NewEmail("contact@example.com")
	if err != nil {
		t.Fatal(err)
	}
	a, err := model.NewAddress("Blk 47 Tampines Street 20, #17-35")
	if err != nil {
		t.Fatal(err)
	}
	pc, err := model.NewPostalCode("529482")
	if err != nil {
		t.Fatal(err)
	}
	return model.NewPerson(n, ph, e, a, pc, model.DebtZero, "", "", nil)
}

func TestPersonListAddRejectsDuplicates(t *testing.T) {
	var l PersonList
	a := listPerson(t, "Alex Yeoh", "87438807")
	if err := l.Add(a); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// equivalent entry, different mutable state
	dup := a.Clone()
	dup.Debt, _ = model.NewDebt("99.00")
	if err := l.Add(dup); !errors.Is(err, ErrDuplicatePerson) {
		t.Errorf("Add(duplicate) error = %v, want ErrDuplicatePerson", err)
	}
	if l.Len() != 1 {
		t.Errorf("failed add must leave the list unchanged, len = %d", l.Len())
	}
}

func TestPersonListAddStoresCopy(t *testing.T) {
	var l PersonList
	a := listPerson(t, "Alex Yeoh", "87438807")
	if err := l.Add(a); err != nil {
		t.Fatal(err)
	}
	a.Blacklisted = true
	got, err := l.At(0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Blacklisted {
		t.Error("caller mutation after Add leaked into the list")
	}
}

func TestPersonListRemove(t *testing.T) {
	var l PersonList
	a := listPerson(t, "Alex Yeoh", "87438807")
	b := listPerson(t, "Bernice Yu", "99272758")
	if err := l.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := l.Add(b); err != nil {
		t.Fatal(err)
	}

	if err := l.Remove(a); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if l.Len() != 1 || l.IndexOf(b) != 0 {
		t.Errorf("after remove: len = %d, index of b = %d", l.Len(), l.IndexOf(b))
	}
	if err := l.Remove(a); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("Remove(absent) error = %v, want ErrPersonNotFound", err)
	}
}

func TestPersonListReplace(t *testing.T) {
	var l PersonList
	a := listPerson(t, "Alex Yeoh", "87438807")
	b := listPerson(t, "Bernice Yu", "99272758")
	c := listPerson(t, "Charlotte Oliveiro", "93210283")
	for _, p := range []*model.Person{a, b, c} {
		if err := l.Add(p); err != nil {
			t.Fatal(err)
		}
	}

	// replacement keeps the target's position
	edited := listPerson(t, "Bernice Tan", "99272758")
	if err := l.Replace(b, edited); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if got := l.IndexOf(edited); got != 1 {
		t.Errorf("replacement index = %d, want 1", got)
	}

	// editing an entry into itself (same identity fields) is allowed
	same := edited.Clone()
	same.Blacklisted = true
	if err := l.Replace(edited, same); err != nil {
		t.Errorf("Replace(self-edit) error = %v", err)
	}

	// colliding with a different entry fails before mutating
	if err := l.Replace(a, c.Clone()); !errors.Is(err, ErrDuplicatePerson) {
		t.Errorf("Replace(collision) error = %v, want ErrDuplicatePerson", err)
	}
	if l.IndexOf(a) != 0 {
		t.Error("failed replace must leave the list unchanged")
	}

	if err := l.Replace(listPerson(t, "Nobody", "80000000"), a); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("Replace(absent target) error = %v, want ErrPersonNotFound", err)
	}
}

func TestPersonListSetAllOrNothing(t *testing.T) {
	var l PersonList
	if err := l.Add(listPerson(t, "Existing", "81111111")); err != nil {
		t.Fatal(err)
	}

	a := listPerson(t, "Alex Yeoh", "87438807")
	if err := l.Set([]*model.Person{a, a.Clone()}); !errors.Is(err, ErrDuplicatePerson) {
		t.Fatalf("Set(internal duplicate) error = %v, want ErrDuplicatePerson", err)
	}
	if l.Len() != 1 {
		t.Error("failed Set must leave the list unchanged")
	}

	b := listPerson(t, "Bernice Yu", "99272758")
	if err := l.Set([]*model.Person{a, b}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if l.Len() != 2 || l.IndexOf(a) != 0 || l.IndexOf(b) != 1 {
		t.Error("Set did not preserve input order")
	}
}

func TestPersonListSortBy(t *testing.T) {
	var l PersonList
	a := listPerson(t, "charlie", "81111111")
	b := listPerson(t, "Alice", "82222222")
	c := listPerson(t, "Bob", "83333333")
	b.Debt, _ = model.NewDebt("10.00")
	c.Debt, _ = model.NewDebt("250.50")
	for _, p := range []*model.Person{a, b, c} {
		if err := l.Add(p); err != nil {
			t.Fatal(err)
		}
	}

	if err := l.SortBy("name"); err != nil {
		t.Fatalf("SortBy(name) error = %v", err)
	}
	if l.IndexOf(b) != 0 || l.IndexOf(c) != 1 || l.IndexOf(a) != 2 {
		t.Error("SortBy(name) should be case-insensitive alphabetical")
	}

	if err := l.SortBy("debt"); err != nil {
		t.Fatalf("SortBy(debt) error = %v", err)
	}
	if l.IndexOf(c) != 0 || l.IndexOf(b) != 1 || l.IndexOf(a) != 2 {
		t.Error("SortBy(debt) should order largest debt first")
	}

	if err := l.SortBy("email"); err == nil {
		t.Error("SortBy(email) error = nil, want error for unknown ordering")
	}
}
