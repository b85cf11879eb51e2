package book

import (
	"errors"
	"testing"

	"github.com/tallybook/tallybook-cli/internal/model"
)

func TestTagListMergeIsSetUnion(t *testing.T) {
	var l TagList
	if err := l.Add(mustTag(t, "friend")); err != nil {
		t.Fatal(err)
	}

	l.Merge([]model.Tag{mustTag(t, "friend"), mustTag(t, "colleague")})
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if !l.Contains("friend") || !l.Contains("colleague") {
		t.Error("merge lost a tag")
	}
}

func TestTagListLookupReturnsCanonicalInstance(t *testing.T) {
	var l TagList
	friend := mustTag(t, "friend")
	if err := l.Add(friend); err != nil {
		t.Fatal(err)
	}

	got, ok := l.Lookup("friend")
	if !ok {
		t.Fatal("Lookup(friend) not found")
	}
	if got.ID != friend.ID {
		t.Error("Lookup must return the registered canonical instance")
	}
	if _, ok := l.Lookup("ghost"); ok {
		t.Error("Lookup(ghost) should miss")
	}
}

func TestTagListSetAllOrNothing(t *testing.T) {
	var l TagList
	if err := l.Add(mustTag(t, "existing")); err != nil {
		t.Fatal(err)
	}

	dup := []model.Tag{mustTag(t, "friend"), mustTag(t, "friend")}
	if err := l.Set(dup); !errors.Is(err, ErrDuplicateTag) {
		t.Fatalf("Set(internal duplicate) error = %v, want ErrDuplicateTag", err)
	}
	if l.Len() != 1 || !l.Contains("existing") {
		t.Error("failed Set must leave the registry unchanged")
	}
}
