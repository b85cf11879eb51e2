package commands

import (
	"strings"
	"testing"

	"github.com/tallybook/tallybook-cli/internal/cli/interactive"
	"github.com/tallybook/tallybook-cli/internal/model"
)

func overviewPerson(t *testing.T, name, phone, debt string, tags ...string) *model.Person {
	t.Helper()
	p, err := interactive.BuildContact(name, phone, strings.ToLower(strings.ReplaceAll(name, " ", ""))+"@example.com",
		"1 Main Street", "018906", debt, "", "", tags)
	if err != nil {
		t.Fatalf("BuildContact(%q): %v", name, err)
	}
	return p
}

func TestOverviewMarkdown(t *testing.T) {
	alex := overviewPerson(t, "Alex Yeoh", "87438807", "120.50", "friends")
	bernice := overviewPerson(t, "Bernice Yu", "99272758", "0")
	bernice.Blacklisted = true

	tag, err := model.NewTag("friends")
	if err != nil {
		t.Fatalf("NewTag: %v", err)
	}

	md := overviewMarkdown(
		[]*model.Person{alex, bernice},
		[]model.Tag{tag},
		[]*model.Person{bernice},
		nil,
	)

	for _, want := range []string{
		"**2 contacts**, **1 tags**, 1 blacklisted, 0 whitelisted",
		"Total outstanding: **120.50** across 1 debtor(s)",
		"| Alex Yeoh | 120.50 |",
		"[friends]",
		"- Bernice Yu (99272758)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("overview markdown missing %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "## ✅ Whitelisted") {
		t.Errorf("unexpected whitelist section with no whitelisted contacts")
	}
}

func TestFlagMarks(t *testing.T) {
	p := overviewPerson(t, "Charlotte Oliveiro", "93210283", "0")
	if got := flagMarks(p); got != "" {
		t.Errorf("flagMarks() = %q, want empty", got)
	}
	p.Blacklisted = true
	p.Whitelisted = true
	if got := flagMarks(p); got != "⛔ ✅" {
		t.Errorf("flagMarks() = %q, want both marks", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 30); got != "short" {
		t.Errorf("truncateString kept = %q", got)
	}
	long := strings.Repeat("a", 40)
	got := truncateString(long, 30)
	if len(got) != 30 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncateString(%q, 30) = %q", long, got)
	}
}
