package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/tallybook/tallybook-cli/internal/book"
	"github.com/tallybook/tallybook-cli/internal/config"
	"github.com/tallybook/tallybook-cli/internal/model"
	"github.com/tallybook/tallybook-cli/internal/store"
)

// session bundles the open store and the loaded book for one command
// invocation. Commands load, mutate once, save, close.
type session struct {
	Config *config.Config
	Store  *store.Store
	Book   *book.Book
}

func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	snap, err := st.Load()
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	b, err := book.NewFromSnapshot(snap)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("contact database is corrupt: %w", err)
	}
	return &session{Config: cfg, Store: st, Book: b}, nil
}

func (s *session) Save() error {
	return s.Store.Save(s.Book.Snapshot())
}

func (s *session) Close() {
	_ = s.Store.Close()
}

// personByIndexArg resolves a displayed 1-based index argument against the
// current book. Indices are only valid against the current listing; any
// mutation invalidates them.
func (s *session) personByIndexArg(arg string) (*model.Person, error) {
	i, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || i < 1 {
		return nil, fmt.Errorf("index must be a positive integer, got %q", arg)
	}
	p, err := s.Book.PersonAt(i - 1)
	if err != nil {
		return nil, fmt.Errorf("index %d is out of range: the book has %d contacts", i, s.Book.Len())
	}
	return p, nil
}

// requireArgs enforces an exact argument count for a subcommand.
func requireArgs(c *cli.Context, n int, usage string) error {
	if c.NArg() != n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func printPersonTable(persons []*model.Person) {
	if len(persons) == 0 {
		fmt.Println("No contacts found. Use 'tallybook contact add' to add one.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tPHONE\tDEBT\tDEADLINE\tTAGS\tFLAGS")
	fmt.Fprintln(w, "-\t----\t-----\t----\t--------\t----\t-----")
	for i, p := range persons {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			truncateString(string(p.Name), 30),
			p.Phone,
			p.Debt,
			p.Deadline,
			strings.Join(p.Tags, ","),
			flagMarks(p))
	}
	w.Flush()
}

func flagMarks(p *model.Person) string {
	var marks []string
	if p.Blacklisted {
		marks = append(marks, "⛔")
	}
	if p.Whitelisted {
		marks = append(marks, "✅")
	}
	return strings.Join(marks, " ")
}

func personDetails(p *model.Person) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:        %s\n", p.Name)
	fmt.Fprintf(&sb, "Phone:       %s\n", p.Phone)
	fmt.Fprintf(&sb, "Email:       %s\n", p.Email)
	fmt.Fprintf(&sb, "Address:     %s\n", p.Address)
	fmt.Fprintf(&sb, "Postal code: %s\n", p.PostalCode)
	fmt.Fprintf(&sb, "Debt:        %s\n", p.Debt)
	fmt.Fprintf(&sb, "Interest:    %s\n", p.Interest)
	fmt.Fprintf(&sb, "Deadline:    %s\n", p.Deadline)
	fmt.Fprintf(&sb, "Borrowed on: %s\n", p.DateBorrowed.Format("02-01-2006"))
	fmt.Fprintf(&sb, "Tags:        %s\n", strings.Join(p.Tags, ", "))
	fmt.Fprintf(&sb, "Blacklisted: %t\n", p.Blacklisted)
	fmt.Fprintf(&sb, "Whitelisted: %t\n", p.Whitelisted)
	return sb.String()
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
