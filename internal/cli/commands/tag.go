package commands

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/tallybook/tallybook-cli/internal/book"
	"github.com/tallybook/tallybook-cli/internal/model"
)

// NewTagCommand creates all subcommands for the 'tag' command group.
func NewTagCommand() *cli.Command {
	return &cli.Command{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Manage the tag registry",
		Subcommands: []*cli.Command{
			tagListCmd(),
			tagAddCmd(),
			tagRemoveCmd(),
		},
	}
}

func tagListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all registered tags with usage counts",
		Action: func(c *cli.Context) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			tags := s.Book.Tags()
			if len(tags) == 0 {
				fmt.Println("No tags registered yet. Use 'tallybook tag add <name>' to create one.")
				return nil
			}

			counts := make(map[string]int)
			for _, p := range s.Book.Persons() {
				for _, name := range p.Tags {
					counts[name]++
				}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TAG\tCONTACTS\tCREATED")
			for _, t := range tags {
				fmt.Fprintf(w, "%s\t%d\t%s\n", t.Name, counts[t.Name], t.CreatedAt.Format("02-01-2006"))
			}
			w.Flush()
			return nil
		},
	}
}

func tagAddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Aliases:   []string{"a"},
		Usage:     "Register a new tag",
		ArgsUsage: "<name>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "tallybook tag add <name>"); err != nil {
				return err
			}
			t, err := model.NewTag(c.Args().First())
			if err != nil {
				fmt.Printf("❌ %v\n", err)
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Book.AddTag(t); err != nil {
				if errors.Is(err, book.ErrDuplicateTag) {
					fmt.Printf("❌ Tag %s already exists\n", t)
					return err
				}
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("✅ Registered tag %s\n", t)
			return nil
		},
	}
}

func tagRemoveCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"remove"},
		Usage:     "Remove a tag from the registry and strip it from every contact",
		ArgsUsage: "<name>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "tallybook tag rm <name>"); err != nil {
				return err
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			t, ok := s.Book.Lookup(c.Args().First())
			if !ok {
				fmt.Printf("❌ Tag [%s] not found\n", c.Args().First())
				return book.ErrTagNotFound
			}
			if err := s.Book.RemoveTag(t); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("🗑️  Removed tag %s from the registry and all contacts\n", t)
			return nil
		},
	}
}
