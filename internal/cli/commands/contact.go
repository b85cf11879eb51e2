package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v2"

	"github.com/tallybook/tallybook-cli/internal/book"
	"github.com/tallybook/tallybook-cli/internal/cli/interactive"
	"github.com/tallybook/tallybook-cli/internal/model"
)

// NewContactCommand creates all subcommands for the 'contact' command group.
func NewContactCommand() *cli.Command {
	return &cli.Command{
		Name:    "contact",
		Aliases: []string{"c"},
		Usage:   "Manage contacts",
		Subcommands: []*cli.Command{
			contactListCmd(),
			contactAddCmd(),
			contactShowCmd(),
			contactEditCmd(),
			contactDeleteCmd(),
			contactSortCmd(),
		},
	}
}

func contactListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all contacts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tag", Usage: "Only show contacts carrying this tag"},
		},
		Action: func(c *cli.Context) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			persons := s.Book.Persons()
			if tag := c.String("tag"); tag != "" {
				var filtered []*model.Person
				for _, p := range persons {
					if p.HasTag(tag) {
						filtered = append(filtered, p)
					}
				}
				persons = filtered
			}
			printPersonTable(persons)
			return nil
		},
	}
}

func contactAddCmd() *cli.Command {
	return &cli.Command{
		Name:    "add",
		Aliases: []string{"a"},
		Usage:   "Add a new contact",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "Prompt for each field"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}},
			&cli.StringFlag{Name: "phone", Aliases: []string{"p"}},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}},
			&cli.StringFlag{Name: "address", Aliases: []string{"a"}},
			&cli.StringFlag{Name: "postal", Usage: "6-digit postal code"},
			&cli.StringFlag{Name: "debt", Aliases: []string{"d"}, Value: "0", Usage: "Initial debt amount"},
			&cli.StringFlag{Name: "interest", Usage: "Interest in whole percent"},
			&cli.StringFlag{Name: "deadline", Usage: "Repayment deadline DD-MM-YYYY"},
			&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "Tag (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			var p *model.Person
			var err error
			if c.Bool("interactive") {
				p, err = interactive.ContactForm(nil)
			} else {
				p, err = interactive.BuildContact(
					c.String("name"), c.String("phone"), c.String("email"),
					c.String("address"), c.String("postal"), c.String("debt"),
					c.String("interest"), c.String("deadline"), c.StringSlice("tag"))
			}
			if err != nil {
				fmt.Printf("❌ %v\n", err)
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Book.AddPerson(p); err != nil {
				if errors.Is(err, book.ErrDuplicatePerson) {
					fmt.Println("❌ This contact already exists in the book")
					return err
				}
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("✅ Added contact: %s\n", p)
			return nil
		},
	}
}

func contactShowCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show full details of a contact by its listed index",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "copy", Usage: "Also copy the details to the clipboard"},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "tallybook contact show <index>"); err != nil {
				return err
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.personByIndexArg(c.Args().First())
			if err != nil {
				fmt.Printf("❌ %v\n", err)
				return err
			}
			details := personDetails(p)
			fmt.Print(details)
			if c.Bool("copy") {
				if err := clipboard.WriteAll(details); err != nil {
					fmt.Printf("⚠️  Could not copy to clipboard: %v\n", err)
				} else {
					fmt.Println("📋 Copied to clipboard")
				}
			}
			return nil
		},
	}
}

func contactEditCmd() *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Edit a contact by its listed index",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "Prompt for each field, prefilled"},
			&cli.StringFlag{Name: "name"},
			&cli.StringFlag{Name: "phone"},
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "address"},
			&cli.StringFlag{Name: "postal"},
			&cli.StringFlag{Name: "interest"},
			&cli.StringFlag{Name: "deadline"},
			&cli.StringSliceFlag{Name: "tag", Usage: "Replacement tag set (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "tallybook contact edit <index> [flags]"); err != nil {
				return err
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			target, err := s.personByIndexArg(c.Args().First())
			if err != nil {
				fmt.Printf("❌ %v\n", err)
				return err
			}

			var edited *model.Person
			if c.Bool("interactive") {
				edited, err = interactive.ContactForm(target)
				if err != nil {
					return err
				}
			} else {
				edited, err = editedFromFlags(c, target)
				if err != nil {
					fmt.Printf("❌ %v\n", err)
					return err
				}
			}
			// edits keep storage identity, borrow date and membership flags
			edited.ID = target.ID
			edited.DateBorrowed = target.DateBorrowed
			edited.Blacklisted = target.Blacklisted
			edited.Whitelisted = target.Whitelisted

			if err := s.Book.UpdatePerson(target, edited); err != nil {
				switch {
				case errors.Is(err, book.ErrDuplicatePerson):
					fmt.Println("❌ Another contact with these details already exists")
				case errors.Is(err, book.ErrPersonNotFound):
					fmt.Println("❌ Contact not found")
				}
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("✅ Updated contact: %s\n", edited)
			return nil
		},
	}
}

// editedFromFlags overlays the provided flags on the target's current
// values. The debt field is deliberately absent: debts change through
// 'borrow' and 'settle', not edit.
func editedFromFlags(c *cli.Context, target *model.Person) (*model.Person, error) {
	pick := func(flag, current string) string {
		if c.IsSet(flag) {
			return c.String(flag)
		}
		return current
	}
	tags := target.Tags
	if c.IsSet("tag") {
		tags = c.StringSlice("tag")
	}
	edited, err := interactive.BuildContact(
		pick("name", string(target.Name)),
		pick("phone", string(target.Phone)),
		pick("email", string(target.Email)),
		pick("address", string(target.Address)),
		pick("postal", string(target.PostalCode)),
		target.Debt.String(),
		pick("interest", string(target.Interest)),
		pick("deadline", string(target.Deadline)),
		tags)
	if err != nil {
		return nil, err
	}
	return edited, nil
}

func contactDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Aliases: []string{"d", "rm"},
		Usage:   "Delete a contact by its listed index",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "tallybook contact delete <index>"); err != nil {
				return err
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.personByIndexArg(c.Args().First())
			if err != nil {
				fmt.Printf("❌ %v\n", err)
				return err
			}
			if !c.Bool("yes") && !interactive.Confirm(fmt.Sprintf("Delete %s?", p.Name)) {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := s.Book.RemovePerson(p); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("🗑️  Deleted contact: %s\n", p.Name)
			return nil
		},
	}
}

func contactSortCmd() *cli.Command {
	return &cli.Command{
		Name:      "sort",
		Usage:     "Sort the book by \"name\" or \"debt\" (persisted)",
		ArgsUsage: "[ordering]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return fmt.Errorf("usage: tallybook contact sort [name|debt]")
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			order := strings.ToLower(c.Args().First())
			if order == "" {
				order = s.Config.Display.DefaultSort
			}
			if order == "" {
				return fmt.Errorf("usage: tallybook contact sort <name|debt> (or set display.default_sort)")
			}
			if err := s.Book.SortBy(order); err != nil {
				fmt.Printf("❌ %v\n", err)
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("✅ Book sorted by %s\n", order)
			printPersonTable(s.Book.Persons())
			return nil
		},
	}
}
