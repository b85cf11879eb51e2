package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v2"

	"github.com/tallybook/tallybook-cli/internal/model"
)

// NewOverviewCommand creates the overview command.
func NewOverviewCommand() *cli.Command {
	return &cli.Command{
		Name:    "overview",
		Aliases: []string{"o"},
		Usage:   "Show a rendered summary of the whole book",
		Action: func(c *cli.Context) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			md := overviewMarkdown(s.Book.Persons(), s.Book.Tags(),
				s.Book.Blacklisted(), s.Book.Whitelisted())

			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				// fall back to raw markdown when the terminal profile fails
				fmt.Print(md)
				return nil
			}
			out, err := r.Render(md)
			if err != nil {
				fmt.Print(md)
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}
}

func overviewMarkdown(persons []*model.Person, tags []model.Tag, black, white []*model.Person) string {
	var b strings.Builder
	b.WriteString("# 📒 Tallybook Overview\n\n")
	fmt.Fprintf(&b, "**%d contacts**, **%d tags**, %d blacklisted, %d whitelisted\n\n",
		len(persons), len(tags), len(black), len(white))

	var total model.Debt
	var debtors []*model.Person
	for _, p := range persons {
		total = total.Plus(p.Debt)
		if !p.Debt.IsZero() {
			debtors = append(debtors, p)
		}
	}
	fmt.Fprintf(&b, "## 💰 Debts\n\nTotal outstanding: **%s** across %d debtor(s)\n\n", total, len(debtors))

	if len(debtors) > 0 {
		sort.SliceStable(debtors, func(i, j int) bool {
			return debtors[i].Debt.Cents() > debtors[j].Debt.Cents()
		})
		if len(debtors) > 5 {
			debtors = debtors[:5]
		}
		b.WriteString("| Contact | Owes | Deadline |\n|---|---|---|\n")
		for _, p := range debtors {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Name, p.Debt, p.Deadline)
		}
		b.WriteString("\n")
	}

	if len(tags) > 0 {
		b.WriteString("## 🏷️ Tags\n\n")
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			names = append(names, t.String())
		}
		b.WriteString(strings.Join(names, " "))
		b.WriteString("\n\n")
	}

	if len(black) > 0 {
		b.WriteString("## ⛔ Blacklisted\n\n")
		for _, p := range black {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Name, p.Phone)
		}
		b.WriteString("\n")
	}
	if len(white) > 0 {
		b.WriteString("## ✅ Whitelisted\n\n")
		for _, p := range white {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Name, p.Phone)
		}
		b.WriteString("\n")
	}

	b.WriteString("💡 Use 'tallybook contact --help' to see contact operations.\n")
	return b.String()
}
