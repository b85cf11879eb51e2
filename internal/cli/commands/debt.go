package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tallybook/tallybook-cli/internal/model"
)

// NewBorrowCommand records an additional amount owed by a contact.
func NewBorrowCommand() *cli.Command {
	return &cli.Command{
		Name:      "borrow",
		Usage:     "Record that a contact borrowed an amount",
		ArgsUsage: "<index> <amount>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2, "tallybook borrow <index> <amount>"); err != nil {
				return err
			}
			amount, err := model.NewDebt(c.Args().Get(1))
			if err != nil {
				fmt.Printf("❌ %v\n", err)
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
			if err := s.Book.AddDebt(p, amount); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}

			updated, _ := s.personByIndexArg(c.Args().First())
			fmt.Printf("✅ %s now owes %s\n", p.Name, updated.Debt)
			return nil
		},
	}
}

// NewSettleCommand clears a contact's outstanding debt.
func NewSettleCommand() *cli.Command {
	return &cli.Command{
		Name:      "settle",
		Usage:     "Settle a contact's debt back to zero",
		ArgsUsage: "<index>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "tallybook settle <index>"); err != nil {
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
			if p.Debt.IsZero() {
				fmt.Printf("💡 %s owes nothing already\n", p.Name)
				return nil
			}
			settled, err := s.Book.ResetDebt(p)
			if err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("✅ Settled %s, cleared %s (debt is now %s)\n", settled.Name, p.Debt, settled.Debt)
			return nil
		},
	}
}
