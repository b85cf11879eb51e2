package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tallybook/tallybook-cli/internal/cli/commands"
)

// Version will be set during build with ldflags
var Version = "1.0.0"

func main() {
	app := &cli.App{
		Name:    "tallybook",
		Usage:   "Contact book and debt ledger CLI",
		Version: Version,
		Commands: []*cli.Command{
			// Core commands
			commands.NewContactCommand(),
			commands.NewTagCommand(),

			// Debts
			commands.NewBorrowCommand(),
			commands.NewSettleCommand(),

			// Membership lists
			commands.NewBlacklistCommand(),
			commands.NewWhitelistCommand(),

			// Views
			commands.NewOverviewCommand(),
			commands.NewBrowseCommand(),

			// Backups & encryption
			commands.NewBackupCommand(),
			commands.NewVaultCommand(),

			// Meta
			commands.NewMcpCommand(),
			commands.NewConfigCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
