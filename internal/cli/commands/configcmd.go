package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/tallybook/tallybook-cli/internal/config"
)

// NewConfigCommand shows the effective configuration and where it lives.
func NewConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show the effective configuration",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dir, err := config.Dir()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "config dir\t%s\n", dir)
			fmt.Fprintf(w, "database.path\t%s\n", cfg.Database.Path)
			fmt.Fprintf(w, "display.default_sort\t%s\n", cfg.Display.DefaultSort)
			fmt.Fprintf(w, "backup.dir\t%s\n", cfg.Backup.Dir)
			fmt.Fprintf(w, "debug\t%t\n", cfg.Debug)
			w.Flush()

			fmt.Println("\n💡 Override any value in config.yaml or with TALLYBOOK_* environment variables.")
			return nil
		},
	}
}
