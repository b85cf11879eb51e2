package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/tallybook/tallybook-cli/internal/backup"
	"github.com/tallybook/tallybook-cli/internal/cli/interactive"
)

// NewBackupCommand creates all subcommands for the 'backup' command group.
func NewBackupCommand() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Create and restore encrypted backups",
		Subcommands: []*cli.Command{
			backupCreateCmd(),
			backupRestoreCmd(),
			backupListCmd(),
		},
	}
}

func backupCreateCmd() *cli.Command {
	return &cli.Command{
		Name:    "create",
		Aliases: []string{"c"},
		Usage:   "Write an encrypted backup of the whole book",
		Action: func(c *cli.Context) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			path, err := backup.Create(s.Book.Snapshot(), s.Config.Backup.Dir)
			if err != nil {
				fmt.Printf("❌ %v\n", err)
				return err
			}
			fmt.Printf("✅ Backup written to %s\n", path)
			return nil
		},
	}
}

func backupRestoreCmd() *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "Replace the whole book with the contents of a backup file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "tallybook backup restore <file>"); err != nil {
				return err
			}
			snap, err := backup.Restore(c.Args().First())
			if err != nil {
				fmt.Printf("❌ %v\n", err)
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if !c.Bool("yes") {
				msg := fmt.Sprintf("Replace the current book (%s) with %d contacts from the backup?",
					s.Book, len(snap.Persons))
				if !interactive.Confirm(msg) {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := s.Book.Reset(snap); err != nil {
				fmt.Printf("❌ %v\n", err)
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("✅ Restored %s\n", s.Book)
			return nil
		},
	}
}

func backupListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List backup files",
		Action: func(c *cli.Context) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			matches, err := filepath.Glob(filepath.Join(s.Config.Backup.Dir, "tallybook-*.tbk"))
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Println("No backups yet. Use 'tallybook backup create' to make one.")
				return nil
			}
			sort.Sort(sort.Reverse(sort.StringSlice(matches)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tSIZE")
			for _, m := range matches {
				info, err := os.Stat(m)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "%s\t%d bytes\n", m, info.Size())
			}
			w.Flush()
			return nil
		},
	}
}
