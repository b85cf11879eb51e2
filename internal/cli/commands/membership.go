package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tallybook/tallybook-cli/internal/model"
)

// NewBlacklistCommand creates all subcommands for the 'blacklist' command group.
func NewBlacklistCommand() *cli.Command {
	return &cli.Command{
		Name:    "blacklist",
		Aliases: []string{"bl"},
		Usage:   "Manage the blacklist",
		Subcommands: []*cli.Command{
			membershipListCmd("blacklist", "Blacklisted contacts", (*session).blacklisted),
			membershipSetCmd("add", "Blacklist a contact by its listed index", "blacklist add", "⛔ Blacklisted %s", setBlacklist(true)),
			membershipSetCmd("rm", "Remove a contact from the blacklist", "blacklist rm", "✅ Removed %s from the blacklist", setBlacklist(false)),
		},
	}
}

// NewWhitelistCommand creates all subcommands for the 'whitelist' command group.
func NewWhitelistCommand() *cli.Command {
	return &cli.Command{
		Name:    "whitelist",
		Aliases: []string{"wl"},
		Usage:   "Manage the whitelist",
		Subcommands: []*cli.Command{
			membershipListCmd("whitelist", "Whitelisted contacts", (*session).whitelisted),
			membershipSetCmd("add", "Whitelist a contact by its listed index", "whitelist add", "✅ Whitelisted %s", setWhitelist(true)),
			membershipSetCmd("rm", "Remove a contact from the whitelist", "whitelist rm", "✅ Removed %s from the whitelist", setWhitelist(false)),
		},
	}
}

func (s *session) blacklisted() []*model.Person { return s.Book.Blacklisted() }
func (s *session) whitelisted() []*model.Person { return s.Book.Whitelisted() }

func setBlacklist(on bool) func(*session, *model.Person) error {
	return func(s *session, p *model.Person) error {
		return s.Book.SetBlacklisted(p, on)
	}
}

func setWhitelist(on bool) func(*session, *model.Person) error {
	return func(s *session, p *model.Person) error {
		return s.Book.SetWhitelisted(p, on)
	}
}

func membershipListCmd(group, heading string, view func(*session) []*model.Person) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   fmt.Sprintf("List contacts on the %s", group),
		Action: func(c *cli.Context) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			persons := view(s)
			if len(persons) == 0 {
				fmt.Printf("No contacts on the %s.\n", group)
				return nil
			}
			fmt.Printf("%s:\n\n", heading)
			printPersonTable(persons)
			return nil
		},
	}
}

func membershipSetCmd(name, usage, cmdPath, doneMsg string, apply func(*session, *model.Person) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<index>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, fmt.Sprintf("tallybook %s <index>", cmdPath)); err != nil {
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
			if err := apply(s, p); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf(doneMsg+"\n", p.Name)
			return nil
		},
	}
}
