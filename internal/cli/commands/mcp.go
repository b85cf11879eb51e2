package commands

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tallybook/tallybook-cli/internal/config"
	"github.com/tallybook/tallybook-cli/internal/mcp"
	"github.com/tallybook/tallybook-cli/internal/store"
)

func NewMcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "MCP (Model Context Protocol) server management",
		Subcommands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start MCP server (stdio)",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					st, err := store.Open(cfg)
					if err != nil {
						return err
					}
					defer st.Close()
					return mcp.ServeStdio(st)
				},
			},
			{
				Name:  "config",
				Usage: "Print an MCP config example for clients",
				Action: func(c *cli.Context) error {
					cfg := map[string]interface{}{
						"mcpServers": map[string]interface{}{
							"tallybook": map[string]interface{}{
								"command": "tallybook",
								"args":    []string{"mcp", "serve"},
							},
						},
					}
					b, _ := json.MarshalIndent(cfg, "", "  ")
					fmt.Println(string(b))
					return nil
				},
			},
		},
	}
}
