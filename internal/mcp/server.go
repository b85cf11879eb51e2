package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tallybook/tallybook-cli/internal/book"
	"github.com/tallybook/tallybook-cli/internal/store"
)

// session guards the shared book behind a single mutex. The stdio server
// handles one client, but the SDK may dispatch tool calls concurrently.
type session struct {
	mu    sync.Mutex
	store *store.Store
	book  *book.Book
}

var current *session

// ServeStdio runs the MCP server over stdio until the client disconnects.
func ServeStdio(st *store.Store) error {
	snap, err := st.Load()
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	b, err := book.NewFromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("contact database is corrupt: %w", err)
	}
	current = &session{store: st, book: b}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "tallybook",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: `📒 TALLYBOOK - Contact and Debt Ledger

You are connected to the user's personal contact book. It tracks people,
their tags, blacklist/whitelist membership, and money they owe.

## Quick Reference
- LIST: list_contacts() shows every contact in book order
- FIND: search_contacts(term: "alice") matches name, email and tags
- ADD: add_contact(name: "...", phone: "...", email: "...", address: "...") creates a contact
- DEBT: record_debt(index: 1, amount: "25.50") adds to what a contact owes
- TAG: tag_contact(index: 1, tags: ["friends"]) replaces a contact's tag set

## Rules
- Contacts are addressed by their 1-based position in list_contacts output.
- Amounts are decimal strings with at most two fraction digits, never negative.
- Tags are single alphanumeric words; unknown tags are registered automatically.
- Duplicate contacts (same name, phone and email) are rejected.`,
		},
	)

	registerTools(server)

	return server.Run(context.Background(), &mcp.StdioTransport{})
}

// textResult converts any data to a CallToolResult with JSON TextContent.
func textResult(data interface{}) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, nil
}

// save persists the current book. Call with the session lock held.
func (s *session) save() error {
	return s.store.Save(s.book.Snapshot())
}
