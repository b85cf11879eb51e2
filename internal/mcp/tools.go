package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tallybook/tallybook-cli/internal/book"
	"github.com/tallybook/tallybook-cli/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contacts",
		Description: "List every contact in book order. Returns index, name, phone, email, debt, tags and membership flags. Use the index to address contacts in other tools.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "List Contacts",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, handleListContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_contacts",
		Description: "Search contacts by a case-insensitive term matched against name, email and tag names. REQUIRED: term.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Search Contacts",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, handleSearchContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact. REQUIRED: name, phone, email, address, postal (6 digits). OPTIONAL: debt (decimal string), tags (alphanumeric words). Duplicates by name+phone+email are rejected.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Add Contact",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleAddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_debt",
		Description: "Record that a contact borrowed an additional amount. REQUIRED: index (1-based, from list_contacts), amount (decimal string, e.g. \"25.50\"). Set settle=true to clear the debt to zero instead.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Record Debt",
			OpenWorldHint: boolPtr(false),
		},
	}, handleRecordDebt)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tag_contact",
		Description: "Replace a contact's tag set. REQUIRED: index (1-based), tags (list of alphanumeric words, may be empty to clear). Unknown tags are registered in the book automatically.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Tag Contact",
			OpenWorldHint: boolPtr(false),
		},
	}, handleTagContact)
}

func contactMap(index int, p *model.Person) map[string]interface{} {
	return map[string]interface{}{
		"index":       index,
		"name":        string(p.Name),
		"phone":       string(p.Phone),
		"email":       string(p.Email),
		"address":     string(p.Address),
		"postal_code": string(p.PostalCode),
		"debt":        p.Debt.String(),
		"interest":    p.Interest.String(),
		"deadline":    p.Deadline.String(),
		"tags":        p.Tags,
		"blacklisted": p.Blacklisted,
		"whitelisted": p.Whitelisted,
	}
}

func personAt(index int) (*model.Person, error) {
	if index < 1 || index > current.book.Len() {
		return nil, fmt.Errorf("index %d out of range, the book has %d contacts", index, current.book.Len())
	}
	return current.book.PersonAt(index - 1)
}

type ListContactsInput struct {
	Tag string `json:"tag,omitempty"` // only contacts carrying this tag
}

func handleListContacts(ctx context.Context, req *mcp.CallToolRequest, input ListContactsInput) (*mcp.CallToolResult, interface{}, error) {
	current.mu.Lock()
	defer current.mu.Unlock()

	var items []map[string]interface{}
	for i, p := range current.book.Persons() {
		if input.Tag != "" && !p.HasTag(input.Tag) {
			continue
		}
		items = append(items, contactMap(i+1, p))
	}
	res, err := textResult(map[string]interface{}{
		"contacts": items,
		"count":    len(items),
	})
	return res, nil, err
}

type SearchContactsInput struct {
	Term string `json:"term"`
}

func handleSearchContacts(ctx context.Context, req *mcp.CallToolRequest, input SearchContactsInput) (*mcp.CallToolResult, interface{}, error) {
	term := strings.ToLower(strings.TrimSpace(input.Term))
	if term == "" {
		return nil, nil, errors.New("'term' parameter is required")
	}

	current.mu.Lock()
	defer current.mu.Unlock()

	var items []map[string]interface{}
	for i, p := range current.book.Persons() {
		if matchesTerm(p, term) {
			items = append(items, contactMap(i+1, p))
		}
	}
	res, err := textResult(map[string]interface{}{
		"contacts": items,
		"count":    len(items),
	})
	return res, nil, err
}

func matchesTerm(p *model.Person, term string) bool {
	if strings.Contains(strings.ToLower(string(p.Name)), term) {
		return true
	}
	if strings.Contains(strings.ToLower(string(p.Email)), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

type AddContactInput struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	Postal  string   `json:"postal"`
	Debt    string   `json:"debt,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

func buildContact(input AddContactInput) (*model.Person, error) {
	name, err := model.NewName(input.Name)
	if err != nil {
		return nil, err
	}
	phone, err := model.NewPhone(input.Phone)
	if err != nil {
		return nil, err
	}
	email, err := model.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	address, err := model.NewAddress(input.Address)
	if err != nil {
		return nil, err
	}
	postal, err := model.NewPostalCode(input.Postal)
	if err != nil {
		return nil, err
	}
	raw := input.Debt
	if raw == "" {
		raw = "0"
	}
	debt, err := model.NewDebt(raw)
	if err != nil {
		return nil, err
	}
	return model.NewPerson(name, phone, email, address, postal, debt, "", "", input.Tags), nil
}

func handleAddContact(ctx context.Context, req *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, interface{}, error) {
	p, err := buildContact(input)
	if err != nil {
		return nil, nil, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()

	if err := current.book.AddPerson(p); err != nil {
		if errors.Is(err, book.ErrDuplicatePerson) {
			return nil, nil, errors.New("this contact already exists in the book")
		}
		return nil, nil, err
	}
	if err := current.save(); err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]interface{}{
		"message": fmt.Sprintf("Added contact %s", p.Name),
		"contact": contactMap(current.book.Len(), p),
	})
	return res, nil, err
}

type RecordDebtInput struct {
	Index  int    `json:"index"`
	Amount string `json:"amount,omitempty"`
	Settle bool   `json:"settle,omitempty"`
}

func handleRecordDebt(ctx context.Context, req *mcp.CallToolRequest, input RecordDebtInput) (*mcp.CallToolResult, interface{}, error) {
	current.mu.Lock()
	defer current.mu.Unlock()

	p, err := personAt(input.Index)
	if err != nil {
		return nil, nil, err
	}

	if input.Settle {
		updated, err := current.book.ResetDebt(p)
		if err != nil {
			return nil, nil, err
		}
		if err := current.save(); err != nil {
			return nil, nil, err
		}
		res, err := textResult(map[string]interface{}{
			"message": fmt.Sprintf("Settled %s, debt is now %s", updated.Name, updated.Debt),
			"contact": contactMap(input.Index, updated),
		})
		return res, nil, err
	}

	amount, err := model.NewDebt(input.Amount)
	if err != nil {
		return nil, nil, err
	}
	if err := current.book.AddDebt(p, amount); err != nil {
		return nil, nil, err
	}
	if err := current.save(); err != nil {
		return nil, nil, err
	}
	updated, err := personAt(input.Index)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]interface{}{
		"message": fmt.Sprintf("%s now owes %s", updated.Name, updated.Debt),
		"contact": contactMap(input.Index, updated),
	})
	return res, nil, err
}

type TagContactInput struct {
	Index int      `json:"index"`
	Tags  []string `json:"tags"`
}

func handleTagContact(ctx context.Context, req *mcp.CallToolRequest, input TagContactInput) (*mcp.CallToolResult, interface{}, error) {
	current.mu.Lock()
	defer current.mu.Unlock()

	target, err := personAt(input.Index)
	if err != nil {
		return nil, nil, err
	}
	edited := target.Clone()
	edited.Tags = input.Tags

	if err := current.book.UpdatePerson(target, edited); err != nil {
		return nil, nil, err
	}
	if err := current.save(); err != nil {
		return nil, nil, err
	}
	updated, err := personAt(input.Index)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]interface{}{
		"message": fmt.Sprintf("Updated tags for %s", updated.Name),
		"contact": contactMap(input.Index, updated),
	})
	return res, nil, err
}
