package commands

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/tallybook/tallybook-cli/internal/model"
)

var (
	browsePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
	browseLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	browseFlagStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// NewBrowseCommand creates the interactive browse command.
func NewBrowseCommand() *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"b"},
		Usage:   "Browse contacts in an interactive list",
		Action: func(c *cli.Context) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			persons := s.Book.Persons()
			if len(persons) == 0 {
				fmt.Println("No contacts yet. Use 'tallybook contact add' to create one.")
				return nil
			}
			m := newBrowseModel(persons)
			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

type contactItem struct {
	person *model.Person
}

func (i contactItem) Title() string { return string(i.person.Name) }

func (i contactItem) Description() string {
	desc := fmt.Sprintf("%s · owes %s", i.person.Phone, i.person.Debt)
	if i.person.Blacklisted {
		desc += " ⛔"
	}
	if i.person.Whitelisted {
		desc += " ✅"
	}
	return desc
}

func (i contactItem) FilterValue() string {
	return string(i.person.Name) + " " + string(i.person.Email)
}

type browseModel struct {
	list     list.Model
	width    int
	height   int
	showInfo bool
}

func newBrowseModel(persons []*model.Person) browseModel {
	items := make([]list.Item, len(persons))
	for i, p := range persons {
		items[i] = contactItem{person: p}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "📒 Tallybook"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	return browseModel{list: l}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil
	case tea.KeyMsg:
		// never intercept keys while the filter input is active
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.showInfo {
				m.showInfo = false
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			m.showInfo = true
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	if m.showInfo {
		if item, ok := m.list.SelectedItem().(contactItem); ok {
			return m.detailView(item.person)
		}
		m.showInfo = false
	}
	return m.list.View()
}

func (m browseModel) detailView(p *model.Person) string {
	row := func(label, value string) string {
		return browseLabelStyle.Render(fmt.Sprintf("%-12s", label)) + value
	}
	lines := []string{
		row("Name", string(p.Name)),
		row("Phone", string(p.Phone)),
		row("Email", string(p.Email)),
		row("Address", string(p.Address)),
		row("Postal", string(p.PostalCode)),
		row("Debt", p.Debt.String()),
		row("Interest", p.Interest.String()),
		row("Deadline", p.Deadline.String()),
		row("Borrowed", p.DateBorrowed.Format(model.DeadlineLayout)),
	}
	if len(p.Tags) > 0 {
		lines = append(lines, row("Tags", fmt.Sprintf("%v", p.Tags)))
	}
	if p.Blacklisted {
		lines = append(lines, browseFlagStyle.Render("⛔ BLACKLISTED"))
	}
	if p.Whitelisted {
		lines = append(lines, "✅ Whitelisted")
	}
	lines = append(lines, "", "press esc to go back, q to quit")
	return browsePaneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
