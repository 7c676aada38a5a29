package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/genogram/pkg/genogram"
	"github.com/matzehuels/genogram/pkg/person"
	"github.com/matzehuels/genogram/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing a family file.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "inspect [family.toml]",
		Short: "Browse the persons in a family file interactively",
		Long: `Browse the persons in a family file interactively.

The inspect command loads a family file and opens an interactive list of
all persons. Selecting a person shows their parents, spouses, and marriage
statuses. Useful for checking a family file before rendering it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runInspect loads the family file and runs the interactive browser.
func (c *CLI) runInspect(ctx context.Context, input string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	records, err := runner.Load(ctx, pipeline.Options{Source: input, Logger: c.Logger})
	if err != nil {
		return fmt.Errorf("load family %s: %w", input, err)
	}

	model := NewPersonListModel(records)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	if m, ok := final.(PersonListModel); ok && m.Selected != nil {
		printPersonDetails(*m.Selected, m.byID)
	}
	return nil
}

// printPersonDetails prints a selected person's relationships.
func printPersonDetails(rec person.Record, byID map[string]person.Record) {
	printNewline()
	fmt.Println(StyleTitle.Render(displayName(rec)))
	printKeyValue("ID", rec.ID)
	printKeyValue("Gender", rec.Gender)

	if parents := nameList(append(append([]string{}, rec.FatherIDs...), rec.MotherIDs...), byID); parents != "" {
		printKeyValue("Parents", parents)
	}

	classify := person.Classifier()
	for _, spouseID := range rec.SpouseIDs {
		spouse, ok := byID[spouseID]
		if !ok {
			printKeyValue("Spouse", spouseID+" (unknown)")
			continue
		}
		status := classify(rec, spouse)
		printKeyValue("Spouse", fmt.Sprintf("%s (%s)", displayName(spouse), status))
	}
}

// =============================================================================
// PersonListModel - Interactive person browser
// =============================================================================

// PersonListModel is the bubbletea model for browsing a person set.
type PersonListModel struct {
	Persons  []person.Record
	Cursor   int
	Selected *person.Record
	Height   int
	Offset   int

	byID map[string]person.Record
}

// NewPersonListModel creates a new person list model.
func NewPersonListModel(persons []person.Record) PersonListModel {
	byID := make(map[string]person.Record, len(persons))
	for _, p := range persons {
		byID[p.ID] = p
	}
	return PersonListModel{
		Persons: persons,
		Cursor:  0,
		Height:  15,
		Offset:  0,
		byID:    byID,
	}
}

func (m PersonListModel) Init() tea.Cmd {
	return nil
}

func (m PersonListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Persons)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			p := m.Persons[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PersonListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Person"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Persons) {
		end = len(m.Persons)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Persons[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		gender := genderSymbol(p)
		parents := nameList(append(append([]string{}, p.FatherIDs...), p.MotherIDs...), m.byID)
		spouses := nameList(p.SpouseIDs, m.byID)

		rows = append(rows, []string{cursor, displayName(p), gender, orDash(parents), orDash(spouses)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Person", "Gender", "Parents", "Spouses").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Persons) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Persons))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// displayName returns the person's name, falling back to the id.
func displayName(p person.Record) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// genderSymbol renders the genogram shape symbol for a person's gender.
func genderSymbol(p person.Record) string {
	g, err := person.ParseGender(p.Gender)
	if err != nil {
		return "?"
	}
	if g == genogram.Female {
		return "○ female"
	}
	return "□ male"
}

// nameList resolves ids to display names and joins them.
func nameList(ids []string, byID map[string]person.Record) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			names = append(names, displayName(p))
		} else {
			names = append(names, id)
		}
	}
	return strings.Join(names, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
