package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hstools/ghc-demangle/demangle"
	"github.com/hstools/ghc-demangle/symbol"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Decode names at an interactive prompt",
	RunE:    runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	_, err := tea.NewProgram(newPromptModel()).Run()
	return err
}

type historyEntry struct {
	input  string
	output string
	kind   string
	err    error
}

type promptModel struct {
	input   textinput.Model
	history []historyEntry
}

func newPromptModel() *promptModel {
	ti := textinput.New()
	ti.Placeholder = "mangled name"
	ti.Prompt = "> "
	ti.CharLimit = 512
	ti.Focus()
	return &promptModel{input: ti}
}

func (m *promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if name := strings.TrimSpace(m.input.Value()); name != "" {
				m.history = append(m.history, evaluate(name))
				m.input.Reset()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evaluate decodes one entered name. Names with full linker symbol shape
// additionally report the runtime object kind their suffix implies.
func evaluate(name string) historyEntry {
	entry := historyEntry{input: name}

	if sym, err := symbol.Parse(name); err == nil && sym.Kind() != symbol.KindUnknown {
		entry.output = sym.DemangledName()
		entry.kind = sym.Kind().String()
		return entry
	}

	decoded, err := demangle.Decode(name)
	if err != nil {
		entry.err = err
		return entry
	}
	entry.output = decoded
	return entry
}

func (m *promptModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("hsdemangle"))
	b.WriteString("\n\n")

	for _, entry := range m.history {
		b.WriteString(promptStyle.Render("> " + entry.input))
		b.WriteByte('\n')
		if entry.err != nil {
			b.WriteString(errorStyle.Render("  " + entry.err.Error()))
		} else {
			b.WriteString(resultStyle.Render("  " + entry.output))
			if entry.kind != "" {
				b.WriteString(kindStyle.Render(fmt.Sprintf("  (%s)", entry.kind)))
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: decode • esc: quit"))
	b.WriteString("\n")

	return b.String()
}
