package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TUIChooser presents a filterable candidate list in the terminal.
type TUIChooser struct{}

func (c *TUIChooser) ChooseOne(prompt string, candidates []string) (string, error) {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Focus()

	m := &pickModel{
		prompt:     prompt,
		candidates: candidates,
		visible:    candidates,
		filter:     ti,
	}
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	result := final.(*pickModel)
	if result.cancelled || result.choice == "" {
		return "", ErrCancelled
	}
	return result.choice, nil
}

type pickModel struct {
	prompt     string
	candidates []string
	visible    []string
	cursor     int
	filter     textinput.Model

	choice    string
	cancelled bool
}

func (m *pickModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		if len(m.visible) > 0 {
			m.choice = m.visible[m.cursor]
		}
		return m, tea.Quit
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.visible = filterCandidates(m.candidates, m.filter.Value())
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
	return m, cmd
}

func (m *pickModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.prompt) + "\n")
	b.WriteString(m.filter.View() + "\n\n")
	for i, cand := range m.visible {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+cand) + "\n")
		} else {
			b.WriteString("  " + cand + "\n")
		}
	}
	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("  (no matches)") + "\n")
	}
	b.WriteString(dimStyle.Render("\nenter select · esc cancel"))
	return b.String()
}

// filterCandidates keeps candidates containing the query,
// case-insensitively. An empty query keeps everything.
func filterCandidates(candidates []string, query string) []string {
	if query == "" {
		return candidates
	}
	query = strings.ToLower(query)
	var out []string
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), query) {
			out = append(out, c)
		}
	}
	return out
}
