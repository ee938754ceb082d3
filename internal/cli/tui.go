package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/mlindner/pkgstats/pkg/errors"
	"github.com/mlindner/pkgstats/pkg/mirror"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// architectures returns the arch tokens offered for completion and the
// interactive picker.
func architectures() []string {
	return mirror.Architectures
}

// archListModel is the bubbletea model for interactive architecture
// selection.
type archListModel struct {
	archs    []string
	cursor   int
	selected string
	aborted  bool
}

func newArchListModel() archListModel {
	return archListModel{archs: architectures()}
}

func (m archListModel) Init() tea.Cmd {
	return nil
}

func (m archListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.archs)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.archs[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m archListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select an architecture") + "\n\n")
	for i, arch := range m.archs {
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("› "+arch) + "\n")
			continue
		}
		b.WriteString(listNormalStyle.Render("  "+arch) + "\n")
	}
	b.WriteString("\n" + listDimStyle.Render("↑/↓ move · enter select · q quit") + "\n")
	return b.String()
}

// pickArchitecture runs the interactive picker and returns the chosen
// architecture token. Aborting the picker is an invalid invocation, since
// the run has no target.
func pickArchitecture() (string, error) {
	final, err := tea.NewProgram(newArchListModel()).Run()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, err, "run architecture picker")
	}

	m, ok := final.(archListModel)
	if !ok || m.aborted || m.selected == "" {
		return "", apperrors.New(apperrors.ErrCodeUsage, "no architecture selected")
	}

	fmt.Println(StyleDim.Render("architecture: ") + StyleHighlight.Render(m.selected))
	return m.selected, nil
}
