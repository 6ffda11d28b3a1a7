package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type IntroChoice int

const (
	IntroNewGame IntroChoice = iota
	IntroLeaderboard
	IntroQuit
)

var introButtons = []string{"New Game", "Leaderboard", "Quit"}

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected IntroChoice
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: IntroNewGame, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		n := IntroChoice(len(introButtons))
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.selected = (m.selected + n - 1) % n
		case "right", "l", "tab":
			m.selected = (m.selected + 1) % n
		case "q":
			return m, tea.Quit
		case "enter":
			if m.selected == IntroQuit {
				return m, tea.Quit
			}
			return m, func() tea.Msg { return IntroSubmitMsg(m.selected) }
		}
	}
	return m, nil
}

var stealthAscii = `
 ███████ ████████ ███████  █████  ██      ████████ ██   ██
 ██         ██    ██      ██   ██ ██         ██    ██   ██
 ███████    ██    █████   ███████ ██         ██    ███████
      ██    ██    ██      ██   ██ ██         ██    ██   ██
 ███████    ██    ███████ ██   ██ ███████    ██    ██   ██

            reach the exit, stay out of sight
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("87"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("87")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(stealthAscii))
	sb.WriteString("\n")

	buttons := make([]string, len(introButtons))
	for i, label := range introButtons {
		if IntroChoice(i) == m.selected {
			buttons[i] = introSelectedButtonStyle.Render(label)
		} else {
			buttons[i] = introButtonStyle.Render(label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
