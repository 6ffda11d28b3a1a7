package ui

import (
	"strings"

	"github.com/Mshel/stealthgrid/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Define styles
var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	difficultyStyle         = lipgloss.NewStyle().Padding(0, 2).Foreground(blurredColor)
	selectedDifficultyStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("0")).Background(focusedColor)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

const (
	focusName = iota
	focusDifficulty
	focusSubmit
	focusCount
)

// SetupModel asks for the player name and the difficulty.
type SetupModel struct {
	nameInput   textinput.Model
	defaultName string
	difficulty  game.Difficulty
	focusIndex  int
	width       int
	height      int
}

func NewInitialSetupModel(defaultName string, d game.Difficulty, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = defaultName
	if ti.Placeholder == "" {
		ti.Placeholder = "Your name"
	}
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput:   ti,
		defaultName: defaultName,
		difficulty:  d,
		focusIndex:  focusName,
		width:       w,
		height:      h,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Name is the typed name, falling back to the default one.
func (m SetupModel) Name() string {
	if name := strings.TrimSpace(m.nameInput.Value()); name != "" {
		return name
	}
	if m.defaultName != "" {
		return m.defaultName
	}
	return "anonymous"
}

func (m SetupModel) setFocus(i int) SetupModel {
	m.focusIndex = (i + focusCount) % focusCount
	if m.focusIndex == focusName {
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
	}
	return m
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			return m.setFocus(m.focusIndex + 1), nil
		case "shift+tab":
			return m.setFocus(m.focusIndex - 1), nil
		case "enter":
			if m.focusIndex == focusSubmit {
				submit := SetupSubmitMsg{Name: m.Name(), Difficulty: m.difficulty}
				return m, func() tea.Msg { return submit }
			}
			return m.setFocus(m.focusIndex + 1), nil
		}

		if m.focusIndex == focusDifficulty {
			n := len(game.Difficulties)
			switch msg.String() {
			case "left", "h":
				m.difficulty = game.Difficulties[(int(m.difficulty)+n-1)%n]
			case "right", "l":
				m.difficulty = game.Difficulties[(int(m.difficulty)+1)%n]
			}
			return m, nil
		}

		if m.focusIndex == focusName {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.focusIndex == focusName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	prompt := "Difficulty (use arrows)"
	if m.focusIndex == focusDifficulty {
		b.WriteString(center(focusedStyle.Render(prompt)))
	} else {
		b.WriteString(center(blurredStyle.Render(prompt)))
	}
	b.WriteString("\n")

	options := make([]string, 0, len(game.Difficulties))
	for _, d := range game.Difficulties {
		label := d.String()
		if d == m.difficulty {
			options = append(options, selectedDifficultyStyle.Render(label))
		} else {
			options = append(options, difficultyStyle.Render(label))
		}
	}
	b.WriteString(center(lipgloss.JoinHorizontal(lipgloss.Center, options...)))
	b.WriteString("\n\n")

	if m.focusIndex == focusSubmit {
		b.WriteString(center(submitButtonStyle.Render("Start")))
	} else {
		b.WriteString(center(blurredButtonStyle.Render("Start")))
	}
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(tab/shift+tab to navigate, arrows to pick a difficulty, enter to confirm, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
