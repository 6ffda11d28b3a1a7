package ui

import (
	"github.com/Mshel/stealthgrid/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type PromptMode int

const (
	PromptClosed PromptMode = iota
	PromptSave
	PromptLoad
)

var promptStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(focusedColor).
	Padding(0, 1)

// PathPrompt asks for a save file path. Ticks are suspended while it is open.
type PathPrompt struct {
	mode  PromptMode
	input textinput.Model
}

func NewPathPrompt() PathPrompt {
	ti := textinput.New()
	ti.Placeholder = "run" + game.SaveFileExtension
	ti.CharLimit = 255
	ti.Width = 40
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle
	return PathPrompt{input: ti}
}

func (p PathPrompt) Active() bool {
	return p.mode != PromptClosed
}

func (p PathPrompt) Mode() PromptMode {
	return p.mode
}

// Open shows the prompt for mode, keeping the last path entered.
func (p PathPrompt) Open(mode PromptMode) (PathPrompt, tea.Cmd) {
	p.mode = mode
	return p, p.input.Focus()
}

func (p PathPrompt) Close() PathPrompt {
	p.mode = PromptClosed
	p.input.Blur()
	return p
}

// Path is the entered path, or the placeholder when nothing was typed.
func (p PathPrompt) Path() string {
	if v := p.input.Value(); v != "" {
		return v
	}
	return p.input.Placeholder
}

func (p PathPrompt) Update(msg tea.Msg) (PathPrompt, tea.Cmd) {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p PathPrompt) View() string {
	title := "Save game to"
	if p.mode == PromptLoad {
		title = "Load game from"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		focusedStyle.Render(title),
		p.input.View(),
		helpStyle.Render("enter to confirm, esc to cancel"),
	)
	return promptStyle.Render(body)
}
