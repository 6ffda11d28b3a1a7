package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/stealthgrid/internal/game"
	"github.com/Mshel/stealthgrid/internal/store"
	"github.com/charmbracelet/lipgloss"
)

// GameOverState holds the data and local state for rendering the game over screens.
type GameOverState struct {
	Outcome        game.Outcome
	Difficulty     game.Difficulty
	Ticks          int
	Moves          int
	RecordErr      error
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int

	Leaderboard    []store.Run
	LeaderboardErr error

	// Run counts for Difficulty and across all difficulties.
	Escapes   int
	Catches   int
	TotalRuns int
}

var gameOverButtons = []string{"PLAY AGAIN", "LEADERBOARD", "EXIT"}

// Styles for Game Over/Leaderboard
var (
	GameOverbuttonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = GameOverbuttonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// RenderGameOverScreen draws the outcome and buttons.
func (g *GameOverState) RenderGameOverScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(2, 5).
		Align(lipgloss.Center).
		Width(max(0, g.ScreenWidth-4))

	var title string
	if g.Outcome == game.Escaped {
		title = messageStyle.Foreground(lipgloss.Color("10")).Render("E S C A P E D")
	} else {
		title = messageStyle.Foreground(lipgloss.Color("9")).Render("C A U G H T")
	}

	stats := fmt.Sprintf("\nDifficulty: %s\nTicks survived: %d\nMoves: %d\n", g.Difficulty, g.Ticks, g.Moves)
	if g.RecordErr != nil {
		stats += errorStyle.Render("Run was not recorded") + "\n"
	}

	buttons := make([]string, len(gameOverButtons))
	for i, label := range gameOverButtons {
		if i == g.SelectedButton {
			buttons[i] = selectedButtonStyle.Render(label)
		} else {
			buttons[i] = GameOverbuttonStyle.Render(label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		stats,
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
		helpStyle.Render("←/→ to choose, enter to confirm, n for a new game"),
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// RenderLeaderboardScreen draws the fastest escapes for the selected difficulty.
func (g *GameOverState) RenderLeaderboardScreen() string {
	var tableContent strings.Builder

	nameWidth := 15
	numberWidth := 8
	dateWidth := 12

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(4).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(numberWidth).Render("Moves"),
		leaderboardHeaderStyle.Width(numberWidth).Render("Ticks"),
		leaderboardHeaderStyle.Width(dateWidth).Render("Date"),
	)
	tableContent.WriteString(header + "\n")

	for i, run := range g.Leaderboard {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(4).Render(strconv.Itoa(i+1)),
			leaderboardRowStyle.Width(nameWidth).Render(run.PlayerName),
			leaderboardRowStyle.Width(numberWidth).Render(strconv.Itoa(run.Moves)),
			leaderboardRowStyle.Width(numberWidth).Render(strconv.Itoa(run.Ticks)),
			leaderboardRowStyle.Width(dateWidth).Render(run.CreatedAt.Format("2006-01-02")),
		)
		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	switch {
	case g.LeaderboardErr != nil:
		tableContent.WriteString(errorStyle.Render("Leaderboard unavailable") + "\n")
	case len(g.Leaderboard) == 0:
		tableContent.WriteString(helpStyle.Render("No escapes yet") + "\n")
	}

	if g.LeaderboardErr == nil {
		tableContent.WriteString(helpStyle.Render(fmt.Sprintf("Escaped: %d  Caught: %d  All runs: %d",
			g.Escapes, g.Catches, g.TotalRuns)) + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render(
		fmt.Sprintf("FASTEST ESCAPES: %s", strings.ToUpper(g.Difficulty.String())))
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("←/→ to change difficulty, ESC or ENTER to return.")

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		instruction,
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
