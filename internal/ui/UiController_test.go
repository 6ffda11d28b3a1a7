package ui

import (
	"testing"

	"github.com/Mshel/stealthgrid/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController() ControllerModel {
	return NewControllerModel(Options{
		NewSession: func() *game.Session { return game.NewSession(game.WithSeed(3), game.WithLogger(quiet)) },
		Logger:     quiet,
		PlayerName: "guest",
	}, 120, 40)
}

func TestController_SetupStartsGame(t *testing.T) {
	m := newController()

	updated, _ := m.Update(IntroSubmitMsg(IntroNewGame))
	m = updated.(ControllerModel)
	require.Equal(t, SetupScreen, m.CurrentScreen)

	updated, _ = m.Update(SetupSubmitMsg{Name: "mallory", Difficulty: game.Hard})
	m = updated.(ControllerModel)
	require.Equal(t, GameScreen, m.CurrentScreen)

	gm, ok := m.GameModel.(GameViewModel)
	require.True(t, ok)
	assert.Equal(t, game.Hard, gm.session.Difficulty())
	assert.Equal(t, game.HardTableSize, gm.session.Size())
	assert.Equal(t, "mallory", gm.playerName)
}

func TestController_LeaderboardFromIntroReturns(t *testing.T) {
	m := newController()

	updated, _ := m.Update(IntroSubmitMsg(IntroLeaderboard))
	m = updated.(ControllerModel)
	require.Equal(t, GameScreen, m.CurrentScreen)
	assert.Contains(t, m.View(), "No escapes yet")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(ControllerModel)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd())
	m = updated.(ControllerModel)
	assert.Equal(t, IntroScreen, m.CurrentScreen)
}

func TestSetupForm_NameAndDifficulty(t *testing.T) {
	var m tea.Model = NewInitialSetupModel("guest", game.Easy, 80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, SetupSubmitMsg{Name: "guest", Difficulty: game.Hard}, cmd())
}

func TestIntro_Choices(t *testing.T) {
	var m tea.Model = NewIntroModel(80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, IntroSubmitMsg(IntroLeaderboard), cmd())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
