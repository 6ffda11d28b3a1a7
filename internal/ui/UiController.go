package ui

import (
	"github.com/Mshel/stealthgrid/internal/game"
	"github.com/Mshel/stealthgrid/internal/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
)

// Messages for state transitions
type IntroSubmitMsg IntroChoice
type SetupSubmitMsg struct {
	Name       string
	Difficulty game.Difficulty
}

// Options carries what the controller needs to start games. NewSession is
// called once per started run configuration; Runs may be nil.
type Options struct {
	NewSession func() *game.Session
	Runs       *store.RunHistoryService
	Logger     *log.Logger
	PlayerName string
	Difficulty game.Difficulty
}

type ControllerModel struct {
	CurrentScreen Screen
	opts          Options

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(opts Options, screenWidth int, screenHeight int) ControllerModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.NewSession == nil {
		logger := opts.Logger
		opts.NewSession = func() *game.Session { return game.NewSession(game.WithLogger(logger)) }
	}
	return ControllerModel{
		CurrentScreen: IntroScreen,
		opts:          opts,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(opts.PlayerName, opts.Difficulty, screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		var cmds []tea.Cmd
		m.IntroModel, cmd = m.IntroModel.Update(msg)
		cmds = append(cmds, cmd)
		m.SetupModel, cmd = m.SetupModel.Update(msg)
		cmds = append(cmds, cmd)
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case IntroSubmitMsg:
		switch IntroChoice(msg) {
		case IntroNewGame:
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		case IntroLeaderboard:
			m.CurrentScreen = GameScreen
			m.GameModel = NewLeaderboardModel(m.opts.Runs, m.opts.Logger, m.opts.Difficulty, m.ScreenWidth, m.ScreenHeight)
			return m, m.GameModel.Init()
		}

	case SetupSubmitMsg:
		m.opts.PlayerName = msg.Name
		m.opts.Difficulty = msg.Difficulty
		m.opts.Logger.Info("Starting run", "player", msg.Name, "difficulty", msg.Difficulty)

		session := m.opts.NewSession()
		session.SetDifficulty(msg.Difficulty)
		gameModel := NewGameModel(session, m.opts.Runs, m.opts.Logger, msg.Name, m.ScreenWidth, m.ScreenHeight)
		gameModel, cmd = gameModel.StartNewGame(msg.Difficulty)

		m.CurrentScreen = GameScreen
		m.GameModel = gameModel
		return m, tea.Batch(m.GameModel.Init(), cmd)

	case QuitGameMsg:
		m.CurrentScreen = IntroScreen
		m.GameModel = nil
		return m, m.IntroModel.Init()

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
		case GameScreen:
			if m.GameModel != nil {
				m.GameModel, cmd = m.GameModel.Update(msg)
			}
		}
		return m, cmd
	}

	return m, nil
}
