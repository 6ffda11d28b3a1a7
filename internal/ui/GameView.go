package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mshel/stealthgrid/internal/game"
	"github.com/Mshel/stealthgrid/internal/store"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// --- Internal Game States for GameViewModel ---

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
	StateLeaderboard
)

var (
	voidColor    = "233"
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	floorTile        = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Render("  ")
	wallTile         = lipgloss.NewStyle().Foreground(lipgloss.Color("172")).Render("▒▒")
	exitTile         = lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("15")).Bold(true).Render("⇱ ")
	playerTile       = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("87")).Bold(true).Render("@ ")
	visionTile       = lipgloss.NewStyle().Background(lipgloss.Color("58")).Foreground(lipgloss.Color("227")).Render("· ")
	visionPlayerTile = lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("15")).Bold(true).Render("@ ")
	guardStyle       = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("9")).Bold(true)

	guardRunes = map[game.Facing]string{
		game.Up:    "▲ ",
		game.Right: "▶ ",
		game.Down:  "▼ ",
		game.Left:  "◀ ",
	}

	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const (
	mapViewPercentage  = 0.70
	statusPanelPadding = 4
	tileWidth          = 2
	leaderboardSize    = 10
)

// tickMsg drives the patrol. Ticks from an older generation are dropped, so
// pausing and resuming never leaves two tick chains running.
type tickMsg struct {
	gen int
}

// QuitGameMsg is sent to the controller to switch back to the IntroScreen
// when the user leaves a leaderboard opened from the intro.
type QuitGameMsg struct{}

// --- GameViewModel Definition ---

type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int

	session    *game.Session
	events     *eventQueue
	runs       *store.RunHistoryService
	logger     *log.Logger
	playerName string

	keys   KeyMap
	help   help.Model
	prompt PathPrompt

	paused  bool
	tickGen int
	status  string
	failed  bool

	gameState     GameState
	gameOverState GameOverState
	browseOnly    bool
}

// NewGameModel wires a view to session. runs may be nil, in which case
// finished runs are not recorded and the leaderboard stays empty.
func NewGameModel(session *game.Session, runs *store.RunHistoryService, logger *log.Logger, playerName string, screenWidth, screenHeight int) GameViewModel {
	if logger == nil {
		logger = log.Default()
	}
	events := &eventQueue{}
	session.SetListener(events.listen)

	return GameViewModel{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		session:      session,
		events:       events,
		runs:         runs,
		logger:       logger,
		playerName:   playerName,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		prompt:       NewPathPrompt(),
		gameState:    StatePlaying,
		gameOverState: GameOverState{
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
			Difficulty:   session.Difficulty(),
		},
	}
}

// NewLeaderboardModel shows the leaderboard without a game behind it.
func NewLeaderboardModel(runs *store.RunHistoryService, logger *log.Logger, d game.Difficulty, screenWidth, screenHeight int) GameViewModel {
	m := NewGameModel(game.NewSession(game.WithDifficulty(d)), runs, logger, "", screenWidth, screenHeight)
	m.browseOnly = true
	m.gameState = StateLeaderboard
	m.loadLeaderboard()
	return m
}

// --- Init/Update/View Methods ---

func (m GameViewModel) Init() tea.Cmd {
	return nil
}

// StartNewGame loads a fresh level for d.
func (m GameViewModel) StartNewGame(d game.Difficulty) (GameViewModel, tea.Cmd) {
	if err := m.session.NewGame(d); err != nil {
		m.logger.Error("Failed to start new game", "difficulty", d, "error", err)
		m.setError(err)
		return m, nil
	}
	return m, m.events.drain()
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.gameOverState.ScreenWidth = msg.Width
		m.gameOverState.ScreenHeight = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case sessionEventsMsg:
		var cmds []tea.Cmd
		for _, event := range msg {
			var cmd tea.Cmd
			m, cmd = m.handleEvent(event)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tickMsg:
		if msg.gen != m.tickGen || !m.ticking() {
			return m, nil
		}
		m.session.Tick()
		return m, tea.Batch(m.events.drain(), m.scheduleTick())

	case tea.KeyMsg:
		switch {
		case m.prompt.Active():
			return m.updatePrompt(msg)
		case m.gameState == StateGameOver:
			return m.updateGameOver(msg)
		case m.gameState == StateLeaderboard:
			return m.updateLeaderboard(msg)
		}
		return m.updatePlaying(msg)
	}

	if m.prompt.Active() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m GameViewModel) handleEvent(event tea.Msg) (GameViewModel, tea.Cmd) {
	switch event := event.(type) {
	case game.GameCreatedMsg:
		m.gameState = StatePlaying
		m.paused = false
		m.gameOverState = GameOverState{
			ScreenWidth:  m.ScreenWidth,
			ScreenHeight: m.ScreenHeight,
			Difficulty:   event.Difficulty,
		}
		m.setStatus(fmt.Sprintf("New %s game, %dx%d", event.Difficulty, event.Size, event.Size))
		m.tickGen++
		return m, m.scheduleTick()

	case game.PlayerDetectedMsg:
		if event.IsOver {
			m.endRun()
		}
	case game.ExitReachedMsg:
		if event.IsOver {
			m.endRun()
		}
	}
	return m, nil
}

func (m *GameViewModel) endRun() {
	if m.gameState != StatePlaying {
		return
	}
	outcome := m.session.Outcome()
	m.gameState = StateGameOver
	m.gameOverState.Outcome = outcome
	m.gameOverState.Difficulty = m.session.Difficulty()
	m.gameOverState.Ticks = m.session.TickCount()
	m.gameOverState.Moves = m.session.MoveCount()
	m.gameOverState.SelectedButton = 0
	m.logger.Info("Run finished", "player", m.playerName, "outcome", outcome,
		"ticks", m.gameOverState.Ticks, "moves", m.gameOverState.Moves)

	if m.runs == nil {
		return
	}
	if _, err := m.runs.RecordRun(m.playerName, m.gameOverState.Difficulty, outcome,
		m.gameOverState.Ticks, m.gameOverState.Moves); err != nil {
		m.logger.Error("Failed to record run", "error", err)
		m.gameOverState.RecordErr = err
	}
}

func (m GameViewModel) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if facing, ok := m.keys.Direction(msg); ok {
		if m.paused {
			return m, nil
		}
		if _, err := m.session.Step(facing); err != nil {
			m.logger.Error("Player move failed", "facing", facing, "error", err)
			m.setError(err)
			return m, nil
		}
		return m, m.events.drain()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused {
			m.setStatus("Paused")
			return m, nil
		}
		m.setStatus("Resumed")
		return m, m.resumeTicks()
	case key.Matches(msg, m.keys.Save):
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Open(PromptSave)
		return m, cmd
	case key.Matches(msg, m.keys.Load):
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Open(PromptLoad)
		return m, cmd
	case key.Matches(msg, m.keys.New):
		return m.StartNewGame(m.session.Difficulty())
	}
	return m, nil
}

func (m GameViewModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = m.prompt.Close()
		return m, m.resumeTicks()

	case tea.KeyEnter:
		mode, path := m.prompt.Mode(), m.prompt.Path()
		m.prompt = m.prompt.Close()

		var err error
		if mode == PromptSave {
			err = m.session.SaveGame(path)
		} else {
			err = m.session.LoadGame(path)
		}
		if err != nil {
			m.logger.Warn("Save file operation failed", "path", path, "error", err)
			m.setError(err)
			return m, m.resumeTicks()
		}

		if mode == PromptSave {
			m.setStatus("Saved to " + path)
			return m, m.resumeTicks()
		}
		// A load publishes GameCreatedMsg, which restarts the ticks.
		return m, m.events.drain()
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m GameViewModel) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
	case "right", "l":
		m.gameOverState.SelectedButton = min(len(gameOverButtons)-1, m.gameOverState.SelectedButton+1)
	case "n":
		return m.StartNewGame(m.session.Difficulty())
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		switch m.gameOverState.SelectedButton {
		case 0:
			return m.StartNewGame(m.session.Difficulty())
		case 1:
			m.gameState = StateLeaderboard
			m.loadLeaderboard()
		default:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m GameViewModel) updateLeaderboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.gameOverState.Difficulty = game.Difficulties[(int(m.gameOverState.Difficulty)+len(game.Difficulties)-1)%len(game.Difficulties)]
		m.loadLeaderboard()
	case "right", "l":
		m.gameOverState.Difficulty = game.Difficulties[(int(m.gameOverState.Difficulty)+1)%len(game.Difficulties)]
		m.loadLeaderboard()
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		if m.browseOnly {
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
		m.gameState = StateGameOver
	}
	return m, nil
}

func (m *GameViewModel) loadLeaderboard() {
	state := &m.gameOverState
	state.Leaderboard = nil
	state.LeaderboardErr = nil
	state.Escapes, state.Catches, state.TotalRuns = 0, 0, 0
	if m.runs == nil {
		return
	}

	runs, err := m.runs.GetLeaderboard(state.Difficulty, leaderboardSize, 0)
	if err == nil {
		state.Escapes, err = m.runs.CountRuns(state.Difficulty, game.Escaped)
	}
	if err == nil {
		state.Catches, err = m.runs.CountRuns(state.Difficulty, game.Caught)
	}
	if err == nil {
		state.TotalRuns, err = m.runs.GetTotalRunCount()
	}
	if err != nil {
		m.logger.Error("Failed to load leaderboard", "error", err)
		state.LeaderboardErr = err
		return
	}
	state.Leaderboard = runs
}

func (m GameViewModel) ticking() bool {
	return m.gameState == StatePlaying && !m.paused && !m.prompt.Active() && !m.session.IsOver()
}

func (m GameViewModel) scheduleTick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(game.GameTickDuration, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// resumeTicks starts a new tick chain if the game should be running.
func (m *GameViewModel) resumeTicks() tea.Cmd {
	if !m.ticking() {
		return nil
	}
	m.tickGen++
	return m.scheduleTick()
}

func (m *GameViewModel) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *GameViewModel) setError(err error) {
	m.failed = true
	if errors.Is(err, game.ErrDataAccess) {
		m.status = "Could not read or write the game: " + err.Error()
		return
	}
	m.status = err.Error()
}

func (m GameViewModel) View() string {
	switch m.gameState {
	case StateGameOver:
		return m.gameOverState.RenderGameOverScreen()
	case StateLeaderboard:
		return m.gameOverState.RenderLeaderboardScreen()
	}

	if m.session.Size() == 0 {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Loading level...")
	}

	mapWidth := int(float64(m.ScreenWidth) * mapViewPercentage)
	statusPanelWidth := max(0, m.ScreenWidth-mapWidth-statusPanelPadding)
	mapHeight := max(1, m.ScreenHeight-2)

	mapContent := m.renderMap(mapWidth, mapHeight)
	if m.prompt.Active() {
		mapContent = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, m.prompt.View())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Width(mapWidth).Height(mapHeight).Render(mapContent),
		statusPanelStyle.Width(statusPanelWidth).Height(mapHeight).Render(m.renderStatusPanel()),
	)
}

// renderMap draws the part of the grid that fits, centred on the player.
func (m GameViewModel) renderMap(width, height int) string {
	size := m.session.Size()
	grid := m.session.Snapshot()
	guards := m.session.Guards()

	facings := make(map[[2]int]game.Facing, len(guards))
	for _, gd := range guards {
		facings[[2]int{gd.Row, gd.Col}] = gd.Facing
	}

	viewportW := min(size, max(1, width/tileWidth))
	viewportH := min(size, max(1, height))
	centerRow, centerCol, _ := grid.LocatePlayer()

	startCol := clamp(centerCol-viewportW/2, 0, size-viewportW)
	startRow := clamp(centerRow-viewportH/2, 0, size-viewportH)

	var sb strings.Builder
	for row := startRow; row < startRow+viewportH; row++ {
		for col := startCol; col < startCol+viewportW; col++ {
			c, _ := grid.Get(row, col)
			switch c {
			case game.WallCell:
				sb.WriteString(wallTile)
			case game.ExitCell:
				sb.WriteString(exitTile)
			case game.GuardCell:
				sb.WriteString(guardStyle.Render(guardRunes[facings[[2]int{row, col}]]))
			case game.PlayerCell:
				sb.WriteString(playerTile)
			case game.VisionCell:
				sb.WriteString(visionTile)
			case game.VisionPlayerCell:
				sb.WriteString(visionPlayerTile)
			default:
				sb.WriteString(floorTile)
			}
		}
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(sb.String())
}

func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder
	bold := lipgloss.NewStyle().Bold(true)

	statusContent.WriteString(bold.Render("--- Run ---") + "\n")
	if m.playerName != "" {
		statusContent.WriteString(fmt.Sprintf("%s%s\n", playerTile, m.playerName))
	}
	statusContent.WriteString(fmt.Sprintf("Difficulty: %s\n", m.session.Difficulty()))
	statusContent.WriteString(fmt.Sprintf("Ticks: %d\n", m.session.TickCount()))
	statusContent.WriteString(fmt.Sprintf("Moves: %d\n", m.session.MoveCount()))
	statusContent.WriteString(fmt.Sprintf("Guards: %d\n", len(m.session.Guards())))
	if m.paused {
		statusContent.WriteString(pausedStyle.Render("PAUSED") + "\n")
	}

	if m.status != "" {
		style := helpStyle
		if m.failed {
			style = errorStyle
		}
		statusContent.WriteString("\n" + style.Render(m.status) + "\n")
	}

	statusContent.WriteString("\n" + bold.Render("--- Legend ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("%s you  %s exit\n", playerTile, exitTile))
	statusContent.WriteString(fmt.Sprintf("%s guard  %s seen\n", guardStyle.Render(guardRunes[game.Up]), visionTile))

	statusContent.WriteString("\n" + bold.Render("--- Controls ---") + "\n")
	statusContent.WriteString(m.help.View(m.keys))

	return statusContent.String()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
