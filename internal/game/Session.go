package game

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/Mshel/stealthgrid/internal/fsutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Session holds one live game: the grid, its guard roster and the selected
// difficulty. It is not safe for concurrent use; the host drives Tick and the
// move methods from a single goroutine and pauses its tick source while a
// load or save is running.
type Session struct {
	grid       *Grid
	guards     []Guard
	difficulty Difficulty

	rng         *rand.Rand
	levels      LevelSource
	fileSystem  fsutil.FileSystem
	visionRange int
	listener    Listener
	logger      *log.Logger

	tickCount   int
	moveCount   int
	detected    bool
	exitReached bool
}

// MoveResult reports what a player move ran into. Detected and ExitReached
// are evaluated on the target cell before it is overwritten.
type MoveResult struct {
	Moved       bool
	Detected    bool
	ExitReached bool
}

type Option func(*Session)

// WithRand sets the generator used for guard facings.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithSeed makes the session reproducible for a given seed.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed))) // #nosec G404 -- game only
}

func WithLevelSource(levels LevelSource) Option {
	return func(s *Session) { s.levels = levels }
}

func WithFileSystem(fileSystem fsutil.FileSystem) Option {
	return func(s *Session) { s.fileSystem = fileSystem }
}

func WithVisionRange(n int) Option {
	return func(s *Session) { s.visionRange = n }
}

func WithListener(listener Listener) Option {
	return func(s *Session) { s.listener = listener }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

func WithDifficulty(d Difficulty) Option {
	return func(s *Session) { s.difficulty = d }
}

// NewSession returns a session with an empty grid; call NewGame or LoadGame
// before playing.
func NewSession(opts ...Option) *Session {
	empty, _ := NewGrid(0)
	s := &Session{
		grid:        empty,
		guards:      []Guard{},
		difficulty:  Easy,
		levels:      EmbeddedLevels(),
		fileSystem:  fsutil.OSFileSystem{},
		visionRange: GuardVisionRange,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = newProcessRand()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// SetListener replaces the event listener; nil disables events.
func (s *Session) SetListener(listener Listener) {
	s.listener = listener
}

func (s *Session) publish(msg tea.Msg) {
	if s.listener != nil {
		s.listener(msg)
	}
}

// NewGame loads the level for d and replaces the current game with it.
func (s *Session) NewGame(d Difficulty) error {
	level, err := s.levels.Open(d)
	if err != nil {
		return fmt.Errorf("new %s game: %w: %w", d, ErrDataAccess, err)
	}
	defer level.Close()

	grid, guards, err := ParseLevel(level, s.rng)
	if err != nil {
		return fmt.Errorf("new %s game: %w", d, err)
	}

	s.difficulty = d
	s.replace(grid, guards)
	s.logger.Info("New game created", "difficulty", d, "size", grid.Size(), "guards", len(guards))
	return nil
}

// LoadGame replaces the current game with the save at path. On failure the
// current game is left as it was.
func (s *Session) LoadGame(path string) error {
	f, err := s.fileSystem.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open save %s: %w: %w", path, ErrDataAccess, err)
	}
	defer f.Close()

	if err := s.LoadGameFrom(f); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	s.logger.Info("Game loaded", "path", path, "size", s.grid.Size(), "guards", len(s.guards))
	return nil
}

// LoadGameFrom is LoadGame reading the save from r.
func (s *Session) LoadGameFrom(r io.Reader) error {
	grid, guards, err := ParseLevel(r, s.rng)
	if err != nil {
		return err
	}
	s.replace(grid, guards)
	return nil
}

func (s *Session) replace(grid *Grid, guards []Guard) {
	s.grid = grid
	s.guards = guards
	s.tickCount = 0
	s.moveCount = 0
	s.detected = false
	s.exitReached = false

	Recompute(s.grid, s.guards, s.visionRange)
	if !ExitReachable(s.grid) {
		s.logger.Warn("Level has no path from the player to an exit", "size", grid.Size())
	}
	s.publish(GameCreatedMsg{Difficulty: s.difficulty, Size: grid.Size()})
}

// SaveGame writes the current game to path. The data goes to a temporary
// file first and is renamed over path only once it is complete.
func (s *Session) SaveGame(path string) error {
	tmp := path + ".tmp"

	w, err := s.fileSystem.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create save %s: %w: %w", path, ErrDataAccess, err)
	}

	if err := s.SaveGameTo(w); err != nil {
		w.Close()
		s.fileSystem.Remove(tmp)
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		s.fileSystem.Remove(tmp)
		return fmt.Errorf("failed to save %s: %w: %w", path, ErrDataAccess, err)
	}
	if err := s.fileSystem.Rename(tmp, path); err != nil {
		s.fileSystem.Remove(tmp)
		return fmt.Errorf("failed to save %s: %w: %w", path, ErrDataAccess, err)
	}

	s.logger.Info("Game saved", "path", path)
	return nil
}

// SaveGameTo writes the current game to w without the vision overlay.
func (s *Session) SaveGameTo(w io.Writer) error {
	return SerializeLevel(w, s.grid)
}

// Tick advances the guards one step, recomputes their vision and reports
// whether the player is seen. Ticks after the run ended do nothing.
func (s *Session) Tick() bool {
	if s.IsOver() {
		return s.detected
	}

	AdvanceAll(s.grid, s.guards, s.rng)
	Recompute(s.grid, s.guards, s.visionRange)
	s.detected = Detected(s.grid)
	s.tickCount++

	if s.detected {
		s.logger.Info("Player detected by patrol", "tick", s.tickCount)
	}
	s.publish(PlayerDetectedMsg{IsOver: s.detected})
	return s.detected
}

// MovePlayer moves the player to (row, col). Walls and guards are
// obstacles and leave everything unchanged.
func (s *Session) MovePlayer(row, col int) (MoveResult, error) {
	target, err := s.grid.Get(row, col)
	if err != nil {
		return MoveResult{}, err
	}
	if s.IsOver() || target == WallCell || target == GuardCell {
		return MoveResult{}, nil
	}

	result := MoveResult{
		Moved:       true,
		Detected:    target.IsOverlay(),
		ExitReached: target == ExitCell,
	}

	if fromRow, fromCol, ok := s.grid.LocatePlayer(); ok {
		s.grid.cells[fromRow][fromCol] = FloorCell
	}
	s.grid.cells[row][col] = PlayerCell
	s.moveCount++

	s.detected = result.Detected
	s.exitReached = result.ExitReached
	if s.detected {
		s.logger.Info("Player walked into vision", "row", row, "col", col)
	}
	if s.exitReached {
		s.logger.Info("Player reached the exit", "moves", s.moveCount, "ticks", s.tickCount)
	}

	s.publish(PlayerDetectedMsg{IsOver: result.Detected})
	s.publish(ExitReachedMsg{IsOver: result.ExitReached})
	return result, nil
}

// MovePlayerVertically moves the player to row, keeping its column.
func (s *Session) MovePlayerVertically(row int) (MoveResult, error) {
	_, col, ok := s.grid.LocatePlayer()
	if !ok {
		return MoveResult{}, nil
	}
	return s.MovePlayer(row, col)
}

// MovePlayerHorizontally moves the player to col, keeping its row.
func (s *Session) MovePlayerHorizontally(col int) (MoveResult, error) {
	row, _, ok := s.grid.LocatePlayer()
	if !ok {
		return MoveResult{}, nil
	}
	return s.MovePlayer(row, col)
}

// Step moves the player one cell in direction f. The grid edge blocks like
// a wall.
func (s *Session) Step(f Facing) (MoveResult, error) {
	row, col, ok := s.grid.LocatePlayer()
	if !ok {
		return MoveResult{}, nil
	}
	nextRow, nextCol := neighbour(row, col, f)
	if !s.grid.IsValidCoordinate(nextRow, nextCol) {
		return MoveResult{}, nil
	}
	if f == Up || f == Down {
		return s.MovePlayerVertically(nextRow)
	}
	return s.MovePlayerHorizontally(nextCol)
}

func (s *Session) Cell(row, col int) (Cell, error) {
	return s.grid.Get(row, col)
}

func (s *Session) Overlay(row, col int) VisionLevel {
	return s.grid.Overlay(row, col)
}

func (s *Session) Size() int {
	return s.grid.Size()
}

// Snapshot returns a copy of the current grid.
func (s *Session) Snapshot() *Grid {
	return s.grid.Clone()
}

// Guards returns a copy of the roster.
func (s *Session) Guards() []Guard {
	return append([]Guard(nil), s.guards...)
}

func (s *Session) PlayerPosition() (row, col int, ok bool) {
	return s.grid.LocatePlayer()
}

func (s *Session) Difficulty() Difficulty {
	return s.difficulty
}

// SetDifficulty selects the level used by the next NewGame.
func (s *Session) SetDifficulty(d Difficulty) {
	s.difficulty = d
}

func (s *Session) TickCount() int {
	return s.tickCount
}

func (s *Session) MoveCount() int {
	return s.moveCount
}

func (s *Session) IsOver() bool {
	return s.detected || s.exitReached
}

func (s *Session) Outcome() Outcome {
	switch {
	case s.detected:
		return Caught
	case s.exitReached:
		return Escaped
	}
	return Playing
}
