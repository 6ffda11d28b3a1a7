package game

import tea "github.com/charmbracelet/bubbletea"

// GameCreatedMsg is published after a new game or a successful load has
// replaced the grid.
type GameCreatedMsg struct {
	Difficulty Difficulty
	Size       int
}

// PlayerDetectedMsg is published after every tick and every player move.
// IsOver is true when a guard sees the player, which ends the run.
type PlayerDetectedMsg struct {
	IsOver bool
}

// ExitReachedMsg is published after every player move. IsOver is true when
// the player stepped onto the exit, which ends the run.
type ExitReachedMsg struct {
	IsOver bool
}

// Listener receives session events synchronously, after the state change
// that caused them is complete. It must not call back into the session.
type Listener func(msg tea.Msg)

// Outcome is how a run ended.
type Outcome int

const (
	Playing Outcome = iota
	Escaped
	Caught
)

func (o Outcome) String() string {
	switch o {
	case Escaped:
		return "escaped"
	case Caught:
		return "caught"
	}
	return "playing"
}
