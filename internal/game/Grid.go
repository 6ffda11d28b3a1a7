package game

import "fmt"

// Grid is the square cell map of a single game. It is owned by exactly one
// Session and replaced as a whole on new game or load.
type Grid struct {
	size  int
	cells [][]Cell
}

// NewGrid returns a size×size grid of floor.
func NewGrid(size int) (*Grid, error) {
	if size < 0 {
		return nil, fmt.Errorf("grid size %d: %w", size, ErrOutOfRange)
	}

	cells := make([][]Cell, size)
	for row := 0; row < size; row++ {
		cells[row] = make([]Cell, size)
	}

	return &Grid{size: size, cells: cells}, nil
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) IsValidCoordinate(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

func (g *Grid) Get(row, col int) (Cell, error) {
	if !g.IsValidCoordinate(row, col) {
		return FloorCell, fmt.Errorf("get (%d, %d) on %dx%d grid: %w", row, col, g.size, g.size, ErrOutOfRange)
	}
	return g.cells[row][col], nil
}

func (g *Grid) Set(row, col int, kind Cell) error {
	if !g.IsValidCoordinate(row, col) {
		return fmt.Errorf("set (%d, %d) on %dx%d grid: %w", row, col, g.size, g.size, ErrOutOfRange)
	}
	if !kind.Valid() {
		return fmt.Errorf("set (%d, %d) to %s: %w", row, col, kind, ErrInvalidValue)
	}
	g.cells[row][col] = kind
	return nil
}

// is reports whether (row, col) is valid and holds kind. Invalid coordinates
// are never any kind, which is what the neighbour checks rely on.
func (g *Grid) is(row, col int, kind Cell) bool {
	return g.IsValidCoordinate(row, col) && g.cells[row][col] == kind
}

func (g *Grid) IsFloor(row, col int) bool        { return g.is(row, col, FloorCell) }
func (g *Grid) IsWall(row, col int) bool         { return g.is(row, col, WallCell) }
func (g *Grid) IsExit(row, col int) bool         { return g.is(row, col, ExitCell) }
func (g *Grid) IsGuard(row, col int) bool        { return g.is(row, col, GuardCell) }
func (g *Grid) IsPlayer(row, col int) bool       { return g.is(row, col, PlayerCell) }
func (g *Grid) IsVision(row, col int) bool       { return g.is(row, col, VisionCell) }
func (g *Grid) IsVisionPlayer(row, col int) bool { return g.is(row, col, VisionPlayerCell) }

// LocatePlayer scans for the player, who may currently be lit. ok is false
// when the grid holds no player.
func (g *Grid) LocatePlayer() (row, col int, ok bool) {
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			if c := g.cells[row][col]; c == PlayerCell || c == VisionPlayerCell {
				return row, col, true
			}
		}
	}
	return -1, -1, false
}

// Count returns how many cells hold each kind.
func (g *Grid) Count() map[Cell]int {
	counts := make(map[Cell]int, int(cellKindCount))
	for _, line := range g.cells {
		for _, c := range line {
			counts[c]++
		}
	}
	return counts
}

// ClearOverlay removes the vision overlay: lit floor becomes floor again and a lit
// player becomes a plain player.
func (g *Grid) ClearOverlay() {
	for _, line := range g.cells {
		for col, c := range line {
			switch c {
			case VisionCell:
				line[col] = FloorCell
			case VisionPlayerCell:
				line[col] = PlayerCell
			}
		}
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	clone := &Grid{size: g.size, cells: make([][]Cell, g.size)}
	for row := range g.cells {
		clone.cells[row] = append([]Cell(nil), g.cells[row]...)
	}
	return clone
}
