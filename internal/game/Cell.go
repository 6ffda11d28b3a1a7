package game

import "fmt"

// Cell is the kind of a single grid position. Exactly one kind occupies a
// coordinate at a time.
type Cell uint8

const (
	FloorCell Cell = iota
	WallCell
	ExitCell
	GuardCell
	PlayerCell
	VisionCell
	VisionPlayerCell

	cellKindCount
)

var cellNames = [...]string{
	FloorCell:        "Floor",
	WallCell:         "Wall",
	ExitCell:         "Exit",
	GuardCell:        "Guard",
	PlayerCell:       "Player",
	VisionCell:       "Vision",
	VisionPlayerCell: "VisionPlayer",
}

// persisted tokens; overlay kinds have none
var cellTokens = map[Cell]byte{
	FloorCell:  'F',
	WallCell:   'W',
	ExitCell:   'E',
	GuardCell:  'G',
	PlayerCell: 'P',
}

var tokenCells = map[byte]Cell{
	'F': FloorCell,
	'W': WallCell,
	'E': ExitCell,
	'G': GuardCell,
	'P': PlayerCell,
}

func (c Cell) Valid() bool {
	return c < cellKindCount
}

func (c Cell) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
	return cellNames[c]
}

// IsOverlay reports whether the cell is a transient vision marking.
func (c Cell) IsOverlay() bool {
	return c == VisionCell || c == VisionPlayerCell
}

// VisionLevel is the overlay value the UI reads for a cell.
type VisionLevel int

const (
	NotSeen VisionLevel = iota
	Seen
	SeenWithPlayer
)

func (v VisionLevel) String() string {
	switch v {
	case Seen:
		return "vision"
	case SeenWithPlayer:
		return "visionWithPlayer"
	default:
		return "none"
	}
}
