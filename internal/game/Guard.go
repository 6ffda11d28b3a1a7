package game

import (
	"fmt"
	"math/rand"
)

// Facing is a guard's orthogonal movement direction.
type Facing int

const (
	Up Facing = iota
	Right
	Down
	Left
)

var Facings = [4]Facing{Up, Right, Down, Left}

// row/col delta per facing
var facingDeltas = [4][2]int{
	Up:    {-1, 0},
	Right: {0, 1},
	Down:  {1, 0},
	Left:  {0, -1},
}

func (f Facing) Delta() (dRow, dCol int) {
	d := facingDeltas[f&3]
	return d[0], d[1]
}

func (f Facing) String() string {
	switch f {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	}
	return fmt.Sprintf("Facing(%d)", int(f))
}

func randomFacing(rng *rand.Rand) Facing {
	return Facings[rng.Intn(len(Facings))]
}

// Guard is a patrolling guard. Its position always matches a Guard cell of
// the grid it patrols.
type Guard struct {
	Row    int
	Col    int
	Facing Facing
}
