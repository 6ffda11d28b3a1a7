package game

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// scenarioLevel is a 10x10 room bordered by walls with the player at (8,1),
// the exit at (1,8) and one guard at (4,2).
const scenarioLevel = `10
W W W W W W W W W W
W F F F F F F F E W
W F F F F F F F F W
W F F F F F F F F W
W F G F F F F F F W
W F F F F F F F F W
W F F F F F F F F W
W F F F F F F F F W
W P F F F F F F F W
W W W W W W W W W W
`

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func mustParse(t *testing.T, level string) (*Grid, []Guard) {
	t.Helper()
	grid, guards, err := ParseLevel(strings.NewReader(level), seeded(1))
	require.NoError(t, err)
	return grid, guards
}

func mustCell(t *testing.T, g *Grid, row, col int) Cell {
	t.Helper()
	c, err := g.Get(row, col)
	require.NoError(t, err)
	return c
}

// checkPartition asserts every cell holds exactly one known kind.
func checkPartition(t *testing.T, g *Grid) {
	t.Helper()
	total := 0
	for kind, n := range g.Count() {
		require.True(t, kind.Valid(), "unknown kind %v", kind)
		total += n
	}
	require.Equal(t, g.Size()*g.Size(), total)
}

func marshalLevel(g *Grid) []byte {
	var buf bytes.Buffer
	_ = SerializeLevel(&buf, g)
	return buf.Bytes()
}

// rows returns a copy of the cells, row-major.
func (g *Grid) rows() [][]Cell {
	return g.Clone().cells
}

// guardsMatchGrid reports whether the roster positions are exactly the
// grid's guard cells.
func guardsMatchGrid(g *Grid, guards []Guard) bool {
	seen := make(map[[2]int]bool, len(guards))
	for _, gd := range guards {
		pos := [2]int{gd.Row, gd.Col}
		if seen[pos] || !g.IsGuard(gd.Row, gd.Col) {
			return false
		}
		seen[pos] = true
	}
	return g.Count()[GuardCell] == len(guards)
}
