package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openRoom is the scenario room with the west wall removed on row 4, so
// nothing stands between the guard at (4,2) and (4,0).
const openRoom = `10
W W W W W W W W W W
W F F F F F F F E W
W F F F F F F F F W
W F F F F F F F F W
F F G F F F F F F W
W F F F F F F F F W
W F F F F F F F F W
W F F F F F F F F W
W P F F F F F F F W
W W W W W W W W W W
`

func TestRecompute_ScenarioReachesTwoCellsWest(t *testing.T) {
	g, guards := mustParse(t, openRoom)

	Recompute(g, guards, 2)

	assert.Equal(t, VisionCell, mustCell(t, g, 4, 0))
	assert.Equal(t, Seen, g.Overlay(4, 0))
	assert.Equal(t, GuardCell, mustCell(t, g, 4, 2), "the guard's own cell is never lit")
}

func TestRecompute_SquareInOpenSpace(t *testing.T) {
	g, guards := mustParse(t, scenarioLevel)
	require.NoError(t, g.Set(4, 2, FloorCell))
	require.NoError(t, g.Set(5, 5, GuardCell))
	guards[0] = Guard{Row: 5, Col: 5}

	Recompute(g, guards, 2)

	for row := 3; row <= 7; row++ {
		for col := 3; col <= 7; col++ {
			if row == 5 && col == 5 {
				continue
			}
			assert.Equal(t, VisionCell, mustCell(t, g, row, col), "(%d,%d)", row, col)
		}
	}
	assert.Equal(t, 24, g.Count()[VisionCell])
	assert.Equal(t, NotSeen, g.Overlay(2, 5))
}

func TestRecompute_WallOccludes(t *testing.T) {
	level := `7
F F F F F F F
F F F F F F F
F F F F F F F
F W G F F F F
F F F F F F F
F F F F F F F
F F F F F F F
`
	g, guards := mustParse(t, level)

	Recompute(g, guards, 2)

	assert.Equal(t, WallCell, mustCell(t, g, 3, 1), "walls are never lit")
	assert.Equal(t, FloorCell, mustCell(t, g, 3, 0), "cell behind the wall stays dark")
	// (2,1) is reached by the vertical sweep via row 2, but the horizontal
	// sweep cannot get past the wall on row 3, so the intersection is dark.
	assert.Equal(t, FloorCell, mustCell(t, g, 2, 1))
	assert.Equal(t, FloorCell, mustCell(t, g, 4, 0))
	assert.Equal(t, VisionCell, mustCell(t, g, 2, 2))
	assert.Equal(t, VisionCell, mustCell(t, g, 3, 4))
	assert.Equal(t, 14, g.Count()[VisionCell])
}

func TestRecompute_ExitOccludesAndStaysExit(t *testing.T) {
	level := `5
F F F F F
F F F F F
F F G E F
F F F F F
F F F F F
`
	g, guards := mustParse(t, level)

	Recompute(g, guards, 2)

	assert.Equal(t, ExitCell, mustCell(t, g, 2, 3))
	assert.Equal(t, FloorCell, mustCell(t, g, 2, 4))
	assert.Equal(t, VisionCell, mustCell(t, g, 2, 1))
}

func TestRecompute_GuardsAreNotLitButDoNotBlock(t *testing.T) {
	level := `5
F F F F F
F F F F F
G G F F F
F F F F F
F F F F F
`
	g, guards := mustParse(t, level)

	Recompute(g, guards, 2)

	assert.Equal(t, GuardCell, mustCell(t, g, 2, 0))
	assert.Equal(t, GuardCell, mustCell(t, g, 2, 1))
	assert.Equal(t, VisionCell, mustCell(t, g, 2, 3))
	assert.True(t, guardsMatchGrid(g, guards))
}

func TestRecompute_PlayerInSightIsDetected(t *testing.T) {
	g, guards := mustParse(t, scenarioLevel)
	require.NoError(t, g.Set(8, 1, FloorCell))
	require.NoError(t, g.Set(6, 2, PlayerCell))

	Recompute(g, guards, 2)

	assert.Equal(t, VisionPlayerCell, mustCell(t, g, 6, 2))
	assert.Equal(t, SeenWithPlayer, g.Overlay(6, 2))
	assert.True(t, Detected(g))
}

func TestRecompute_ResetsPreviousOverlay(t *testing.T) {
	g, guards := mustParse(t, scenarioLevel)
	Recompute(g, guards, 2)
	require.Equal(t, VisionCell, mustCell(t, g, 4, 4))

	require.NoError(t, g.Set(4, 2, FloorCell))
	require.NoError(t, g.Set(7, 7, GuardCell))
	guards[0] = Guard{Row: 7, Col: 7}
	Recompute(g, guards, 2)

	assert.Equal(t, FloorCell, mustCell(t, g, 4, 4))
	assert.Equal(t, VisionCell, mustCell(t, g, 6, 6))
}

func TestRecompute_ZeroRangeLightsNothing(t *testing.T) {
	g, guards := mustParse(t, scenarioLevel)

	Recompute(g, guards, 0)

	assert.Zero(t, g.Count()[VisionCell])
	assert.False(t, Detected(g))
}

func TestDetected_MatchesVisionPlayerCells(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		f, err := EmbeddedLevels().Open(Easy)
		require.NoError(t, err)
		g, guards, err := ParseLevel(f, seeded(seed))
		f.Close()
		require.NoError(t, err)

		rng := seeded(seed)
		for tick := 0; tick < 50; tick++ {
			AdvanceAll(g, guards, rng)
			Recompute(g, guards, GuardVisionRange)
			assert.Equal(t, g.Count()[VisionPlayerCell] > 0, Detected(g))
		}
	}
}
