package game

// axis is a unit step along a row or a column.
type axis struct{ dRow, dCol int }

var (
	alongColumn = axis{dRow: 1}
	alongRow    = axis{dCol: 1}
)

// Recompute rebuilds the vision overlay from scratch. Every guard lights the
// cells reached by both of its sweeps (see footprint); a lit player cell
// becomes VisionPlayerCell, any other lit cell VisionCell. Walls, exits and
// guards are never overwritten. Facing is ignored: sight is omnidirectional
// up to visionRange.
func Recompute(g *Grid, guards []Guard, visionRange int) {
	g.ClearOverlay()
	if visionRange < 0 {
		return
	}

	for _, gd := range guards {
		for _, pos := range footprint(g, gd, visionRange) {
			switch g.cells[pos[0]][pos[1]] {
			case PlayerCell, VisionPlayerCell:
				g.cells[pos[0]][pos[1]] = VisionPlayerCell
			case FloorCell, VisionCell:
				g.cells[pos[0]][pos[1]] = VisionCell
			}
		}
	}
}

// Detected reports whether any guard currently sees the player.
func Detected(g *Grid) bool {
	for _, line := range g.cells {
		for _, c := range line {
			if c == VisionPlayerCell {
				return true
			}
		}
	}
	return false
}

// Overlay returns the vision value of a cell; invalid coordinates are unseen.
func (g *Grid) Overlay(row, col int) VisionLevel {
	switch {
	case g.IsVision(row, col):
		return Seen
	case g.IsVisionPlayer(row, col):
		return SeenWithPlayer
	}
	return NotSeen
}

func (g *Grid) blocksSight(row, col int) bool {
	return g.IsWall(row, col) || g.IsExit(row, col)
}

func (g *Grid) lightable(row, col int) bool {
	return g.IsValidCoordinate(row, col) && !g.IsWall(row, col) && !g.IsGuard(row, col)
}

// footprint returns the cells lit by one guard. The vertical sweep walks up
// and down the guard's column and from every reached row walks left and
// right; the horizontal sweep is the transpose. Each walk covers offsets
// 0..n and stops at the first wall or exit, which stays dark. Only cells hit
// by both sweeps are lit.
func footprint(g *Grid, gd Guard, n int) [][2]int {
	width := 2*n + 1
	vertical := make([]bool, width*width)
	horizontal := make([]bool, width*width)

	sweep(g, gd, n, alongColumn, alongRow, vertical)
	sweep(g, gd, n, alongRow, alongColumn, horizontal)

	var lit [][2]int
	for i := range vertical {
		if vertical[i] && horizontal[i] {
			lit = append(lit, [2]int{gd.Row + i/width - n, gd.Col + i%width - n})
		}
	}
	return lit
}

// sweep marks into area (a (2n+1)² window centred on the guard) every cell
// reached by walking along outer and then, from each reached cell, along
// inner.
func sweep(g *Grid, gd Guard, n int, outer, inner axis, area []bool) {
	width := 2*n + 1
	mark := func(row, col int) {
		area[(row-gd.Row+n)*width+(col-gd.Col+n)] = true
	}

	for _, outerSign := range [2]int{-1, 1} {
		for i := 0; i <= n; i++ {
			row := gd.Row + outerSign*i*outer.dRow
			col := gd.Col + outerSign*i*outer.dCol
			if g.blocksSight(row, col) {
				break
			}

			for _, innerSign := range [2]int{-1, 1} {
				for j := 0; j <= n; j++ {
					r := row + innerSign*j*inner.dRow
					c := col + innerSign*j*inner.dCol
					if g.blocksSight(r, c) {
						break
					}
					if g.lightable(r, c) {
						mark(r, c)
					}
				}
			}
		}
	}
}
