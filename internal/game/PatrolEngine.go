package game

import "math/rand"

// AdvanceAll moves every guard one step, strictly in roster order: a guard
// that already moved this call is an obstacle at its new cell for the guards
// after it. The vision overlay is cleared first so guards walk on raw
// geometry.
func AdvanceAll(g *Grid, guards []Guard, rng *rand.Rand) {
	g.ClearOverlay()

	for i := range guards {
		advanceGuard(g, &guards[i], rng)
	}
}

func neighbour(row, col int, f Facing) (int, int) {
	dRow, dCol := f.Delta()
	return row + dRow, col + dCol
}

// enclosed reports a guard with no floor, exit or guard next to it.
func enclosed(g *Grid, gd Guard) bool {
	for _, f := range Facings {
		row, col := neighbour(gd.Row, gd.Col, f)
		if g.IsFloor(row, col) || g.IsExit(row, col) || g.IsGuard(row, col) {
			return false
		}
	}
	return true
}

// blocked reports whether a guard cannot step onto (row, col). Exits and
// other guards stop it just like walls; so does the player, who is never
// overwritten by a patrol step.
func blocked(g *Grid, row, col int) bool {
	return !g.IsFloor(row, col)
}

func advanceGuard(g *Grid, gd *Guard, rng *rand.Rand) {
	if enclosed(g, *gd) {
		return
	}

	facing := gd.Facing
	row, col := neighbour(gd.Row, gd.Col, facing)

	for redraws := 0; blocked(g, row, col); redraws++ {
		if redraws == maxFacingRedraws {
			var open bool
			if facing, open = firstOpenFacing(g, *gd, facing); !open {
				// only exits or guards around it: hold position this tick
				gd.Facing = facing
				return
			}
			row, col = neighbour(gd.Row, gd.Col, facing)
			break
		}
		facing = randomFacing(rng)
		row, col = neighbour(gd.Row, gd.Col, facing)
	}

	g.cells[gd.Row][gd.Col] = FloorCell
	g.cells[row][col] = GuardCell
	gd.Row, gd.Col, gd.Facing = row, col, facing
}

// firstOpenFacing checks the four facings clockwise from start and returns
// the first one whose neighbour is floor.
func firstOpenFacing(g *Grid, gd Guard, start Facing) (Facing, bool) {
	for i := range Facings {
		f := Facings[(int(start)+i)%len(Facings)]
		if row, col := neighbour(gd.Row, gd.Col, f); !blocked(g, row, col) {
			return f, true
		}
	}
	return start, false
}
