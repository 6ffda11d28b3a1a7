package game

// ExitReachable reports whether an orthogonal path of non-wall cells joins
// the player to an exit. Guards do not block since they move every tick.
func ExitReachable(g *Grid) bool {
	row, col, ok := g.LocatePlayer()
	if !ok {
		return false
	}

	q := [][2]int{{row, col}}
	visited := map[[2]int]bool{{row, col}: true}

	for len(q) > 0 {
		current := q[0]
		q = q[1:]

		for _, f := range Facings {
			nextRow, nextCol := neighbour(current[0], current[1], f)
			next := [2]int{nextRow, nextCol}
			if !g.IsValidCoordinate(nextRow, nextCol) || g.IsWall(nextRow, nextCol) || visited[next] {
				continue
			}
			if g.IsExit(nextRow, nextCol) {
				return true
			}
			visited[next] = true
			q = append(q, next)
		}
	}
	return false
}
