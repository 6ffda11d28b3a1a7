package game

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

func newProcessRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- game only
}

// ParseLevel reads a level or save file:
//
//	N
//	N lines of N space separated tokens from P E G W F
//
// Guards are collected in row-major order, each with a random facing drawn
// from rng (a time seeded generator when rng is nil). Every failure wraps
// ErrDataAccess and nothing is returned unless the whole input parsed.
func ParseLevel(r io.Reader, rng *rand.Rand) (*Grid, []Guard, error) {
	if rng == nil {
		rng = newProcessRand()
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	nextLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNo++
		return strings.TrimRight(scanner.Text(), "\r"), true
	}

	header, ok := nextLine()
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to read level header: %w: %w", ErrDataAccess, err)
		}
		return nil, nil, fmt.Errorf("empty level: %w", ErrDataAccess)
	}

	size, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil {
		return nil, nil, fmt.Errorf("level size on line %d is not an integer: %w", lineNo, ErrDataAccess)
	}
	if size > MaxTableSize {
		return nil, nil, fmt.Errorf("level size %d exceeds %d: %w", size, MaxTableSize, ErrDataAccess)
	}
	grid, err := NewGrid(size)
	if err != nil {
		return nil, nil, fmt.Errorf("level size %d: %w", size, ErrDataAccess)
	}

	guards := []Guard{}
	for row := 0; row < size; row++ {
		line, ok := nextLine()
		if !ok {
			if err := scanner.Err(); err != nil {
				return nil, nil, fmt.Errorf("failed to read level row %d: %w: %w", row, ErrDataAccess, err)
			}
			return nil, nil, fmt.Errorf("level declares %d rows, found %d: %w", size, row, ErrDataAccess)
		}

		tokens := strings.Fields(line)
		if len(tokens) != size {
			return nil, nil, fmt.Errorf("line %d has %d tokens, want %d: %w", lineNo, len(tokens), size, ErrDataAccess)
		}

		for col, token := range tokens {
			if len(token) != 1 {
				return nil, nil, fmt.Errorf("line %d column %d: token is not a single character: %w", lineNo, col+1, ErrDataAccess)
			}
			kind, known := tokenCells[token[0]]
			if !known {
				return nil, nil, fmt.Errorf("line %d column %d: unknown token: %w", lineNo, col+1, ErrDataAccess)
			}
			grid.cells[row][col] = kind

			if kind == GuardCell {
				guards = append(guards, Guard{Row: row, Col: col, Facing: randomFacing(rng)})
			}
		}
	}

	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		if strings.TrimSpace(line) != "" {
			return nil, nil, fmt.Errorf("unexpected data after %d rows on line %d: %w", size, lineNo, ErrDataAccess)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read level: %w: %w", ErrDataAccess, err)
	}

	return grid, guards, nil
}

// SerializeLevel writes g in the format ParseLevel reads. Overlay cells, lit
// floor and lit player alike, are written as F.
func SerializeLevel(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n", g.size)
	for _, line := range g.cells {
		for col, c := range line {
			if col > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteByte(persistedToken(c))
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write level: %w: %w", ErrDataAccess, err)
	}
	return nil
}

func persistedToken(c Cell) byte {
	if c.IsOverlay() {
		return cellTokens[FloorCell]
	}
	return cellTokens[c]
}
