package game

import (
	"embed"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/Mshel/stealthgrid/internal/fsutil"
)

// Difficulty selects the level loaded on a new game.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var Difficulties = []Difficulty{Easy, Medium, Hard}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// TableSize is the grid size of the difficulty's level.
func (d Difficulty) TableSize() int {
	switch d {
	case Medium:
		return MediumTableSize
	case Hard:
		return HardTableSize
	default:
		return EasyTableSize
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return d, nil
		}
	}
	return Easy, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// LevelSource resolves the level definition for a difficulty.
type LevelSource interface {
	Open(d Difficulty) (io.ReadCloser, error)
}

//go:embed levels/*.txt
var embeddedLevels embed.FS

type embeddedLevelSource struct{}

// EmbeddedLevels serves the level definitions compiled into the binary.
func EmbeddedLevels() LevelSource {
	return embeddedLevelSource{}
}

func (embeddedLevelSource) Open(d Difficulty) (io.ReadCloser, error) {
	f, err := embeddedLevels.Open(path.Join("levels", d.String()+".txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s level: %w", d, err)
	}
	return f, nil
}

// DirLevels reads <dir>/<difficulty>.txt from fileSystem.
type DirLevels struct {
	FileSystem fsutil.FileSystem
	Dir        string
}

func (l DirLevels) Open(d Difficulty) (io.ReadCloser, error) {
	name := filepath.Join(l.Dir, d.String()+".txt")
	f, err := l.FileSystem.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open level %s: %w", name, err)
	}
	return f, nil
}
