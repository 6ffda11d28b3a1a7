package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Mshel/stealthgrid/internal/fsutil"
	"github.com/Mshel/stealthgrid/internal/game"
	"github.com/Mshel/stealthgrid/internal/store"
	"github.com/Mshel/stealthgrid/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	difficultyFlag := flag.String("difficulty", "easy", "starting difficulty: easy, medium or hard")
	seed := flag.Int64("seed", 0, "seed for guard facings (0 picks one from the clock)")
	dbPath := flag.String("db", store.DefaultDBPath, "run history database; empty disables it")
	levelsDir := flag.String("levels", "", "directory with easy.txt, medium.txt and hard.txt")
	logFile := flag.String("log", "", "write logs to this file")
	flag.Parse()

	difficulty, err := game.ParseDifficulty(*difficultyFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// The alternate screen owns the terminal, so logs only go to a file.
	logger := log.New(io.Discard)
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "stealth")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.New(f)
		if level, err := log.ParseLevel(os.Getenv("STEALTH_LOG_LEVEL")); err == nil {
			logger.SetLevel(level)
		}
	}

	var runs *store.RunHistoryService
	if *dbPath != "" {
		runs, err = store.Open(*dbPath, logger)
		if err != nil {
			logger.Error("Run history disabled", "error", err)
			runs = nil
		} else {
			defer runs.Close()
		}
	}

	sessionOpts := []game.Option{game.WithLogger(logger)}
	if *seed != 0 {
		sessionOpts = append(sessionOpts, game.WithSeed(*seed))
	}
	if *levelsDir != "" {
		sessionOpts = append(sessionOpts, game.WithLevelSource(game.DirLevels{FileSystem: fsutil.OSFileSystem{}, Dir: *levelsDir}))
	}

	opts := ui.Options{
		NewSession: func() *game.Session { return game.NewSession(sessionOpts...) },
		Runs:       runs,
		Logger:     logger,
		PlayerName: os.Getenv("USER"),
		Difficulty: difficulty,
	}

	p := tea.NewProgram(ui.NewControllerModel(opts, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
