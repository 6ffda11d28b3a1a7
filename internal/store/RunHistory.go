// Package store keeps the history of finished runs in sqlite and serves the
// leaderboard shown after a run.
package store

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/Mshel/stealthgrid/internal/game"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const DefaultDBPath = "stealth_runs.db"
const tableName = "runs"

// Run is one finished game.
type Run struct {
	ID         string
	PlayerName string
	Difficulty game.Difficulty
	Outcome    game.Outcome
	Ticks      int
	Moves      int
	CreatedAt  time.Time
}

type RunHistoryService struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens (or creates) the database at path and ensures the runs table.
func Open(path string, logger *log.Logger) (*RunHistoryService, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history %s: %w", path, err)
	}

	service := &RunHistoryService{db: db, logger: logger}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return service, nil
}

func (s *RunHistoryService) Close() error {
	return s.db.Close()
}

// createTable creates the runs table if it does not exist.
func (s *RunHistoryService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id TEXT PRIMARY KEY,
		player_name TEXT NOT NULL,
		difficulty INTEGER NOT NULL,
		outcome INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);`

	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	s.logger.Debug("Run history table ensured.")
	return nil
}

// RecordRun stores a finished run and returns it with its generated ID.
// Runs that are still in progress are rejected.
func (s *RunHistoryService) RecordRun(playerName string, d game.Difficulty, outcome game.Outcome, ticks, moves int) (Run, error) {
	if outcome == game.Playing {
		return Run{}, fmt.Errorf("failed to record run for %s: run is not finished", playerName)
	}

	run := Run{
		ID:         uuid.NewString(),
		PlayerName: playerName,
		Difficulty: d,
		Outcome:    outcome,
		Ticks:      ticks,
		Moves:      moves,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}

	const insertSQL = `
	INSERT INTO ` + tableName + ` (id, player_name, difficulty, outcome, ticks, moves, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);`

	_, err := s.db.Exec(insertSQL, run.ID, run.PlayerName, int(run.Difficulty), int(run.Outcome),
		run.Ticks, run.Moves, run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run for %s: %w", playerName, err)
	}

	s.logger.Info("Run recorded", "id", run.ID, "player", playerName, "difficulty", d, "outcome", outcome)
	return run, nil
}

// GetLeaderboard returns escaped runs for d, fewest moves first, then fewest
// ticks, then oldest.
func (s *RunHistoryService) GetLeaderboard(d game.Difficulty, limit, offset int) ([]Run, error) {
	const selectSQL = `
	SELECT id, player_name, difficulty, outcome, ticks, moves, created_at
	FROM ` + tableName + `
	WHERE difficulty = ? AND outcome = ?
	ORDER BY moves ASC, ticks ASC, created_at ASC
	LIMIT ? OFFSET ?;`

	rows, err := s.db.Query(selectSQL, int(d), int(game.Escaped), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var difficulty, outcome int
		var createdAt string
		if err := rows.Scan(&run.ID, &run.PlayerName, &difficulty, &outcome, &run.Ticks, &run.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		run.Difficulty = game.Difficulty(difficulty)
		run.Outcome = game.Outcome(outcome)

		parsed, err := time.Parse(time.RFC3339, createdAt)
		if err == nil {
			run.CreatedAt = parsed
		} else {
			s.logger.Warn("Time parsing error for run", "id", run.ID, "raw", createdAt, "error", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return runs, nil
}

// CountRuns returns how many runs for d ended with outcome.
func (s *RunHistoryService) CountRuns(d game.Difficulty, outcome game.Outcome) (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + ` WHERE difficulty = ? AND outcome = ?;`
	var count int
	if err := s.db.QueryRow(countSQL, int(d), int(outcome)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

func (s *RunHistoryService) GetTotalRunCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	if err := s.db.QueryRow(countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get total run count: %w", err)
	}
	return count, nil
}
