package store

import (
	"path/filepath"
	"testing"

	"github.com/Mshel/stealthgrid/internal/game"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *RunHistoryService {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordRun(t *testing.T) {
	s := openTemp(t)

	run, err := s.RecordRun("mallory", game.Medium, game.Escaped, 12, 40)
	require.NoError(t, err)

	_, err = uuid.Parse(run.ID)
	assert.NoError(t, err)
	assert.False(t, run.CreatedAt.IsZero())

	total, err := s.GetTotalRunCount()
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestRecordRun_RejectsUnfinished(t *testing.T) {
	s := openTemp(t)

	_, err := s.RecordRun("mallory", game.Easy, game.Playing, 1, 1)
	assert.Error(t, err)

	total, err := s.GetTotalRunCount()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGetLeaderboard_RanksEscapesByMoves(t *testing.T) {
	s := openTemp(t)

	_, err := s.RecordRun("slow", game.Easy, game.Escaped, 30, 50)
	require.NoError(t, err)
	_, err = s.RecordRun("fast", game.Easy, game.Escaped, 40, 20)
	require.NoError(t, err)
	_, err = s.RecordRun("tied", game.Easy, game.Escaped, 10, 20)
	require.NoError(t, err)
	_, err = s.RecordRun("caught", game.Easy, game.Caught, 1, 1)
	require.NoError(t, err)
	_, err = s.RecordRun("other", game.Hard, game.Escaped, 1, 1)
	require.NoError(t, err)

	runs, err := s.GetLeaderboard(game.Easy, 10, 0)
	require.NoError(t, err)

	var names []string
	for _, r := range runs {
		names = append(names, r.PlayerName)
		assert.Equal(t, game.Easy, r.Difficulty)
		assert.Equal(t, game.Escaped, r.Outcome)
	}
	assert.Equal(t, []string{"tied", "fast", "slow"}, names)

	page, err := s.GetLeaderboard(game.Easy, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "fast", page[0].PlayerName)
}

func TestCountRuns(t *testing.T) {
	s := openTemp(t)
	for i := 0; i < 3; i++ {
		_, err := s.RecordRun("p", game.Hard, game.Caught, i, i)
		require.NoError(t, err)
	}
	_, err := s.RecordRun("p", game.Hard, game.Escaped, 5, 5)
	require.NoError(t, err)

	caught, err := s.CountRuns(game.Hard, game.Caught)
	require.NoError(t, err)
	assert.Equal(t, 3, caught)

	escaped, err := s.CountRuns(game.Easy, game.Escaped)
	require.NoError(t, err)
	assert.Zero(t, escaped)
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := Open(path, nil)
	require.NoError(t, err)
	_, err = s.RecordRun("p", game.Easy, game.Escaped, 1, 2)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.GetLeaderboard(game.Easy, 5, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
