/* store_test.go
 * Contains unit tests for store.go
 */

package store

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracket-bot/predictor/shared"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testTournament() *shared.Tournament {
	return &shared.Tournament{
		TournamentName: "Test Tournament",
		CurrentRound:   1,
		Rounds: []shared.Round{
			{
				RoundNumber: 1,
				RoundName:   "First Round",
				Games: []shared.Game{
					{
						GameID: "R1G1",
						Region: "South",
						Team1:  shared.Team{Name: "Auburn", Seed: 1},
						Team2:  shared.Team{Name: "Alabama State", Seed: 16},
					},
				},
			},
		},
	}
}

func TestSaveCheckpointRoundTrips(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, testLogger())
	require.NoError(t, err)

	tournament := testTournament()
	winner := "Auburn"
	confidence := 95
	tournament.Rounds[0].Games[0].PredictedWinner = &winner
	tournament.Rounds[0].Games[0].Confidence = &confidence
	gameID := "R1G1"
	tournament.LastCompletedGameID = &gameID

	require.NoError(t, s.SaveCheckpoint(tournament, "R1G1"))

	loaded, err := LoadTournament(filepath.Join(dir, "bracket_checkpoint_R1G1.json"))
	require.NoError(t, err)
	assert.Equal(t, "Test Tournament", loaded.TournamentName)
	require.NotNil(t, loaded.LastCompletedGameID)
	assert.Equal(t, "R1G1", *loaded.LastCompletedGameID)
	require.NotNil(t, loaded.Rounds[0].Games[0].PredictedWinner)
	assert.Equal(t, "Auburn", *loaded.Rounds[0].Games[0].PredictedWinner)
	assert.Equal(t, 95, *loaded.Rounds[0].Games[0].Confidence)
}

func TestSaveErrorCheckpointRecordsAndClearsError(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, testLogger())
	require.NoError(t, err)

	tournament := testTournament()
	require.NoError(t, s.SaveErrorCheckpoint(tournament, "R1G1", errors.New("oracle unreachable")))

	// The error is persisted in the snapshot but not left on the in-memory tournament.
	assert.Nil(t, tournament.Error)

	loaded, err := LoadTournament(filepath.Join(dir, "error_checkpoint_R1G1.json"))
	require.NoError(t, err)
	require.NotNil(t, loaded.Error)
	assert.Equal(t, "R1G1", loaded.Error.GameID)
	assert.Equal(t, "oracle unreachable", loaded.Error.ErrorMessage)
	assert.NotEmpty(t, loaded.Error.Timestamp)
}

func TestSaveFinalWritesCanonicalAndTimestampedFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, testLogger())
	require.NoError(t, err)

	path, err := s.SaveFinal(testTournament())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "final_bracket.json"), path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.Contains(t, names, "final_bracket.json")
	require.Len(t, names, 2)

	_, err = LoadTournament(path)
	assert.NoError(t, err)
}

func TestSaveRoundCheckpointNaming(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, testLogger())
	require.NoError(t, err)

	require.NoError(t, s.SaveRoundCheckpoint(testTournament(), 2))

	_, err = os.Stat(filepath.Join(dir, "bracket_checkpoint_round_2.json"))
	assert.NoError(t, err)
}

func TestLoadTournamentRejectsMalformedFiles(t *testing.T) {
	dir := t.TempDir()

	badJSON := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{not json"), 0o644))
	_, err := LoadTournament(badJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"tournament_name":"x"}`), 0o644))
	_, err = LoadTournament(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rounds")

	_, err = LoadTournament(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
