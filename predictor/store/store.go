/* store.go
 * Contains the Store struct and checkpoint persistence. Every state change of a run is written
 * as a complete tournament snapshot in the run directory, so any checkpoint file can be passed
 * back in to resume the run.
 */

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"bracket-bot/predictor/shared"
)

const timestampLayout = "20060102_150405"

type Store struct {
	RunDir string
	logger *logrus.Logger
}

// NewStore creates a checkpoint store rooted at runDir, creating the directory if needed.
// Preconditions: runDir is a writable path
// Postconditions: returns a Store whose snapshot files land in runDir, or an error if the
// directory could not be created
func NewStore(runDir string, logger *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run directory %s: %w", runDir, err)
	}
	return &Store{RunDir: runDir, logger: logger}, nil
}

// LoadTournament reads a bracket or checkpoint file.
// Preconditions: path points at a JSON tournament snapshot
// Postconditions: returns the parsed tournament, or an error for missing or malformed files.
// A malformed bracket is not recoverable, callers should treat this error as fatal.
func LoadTournament(path string) (*shared.Tournament, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bracket file %s: %w", path, err)
	}

	var tournament shared.Tournament
	if err := json.Unmarshal(data, &tournament); err != nil {
		return nil, fmt.Errorf("malformed bracket file %s: %w", path, err)
	}
	if len(tournament.Rounds) == 0 {
		return nil, fmt.Errorf("malformed bracket file %s: no rounds", path)
	}
	return &tournament, nil
}

// SaveInitial snapshots the tournament before any prediction is made.
func (s *Store) SaveInitial(t *shared.Tournament) error {
	name := fmt.Sprintf("initial_bracket_%s.json", time.Now().Format(timestampLayout))
	return s.write(name, t)
}

// SaveCheckpoint snapshots the tournament after a game has been predicted.
func (s *Store) SaveCheckpoint(t *shared.Tournament, gameID string) error {
	return s.write(fmt.Sprintf("bracket_checkpoint_%s.json", gameID), t)
}

// SaveErrorCheckpoint snapshots the tournament with the run error recorded, so the failed game
// can be retried from exactly this state.
func (s *Store) SaveErrorCheckpoint(t *shared.Tournament, gameID string, runErr error) error {
	t.Error = &shared.RunError{
		GameID:       gameID,
		ErrorMessage: runErr.Error(),
		Timestamp:    time.Now().Format(time.RFC3339),
	}
	err := s.write(fmt.Sprintf("error_checkpoint_%s.json", gameID), t)
	t.Error = nil
	return err
}

// SaveRoundCheckpoint snapshots the tournament once roundNumber has fully completed and the
// following round has been generated. The file is named for the completed round.
func (s *Store) SaveRoundCheckpoint(t *shared.Tournament, roundNumber int) error {
	return s.write(fmt.Sprintf("bracket_checkpoint_round_%d.json", roundNumber), t)
}

// SaveFinal writes the completed bracket twice: a timestamped snapshot and the canonical
// final_bracket.json the report generator reads.
func (s *Store) SaveFinal(t *shared.Tournament) (string, error) {
	name := fmt.Sprintf("final_bracket_%s.json", time.Now().Format(timestampLayout))
	if err := s.write(name, t); err != nil {
		return "", err
	}
	if err := s.write("final_bracket.json", t); err != nil {
		return "", err
	}
	return filepath.Join(s.RunDir, "final_bracket.json"), nil
}

func (s *Store) write(name string, t *shared.Tournament) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tournament: %w", err)
	}

	path := filepath.Join(s.RunDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.logger.Debugf("Saved snapshot %s", name)
	return nil
}
