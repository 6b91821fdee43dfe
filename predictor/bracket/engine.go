/* engine.go
 * Contains the Engine struct driving a bracket run. The engine walks rounds and games in order,
 * skips games a checkpoint already resolved, predicts the rest, and snapshots the tournament
 * after every state change so a killed run can resume from its last checkpoint.
 */

package bracket

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"bracket-bot/predictor/oracle"
	"bracket-bot/predictor/shared"
	"bracket-bot/predictor/store"
)

// Predictor produces a prediction for one game. This allows for mocking in tests.
type Predictor interface {
	PredictGame(ctx context.Context, game *shared.Game, evidence []oracle.Summary) shared.Prediction
}

// Enricher gathers web evidence for one game before it is predicted.
type Enricher interface {
	GatherEvidence(ctx context.Context, game *shared.Game) []oracle.Summary
}

// Options controls run behavior.
type Options struct {
	// TestMode predicts only the first two pending games and stops without finalizing.
	TestMode bool
	// Offline skips the oracle and enrichment entirely, predicting every game from seed
	// matchup history. Useful for validating a bracket file without network access.
	Offline bool
	// Strict aborts the run on the first per-game failure instead of continuing.
	Strict bool
}

type Engine struct {
	store     store.Interface
	predictor Predictor
	enricher  Enricher
	opts      Options
	logger    *logrus.Logger
}

// NewEngine creates a bracket engine. enricher may be nil to skip web research.
func NewEngine(st store.Interface, predictor Predictor, enricher Enricher, opts Options, logger *logrus.Logger) *Engine {
	return &Engine{
		store:     st,
		predictor: predictor,
		enricher:  enricher,
		opts:      opts,
		logger:    logger,
	}
}

/* Run predicts every unresolved game in the tournament.
 * Preconditions: t was loaded from a bracket or checkpoint file and has at least one round
 * Postconditions: on success the final bracket is saved and its path returned. In test mode the
 * run stops early and the returned path is empty. Per-game failures write an error checkpoint
 * and continue unless Strict is set.
 */
func (e *Engine) Run(ctx context.Context, t *shared.Tournament) (string, error) {
	if err := validateResume(t); err != nil {
		return "", err
	}

	resuming := t.LastCompletedGameID != nil
	resumePoint := ""
	if resuming {
		resumePoint = *t.LastCompletedGameID
		e.logger.Infof("Resuming run after game %s", resumePoint)
	} else {
		if err := e.store.SaveInitial(t); err != nil {
			return "", fmt.Errorf("failed to save initial bracket: %w", err)
		}
	}

	startRound := t.CurrentRound
	if startRound < 1 {
		startRound = 1
	}

	processed := 0
	for roundNum := startRound; roundNum <= len(t.Rounds); roundNum++ {
		t.CurrentRound = roundNum
		round := &t.Rounds[roundNum-1]
		e.logger.Infof("Processing round %d (%s) with %d games", roundNum, round.RoundName, len(round.Games))

		for i := range round.Games {
			game := &round.Games[i]
			if game.Predicted() {
				e.logger.Debugf("Skipping %s, already predicted: %s", game.GameID, *game.PredictedWinner)
				continue
			}

			// While resuming, prediction restarts at the game whose bracket-position
			// predecessor is the checkpoint's last completed game. Unpredicted games before
			// that point are never re-predicted.
			if resuming {
				if shared.PreviousGameID(game.GameID, t) != resumePoint {
					e.logger.Warnf("Skipping %s while resuming: checkpoint marks %s as last completed",
						game.GameID, resumePoint)
					continue
				}
				resuming = false
			}

			if err := e.predictAndCheckpoint(ctx, t, game); err != nil {
				if e.opts.Strict {
					return "", err
				}
				e.logger.Errorf("Continuing after failure on %s: %v", game.GameID, err)
			}

			processed++
			if e.opts.TestMode && processed >= 2 {
				e.logger.Info("Test mode: stopping after two games")
				return "", nil
			}
		}

		if roundNum < len(t.Rounds) {
			if !IsRoundComplete(round) {
				return "", fmt.Errorf("round %d finished processing with unresolved games", roundNum)
			}
			if err := GenerateNextRound(t, roundNum); err != nil {
				return "", fmt.Errorf("failed to generate round %d: %w", roundNum+1, err)
			}
			// The round checkpoint is named for the round that just completed
			if err := e.store.SaveRoundCheckpoint(t, roundNum); err != nil {
				return "", fmt.Errorf("failed to save round checkpoint: %w", err)
			}
			e.logger.Infof("Round %d complete, generated %d games for round %d",
				roundNum, len(t.Rounds[roundNum].Games), roundNum+1)
		}
	}

	path, err := e.store.SaveFinal(t)
	if err != nil {
		return "", fmt.Errorf("failed to save final bracket: %w", err)
	}
	e.logger.Infof("Bracket complete. Predicted champion: %s", t.Champion())
	return path, nil
}

// predictAndCheckpoint resolves one game and snapshots the tournament. Failures are recorded
// in an error checkpoint before being returned.
func (e *Engine) predictAndCheckpoint(ctx context.Context, t *shared.Tournament, game *shared.Game) error {
	if game.Team1.Name == "" || game.Team2.Name == "" {
		err := fmt.Errorf("game %s is missing a team", game.GameID)
		e.saveErrorCheckpoint(t, game.GameID, err)
		return err
	}

	e.logger.Infof("Predicting %s: %s", game.GameID, game.Matchup())

	var prediction shared.Prediction
	if e.opts.Offline {
		prediction = offlinePrediction(game)
	} else {
		var evidence []oracle.Summary
		if e.enricher != nil {
			evidence = e.enricher.GatherEvidence(ctx, game)
		}
		prediction = e.predictor.PredictGame(ctx, game, evidence)
	}

	game.ApplyPrediction(prediction)
	gameID := game.GameID
	t.LastCompletedGameID = &gameID

	if err := e.store.SaveCheckpoint(t, game.GameID); err != nil {
		err = fmt.Errorf("failed to checkpoint %s: %w", game.GameID, err)
		e.saveErrorCheckpoint(t, game.GameID, err)
		return err
	}
	return nil
}

func (e *Engine) saveErrorCheckpoint(t *shared.Tournament, gameID string, runErr error) {
	if err := e.store.SaveErrorCheckpoint(t, gameID, runErr); err != nil {
		e.logger.Errorf("Failed to save error checkpoint for %s: %v", gameID, err)
	}
}

// offlinePrediction resolves a game deterministically: the better seed wins with confidence
// scaled by the seed gap, clamped to [55,95].
func offlinePrediction(game *shared.Game) shared.Prediction {
	diff := game.Team1.Seed - game.Team2.Seed
	if diff < 0 {
		diff = -diff
	}
	confidence := 50 + 5*diff
	if confidence < 55 {
		confidence = 55
	}
	if confidence > 95 {
		confidence = 95
	}

	winner := game.BetterSeed()
	loser := game.Team1
	if loser.Name == winner.Name {
		loser = game.Team2
	}
	return shared.Prediction{
		PredictedWinner: winner.Name,
		Confidence:      confidence,
		Reasoning: fmt.Sprintf("Offline prediction: #%d seed %s favored over #%d seed %s by bracket position.",
			winner.Seed, winner.Name, loser.Seed, loser.Name),
		Sources: []string{"offline seed heuristic"},
	}
}

// validateResume checks that a checkpoint's bookkeeping is consistent with its games.
func validateResume(t *shared.Tournament) error {
	if t.LastCompletedGameID == nil {
		return nil
	}
	round, gameIdx, err := shared.ParseGameID(*t.LastCompletedGameID)
	if err != nil {
		return fmt.Errorf("checkpoint has invalid last completed game id: %w", err)
	}
	if round < 1 || round > len(t.Rounds) || gameIdx < 1 || gameIdx > len(t.Rounds[round-1].Games) {
		return fmt.Errorf("checkpoint references unknown game %s", *t.LastCompletedGameID)
	}
	if !t.Rounds[round-1].Games[gameIdx-1].Predicted() {
		return fmt.Errorf("checkpoint marks %s complete but it has no winner", *t.LastCompletedGameID)
	}
	return nil
}
