/* adapter.go
 * Contains the prediction adapter. It drives a small state machine around the oracle client:
 * Pending -> Retrying (transport errors, capped attempts with exponential backoff) ->
 * Clarifying (one reformat round-trip on unparsable output) -> Resolved or Fallback.
 * The fallback is a deterministic seed-based prediction; the adapter never returns an error.
 */

package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"bracket-bot/predictor/seeds"
	"bracket-bot/predictor/shared"
)

// State identifies where a prediction request is in its lifecycle.
type State int

const (
	StatePending State = iota
	StateRetrying
	StateClarifying
	StateResolved
	StateFallback
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRetrying:
		return "retrying"
	case StateClarifying:
		return "clarifying"
	case StateResolved:
		return "resolved"
	case StateFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

const (
	maxAttempts        = 3
	fallbackConfidence = 55
)

// Adapter wraps an oracle client with the retry, clarification and fallback policy.
type Adapter struct {
	client    Client
	records   map[string]string
	logger    *logrus.Logger
	baseDelay time.Duration
}

// NewAdapter creates a prediction adapter. The records map is a read-only team record
// lookup scoped to this run.
func NewAdapter(client Client, records map[string]string, logger *logrus.Logger) *Adapter {
	return &Adapter{
		client:    client,
		records:   records,
		logger:    logger,
		baseDelay: time.Second,
	}
}

// PredictGame asks the oracle for a prediction on a single game. The returned Prediction is
// always usable: transport or parse failures degrade to the seed-based fallback rather than
// surfacing as errors.
func (a *Adapter) PredictGame(ctx context.Context, game *shared.Game, evidence []Summary) shared.Prediction {
	turns := buildConversation(game, a.records, evidence)

	var responseText string

	a.transition(game.GameID, StatePending)
	for attempt := 1; ; attempt++ {
		text, err := a.client.Complete(ctx, systemPrompt, turns)
		if err == nil {
			responseText = text
			break
		}
		a.logger.Warnf("oracle error for %s (attempt %d/%d): %v", game.GameID, attempt, maxAttempts, err)
		if attempt >= maxAttempts {
			return a.fallback(game, turns, fmt.Sprintf("API error: %v", err))
		}
		a.transition(game.GameID, StateRetrying)
		if !a.wait(ctx, a.baseDelay<<(attempt-1)) {
			return a.fallback(game, turns, fmt.Sprintf("canceled: %v", ctx.Err()))
		}
	}

	parsed, ok := parseResponse(responseText)
	if !ok {
		// One clarification round-trip with a stricter format request
		a.transition(game.GameID, StateClarifying)
		a.logger.Warnf("failed to parse prediction for %s, requesting clarification", game.GameID)
		turns = append(turns,
			Turn{Role: "assistant", Text: responseText},
			Turn{Role: "user", Text: clarificationPrompt},
		)
		retryText, err := a.client.Complete(ctx, systemPrompt, turns)
		if err != nil {
			a.logger.Warnf("clarification request for %s failed: %v", game.GameID, err)
			return a.fallback(game, turns, "parsing error")
		}
		parsed, ok = parseResponse(retryText)
		if !ok {
			return a.fallback(game, turns, "parsing error")
		}
	}

	a.transition(game.GameID, StateResolved)

	winner, match := shared.TeamByName(game, parsed.Winner)
	if match == shared.MatchFallback {
		a.logger.Warnf("oracle winner %q matches neither team in %s (%s), substituting better seed %s",
			parsed.Winner, game.GameID, game.Matchup(), winner.Name)
	}

	confidence, reasoning := a.adjustConfidence(game, parsed.Confidence, parsed.Reasoning)

	a.logger.Infof("predicted %s to win %s with %d%% confidence", winner.Name, game.GameID, confidence)
	return shared.Prediction{
		PredictedWinner: winner.Name,
		Confidence:      confidence,
		Reasoning:       reasoning,
		Sources:         extractSources(turns),
	}
}

// adjustConfidence shifts the raw confidence by the historical seed matchup adjustment and
// clamps to [50,99]. Significant shifts get an explanatory sentence appended to the
// reasoning unless it already discusses seeding or history.
func (a *Adapter) adjustConfidence(game *shared.Game, raw int, reasoning string) (int, string) {
	factors := seeds.Lookup(game.Team1.Seed, game.Team2.Seed)
	adjusted := seeds.ClampConfidence(raw + factors.ConfidenceAdjustment)

	if adjusted != raw {
		a.logger.Infof("adjusted confidence for %s from %d%% to %d%% based on seed matchup history",
			game.GameID, raw, adjusted)
	}

	shift := adjusted - raw
	if shift < 0 {
		shift = -shift
	}
	if shift >= 5 {
		lowerReasoning := strings.ToLower(reasoning)
		if !strings.Contains(lowerReasoning, "historical") && !strings.Contains(lowerReasoning, "seed") {
			seed1, seed2 := game.Team1.Seed, game.Team2.Seed
			if adjusted < raw {
				reasoning += fmt.Sprintf(" Note: Confidence reduced due to historical upset patterns in %d-%d seed matchups.", seed1, seed2)
			} else {
				reasoning += fmt.Sprintf(" Note: Confidence increased due to historical reliability of %d-%d seed matchups.", seed1, seed2)
			}
		}
	}
	return adjusted, reasoning
}

// transition logs a state machine transition for a game's prediction request.
func (a *Adapter) transition(gameID string, state State) {
	a.logger.Debugf("prediction %s: state -> %s", gameID, state)
}

// fallback produces the deterministic seed-based prediction used when the oracle is
// unreachable or unparsable. The better seed wins at low confidence.
func (a *Adapter) fallback(game *shared.Game, turns []Turn, cause string) shared.Prediction {
	a.transition(game.GameID, StateFallback)
	winner := game.BetterSeed()
	a.logger.Infof("using fallback prediction for %s: %s (%s)", game.GameID, winner.Name, cause)
	return shared.Prediction{
		PredictedWinner: winner.Name,
		Confidence:      fallbackConfidence,
		Reasoning:       fmt.Sprintf("Prediction based on seed difference due to %s.", cause),
		Sources:         extractSources(turns),
	}
}

// wait sleeps for the backoff delay, returning false if the context is canceled first.
func (a *Adapter) wait(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
