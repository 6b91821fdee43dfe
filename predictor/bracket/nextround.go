/* nextround.go
 * Generates the games for the next round once every game in the current round has a winner.
 * Winners advance in bracket order: games 1 and 2 feed the next round's game 1, and so on.
 */

package bracket

import (
	"errors"
	"fmt"

	"bracket-bot/predictor/shared"
)

// ErrOddGameCount reports a structurally broken bracket: a completed round with an odd number
// of games cannot be paired into the next round.
var ErrOddGameCount = errors.New("completed round has an odd number of games")

// IsRoundComplete reports whether every game in the round has a predicted winner.
func IsRoundComplete(round *shared.Round) bool {
	if len(round.Games) == 0 {
		return false
	}
	for i := range round.Games {
		if !round.Games[i].Predicted() {
			return false
		}
	}
	return true
}

// GenerateNextRound fills in the games for round number current+1 from the winners of the
// current round.
// Preconditions: every game in tournament.Rounds[current-1] has a predicted winner
// Postconditions: the next round holds one game per winner pair and the tournament's
// CurrentRound advances, or an error is returned and the tournament is unchanged
func GenerateNextRound(t *shared.Tournament, current int) error {
	if current < 1 || current > len(t.Rounds) {
		return fmt.Errorf("round %d out of range", current)
	}
	if current == len(t.Rounds) {
		return fmt.Errorf("round %d is the final round, nothing to generate", current)
	}

	completed := t.Rounds[current-1].Games
	if len(completed) == 1 {
		return fmt.Errorf("round %d has a single game, nothing to generate", current)
	}
	if len(completed)%2 != 0 {
		return fmt.Errorf("round %d has %d games: %w", current, len(completed), ErrOddGameCount)
	}

	winners := make([]shared.Team, 0, len(completed))
	for _, game := range completed {
		if game.PredictedWinner == nil {
			return fmt.Errorf("game %s has no winner, round %d is not complete", game.GameID, current)
		}
		team, match := shared.TeamByName(&game, *game.PredictedWinner)
		if match == shared.MatchFallback {
			return fmt.Errorf("winner %q of game %s matches neither team", *game.PredictedWinner, game.GameID)
		}
		winners = append(winners, team)
	}

	next := current + 1
	games := make([]shared.Game, 0, len(winners)/2)
	for i := 0; i < len(winners); i += 2 {
		games = append(games, shared.Game{
			GameID: fmt.Sprintf("R%dG%d", next, i/2+1),
			Region: nextRoundRegion(next, completed[i].Region, completed[i+1].Region),
			Team1:  winners[i],
			Team2:  winners[i+1],
		})
	}

	t.Rounds[next-1].Games = games
	t.CurrentRound = next
	return nil
}

// nextRoundRegion names the region of a game whose feeders may come from different regions.
// Through the Elite Eight winners stay in their region. The Final Four pairs South/East against
// West/Midwest and the championship has no region.
func nextRoundRegion(round int, region1, region2 string) string {
	switch {
	case round == 6:
		return "Championship"
	case round == 5:
		if region1 == "South" || region1 == "East" {
			return "South/East"
		}
		return "West/Midwest"
	case region1 == region2:
		return region1
	default:
		return region1 + "/" + region2
	}
}
