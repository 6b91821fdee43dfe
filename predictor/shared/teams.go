/* teams.go
 * Contains the logic for resolving a predicted winner name back to one of the two teams in a
 * game. Names coming back from the oracle don't always match the bracket exactly, so matching
 * runs exact -> case-insensitive -> fuzzy before falling back to the better seed.
 */

package shared

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchResult describes how a winner name was resolved to a team.
type MatchResult int

const (
	MatchExact MatchResult = iota
	MatchFuzzy
	MatchFallback
)

// TeamByName resolves teamName to one of the game's two teams.
// It returns the matched team and how the match was made. A MatchFallback result means the
// name matched neither team and the better seed was substituted; callers should log that
// path distinctly because it usually indicates a data integrity problem upstream.
func TeamByName(game *Game, teamName string) (Team, MatchResult) {
	name := strings.TrimSpace(teamName)
	if name == game.Team1.Name {
		return game.Team1, MatchExact
	}
	if name == game.Team2.Name {
		return game.Team2, MatchExact
	}

	lower := strings.ToLower(name)
	if strings.ToLower(game.Team1.Name) == lower {
		return game.Team1, MatchExact
	}
	if strings.ToLower(game.Team2.Name) == lower {
		return game.Team2, MatchExact
	}

	// Fuzzy match handles oracle responses like "the Duke Blue Devils" for "Duke"
	candidates := []string{strings.ToLower(game.Team1.Name), strings.ToLower(game.Team2.Name)}
	ranks := fuzzy.RankFindFold(lower, candidates)
	if len(ranks) == 1 {
		if ranks[0].OriginalIndex == 0 {
			return game.Team1, MatchFuzzy
		}
		return game.Team2, MatchFuzzy
	}
	// Also try the reverse direction, where the bracket name is contained in the response
	if fuzzy.MatchFold(candidates[0], lower) && !fuzzy.MatchFold(candidates[1], lower) {
		return game.Team1, MatchFuzzy
	}
	if fuzzy.MatchFold(candidates[1], lower) && !fuzzy.MatchFold(candidates[0], lower) {
		return game.Team2, MatchFuzzy
	}

	return game.BetterSeed(), MatchFallback
}
