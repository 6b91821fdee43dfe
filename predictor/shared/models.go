/* models.go
 * Contains the structs that make up a tournament bracket document. These are shared between all
 * sub packages and serialize to the same JSON shape as the bracket input and checkpoint files.
 */

package shared

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Team is a competitor in the bracket. Teams have no registry of their own, every Game carries
// its own copy and a team's identity is its name string, compared case-insensitively.
type Team struct {
	Name string `json:"name"`
	Seed int    `json:"seed"`
}

// Game is a single matchup. Prediction fields are nil until the game has been predicted.
type Game struct {
	GameID          string   `json:"game_id"`
	Region          string   `json:"region"`
	Team1           Team     `json:"team1"`
	Team2           Team     `json:"team2"`
	PredictedWinner *string  `json:"predicted_winner"`
	Confidence      *int     `json:"confidence"`
	Reasoning       *string  `json:"reasoning"`
	Sources         []string `json:"sources"`
}

// Round holds the games for one round of the tournament. Later rounds start with an empty
// Games slice and are only filled in once every game in the prior round has a winner.
type Round struct {
	RoundNumber int    `json:"round_number"`
	RoundName   string `json:"round_name"`
	Games       []Game `json:"games"`
}

// RunError records the game that failed during a run, stored in error checkpoints.
type RunError struct {
	GameID       string `json:"game_id"`
	ErrorMessage string `json:"error_message"`
	Timestamp    string `json:"timestamp"`
}

// Tournament is the single source of truth for a run. It is mutated in place as predictions
// complete and persisted as full snapshots after every state change.
type Tournament struct {
	TournamentName      string            `json:"tournament_name"`
	Rounds              []Round           `json:"rounds"`
	CurrentRound        int               `json:"current_round,omitempty"`
	LastCompletedGameID *string           `json:"last_completed_game_id"`
	TeamRecords         map[string]string `json:"team_records,omitempty"`
	Error               *RunError         `json:"error,omitempty"`
}

// Prediction is the outcome of asking the oracle about a single game. A fallback prediction
// (seed based, produced when the oracle is unreachable or unparsable) is still a valid
// Prediction, callers must not treat it as an error.
type Prediction struct {
	PredictedWinner string   `json:"predicted_winner"`
	Confidence      int      `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	Sources         []string `json:"sources"`
}

// ApplyPrediction records a prediction on the game. The winner is immutable once set, a
// second apply on a predicted game is ignored.
func (g *Game) ApplyPrediction(p Prediction) {
	if g.PredictedWinner != nil {
		return
	}
	winner := p.PredictedWinner
	confidence := p.Confidence
	reasoning := p.Reasoning
	g.PredictedWinner = &winner
	g.Confidence = &confidence
	g.Reasoning = &reasoning
	g.Sources = p.Sources
}

// Predicted reports whether this game already has a winner.
func (g *Game) Predicted() bool {
	return g.PredictedWinner != nil
}

// Matchup returns a printable "Team1 vs Team2" string for logs and prompts.
func (g *Game) Matchup() string {
	return fmt.Sprintf("%s vs %s", g.Team1.Name, g.Team2.Name)
}

// BetterSeed returns the team with the numerically lower (better) seed.
func (g *Game) BetterSeed() Team {
	if g.Team1.Seed < g.Team2.Seed {
		return g.Team1
	}
	return g.Team2
}

// FinalGame returns the championship game, or nil if the last round has no games yet.
func (t *Tournament) FinalGame() *Game {
	if len(t.Rounds) == 0 {
		return nil
	}
	last := &t.Rounds[len(t.Rounds)-1]
	if len(last.Games) == 0 {
		return nil
	}
	return &last.Games[0]
}

// Champion returns the predicted tournament winner, or "" if the final game is unresolved.
func (t *Tournament) Champion() string {
	final := t.FinalGame()
	if final == nil || final.PredictedWinner == nil {
		return ""
	}
	return *final.PredictedWinner
}

var gameIDPattern = regexp.MustCompile(`^R(\d+)G(\d+)$`)

// ParseGameID splits a game id like "R2G3" into its round and game numbers.
// Returns an error for ids that don't match the R{round}G{index} format.
func ParseGameID(gameID string) (round int, game int, err error) {
	m := gameIDPattern.FindStringSubmatch(gameID)
	if m == nil {
		return 0, 0, fmt.Errorf("unexpected game id format: %q", gameID)
	}
	round, _ = strconv.Atoi(m[1])
	game, _ = strconv.Atoi(m[2])
	return round, game, nil
}

// roundNames maps round numbers to their display names for a full 6 round bracket
var roundNames = map[int]string{
	1: "First Round",
	2: "Second Round",
	3: "Sweet 16",
	4: "Elite Eight",
	5: "Final Four",
	6: "National Championship",
}

// RoundName converts a game id to the display name of its round.
// Returns "Unknown Round" for ids that can't be parsed or rounds outside 1-6.
func RoundName(gameID string) string {
	round, _, err := ParseGameID(gameID)
	if err != nil {
		return "Unknown Round"
	}
	if name, ok := roundNames[round]; ok {
		return name
	}
	return "Unknown Round"
}

// RoundDisplayName returns the display name for a round number, falling back to a generic
// "Round N" label for brackets smaller than the full 6 round format.
func RoundDisplayName(roundNumber int) string {
	if name, ok := roundNames[roundNumber]; ok {
		return name
	}
	return fmt.Sprintf("Round %d", roundNumber)
}

// PreviousGameID returns the id of the game that precedes gameID in bracket order, used for
// resume-safety checks. The predecessor of the first game in a round is the last game of the
// previous round; the predecessor of game N>1 is game N-1 in the same round. Returns "" for
// the very first game of the bracket or when the predecessor can't be determined.
func PreviousGameID(gameID string, t *Tournament) string {
	round, game, err := ParseGameID(gameID)
	if err != nil {
		return ""
	}
	if game > 1 {
		return fmt.Sprintf("R%dG%d", round, game-1)
	}
	if round == 1 {
		return ""
	}
	prev := round - 1
	if prev < 1 || prev > len(t.Rounds) {
		return ""
	}
	prevGames := t.Rounds[prev-1].Games
	if len(prevGames) == 0 {
		return ""
	}
	return prevGames[len(prevGames)-1].GameID
}

// LookupRecord finds the win-loss record for a team in the read-only records map.
// It tries an exact match, then case-insensitive, then the parts of play-in style
// "TeamA/TeamB" names. Returns "" when no record is known.
func LookupRecord(records map[string]string, teamName string) string {
	if len(records) == 0 || teamName == "" {
		return ""
	}
	if record, ok := records[teamName]; ok {
		return record
	}
	lower := strings.ToLower(teamName)
	for name, record := range records {
		if strings.ToLower(name) == lower {
			return record
		}
	}
	if strings.Contains(teamName, "/") {
		for _, part := range strings.Split(teamName, "/") {
			if record, ok := records[strings.TrimSpace(part)]; ok {
				return record
			}
		}
	}
	return ""
}
