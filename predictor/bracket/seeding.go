/* seeding.go
 * Builds a fresh bracket from a seeded team list. Team lists come in on the command line as
 * comma separated "Name:seed" entries, with quoting for names that contain commas.
 */

package bracket

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-andiamo/splitter"

	"bracket-bot/predictor/shared"
)

// ParseTeamList parses a comma separated list of "Name:seed" entries.
// Preconditions: input is non-empty, names containing commas are double quoted
// Postconditions: returns the parsed teams in input order, or an error naming the bad entry
func ParseTeamList(input string) ([]shared.Team, error) {
	commaSplitter, err := splitter.NewSplitter(',', splitter.DoubleQuotes)
	if err != nil {
		return nil, fmt.Errorf("failed to build team list splitter: %w", err)
	}
	parts, err := commaSplitter.Split(input)
	if err != nil {
		return nil, fmt.Errorf("failed to split team list: %w", err)
	}

	var teams []shared.Team
	for _, part := range parts {
		entry := strings.TrimSpace(part)
		if entry == "" {
			continue
		}

		idx := strings.LastIndex(entry, ":")
		if idx <= 0 || idx == len(entry)-1 {
			return nil, fmt.Errorf("invalid team entry %q, expected Name:seed", entry)
		}

		name := strings.Trim(strings.TrimSpace(entry[:idx]), `"`)
		seed, err := strconv.Atoi(strings.TrimSpace(entry[idx+1:]))
		if err != nil {
			return nil, fmt.Errorf("invalid seed in team entry %q: %w", entry, err)
		}
		if seed < 1 {
			return nil, fmt.Errorf("invalid seed %d in team entry %q", seed, entry)
		}

		teams = append(teams, shared.Team{Name: name, Seed: seed})
	}

	if len(teams) == 0 {
		return nil, fmt.Errorf("team list %q contains no teams", input)
	}
	return teams, nil
}

// BuildBracket creates a single elimination tournament from an ordered team list. Teams are
// paired in input order, so callers control the matchups (1 vs 16, 8 vs 9 and so on).
// Preconditions: len(teams) is a power of two of at least 2
// Postconditions: returns a tournament with round one populated and later rounds empty
func BuildBracket(tournamentName string, region string, teams []shared.Team, records map[string]string) (*shared.Tournament, error) {
	n := len(teams)
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("team count must be a power of two, got %d", n)
	}

	totalRounds := 0
	for size := n; size > 1; size /= 2 {
		totalRounds++
	}

	games := make([]shared.Game, 0, n/2)
	for i := 0; i < n; i += 2 {
		games = append(games, shared.Game{
			GameID: fmt.Sprintf("R1G%d", i/2+1),
			Region: region,
			Team1:  teams[i],
			Team2:  teams[i+1],
		})
	}

	rounds := make([]shared.Round, totalRounds)
	for i := range rounds {
		rounds[i] = shared.Round{
			RoundNumber: i + 1,
			RoundName:   shared.RoundDisplayName(i + 1),
			Games:       []shared.Game{},
		}
	}
	rounds[0].Games = games

	return &shared.Tournament{
		TournamentName: tournamentName,
		Rounds:         rounds,
		CurrentRound:   1,
		TeamRecords:    records,
	}, nil
}
