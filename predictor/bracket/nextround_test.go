/* nextround_test.go
 * Contains unit tests for nextround.go
 */

package bracket

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracket-bot/predictor/shared"
)

func predicted(gameID, region string, team1 shared.Team, team2 shared.Team, winner string) shared.Game {
	return shared.Game{
		GameID:          gameID,
		Region:          region,
		Team1:           team1,
		Team2:           team2,
		PredictedWinner: &winner,
	}
}

func TestGenerateNextRoundPairsWinnersInOrder(t *testing.T) {
	auburn := shared.Team{Name: "Auburn", Seed: 1}
	alabamaState := shared.Team{Name: "Alabama State", Seed: 16}
	louisville := shared.Team{Name: "Louisville", Seed: 8}
	creighton := shared.Team{Name: "Creighton", Seed: 9}

	tournament := &shared.Tournament{
		CurrentRound: 1,
		Rounds: []shared.Round{
			{RoundNumber: 1, Games: []shared.Game{
				predicted("R1G1", "South", auburn, alabamaState, "Auburn"),
				predicted("R1G2", "South", louisville, creighton, "Creighton"),
			}},
			{RoundNumber: 2, Games: []shared.Game{}},
		},
	}

	require.NoError(t, GenerateNextRound(tournament, 1))

	assert.Equal(t, 2, tournament.CurrentRound)
	next := tournament.Rounds[1].Games
	require.Len(t, next, 1)
	assert.Equal(t, "R2G1", next[0].GameID)
	assert.Equal(t, "South", next[0].Region)
	assert.Equal(t, auburn, next[0].Team1)
	assert.Equal(t, creighton, next[0].Team2)
	assert.False(t, next[0].Predicted())
}

func TestGenerateNextRoundRequiresCompleteRound(t *testing.T) {
	auburn := shared.Team{Name: "Auburn", Seed: 1}
	alabamaState := shared.Team{Name: "Alabama State", Seed: 16}

	tournament := &shared.Tournament{
		Rounds: []shared.Round{
			{RoundNumber: 1, Games: []shared.Game{
				predicted("R1G1", "South", auburn, alabamaState, "Auburn"),
				{GameID: "R1G2", Region: "South", Team1: auburn, Team2: alabamaState},
			}},
			{RoundNumber: 2},
		},
	}

	err := GenerateNextRound(tournament, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not complete")
	assert.Equal(t, 0, tournament.CurrentRound)
}

func TestGenerateNextRoundRejectsOddGameCount(t *testing.T) {
	auburn := shared.Team{Name: "Auburn", Seed: 1}
	alabamaState := shared.Team{Name: "Alabama State", Seed: 16}

	tournament := &shared.Tournament{
		Rounds: []shared.Round{
			{RoundNumber: 1, Games: []shared.Game{
				predicted("R1G1", "South", auburn, alabamaState, "Auburn"),
				predicted("R1G2", "South", auburn, alabamaState, "Auburn"),
				predicted("R1G3", "South", auburn, alabamaState, "Auburn"),
			}},
			{RoundNumber: 2},
		},
	}

	err := GenerateNextRound(tournament, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOddGameCount))
}

func TestGenerateNextRoundRejectsUnknownWinner(t *testing.T) {
	auburn := shared.Team{Name: "Auburn", Seed: 1}
	alabamaState := shared.Team{Name: "Alabama State", Seed: 16}

	// A stored winner matching neither team can only come from a corrupt checkpoint; the
	// prediction path substitutes a real team before the winner is ever persisted.
	tournament := &shared.Tournament{
		Rounds: []shared.Round{
			{RoundNumber: 1, Games: []shared.Game{
				predicted("R1G1", "South", auburn, alabamaState, "Gonzaga"),
				predicted("R1G2", "South", auburn, alabamaState, "Auburn"),
			}},
			{RoundNumber: 2},
		},
	}

	err := GenerateNextRound(tournament, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches neither team")
}

func TestNextRoundRegionMapping(t *testing.T) {
	cases := []struct {
		name     string
		round    int
		region1  string
		region2  string
		expected string
	}{
		{"same region stays", 3, "South", "South", "South"},
		{"final four south east", 5, "South", "East", "South/East"},
		{"final four east alone", 5, "East", "East", "South/East"},
		{"final four west midwest", 5, "West", "Midwest", "West/Midwest"},
		{"championship", 6, "South/East", "West/Midwest", "Championship"},
		{"cross region before final four", 4, "South", "East", "South/East"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, nextRoundRegion(tc.round, tc.region1, tc.region2))
		})
	}
}

func TestGenerateNextRoundFullRoundCount(t *testing.T) {
	// A 16 team bracket's first round produces exactly 8 winners and 4 games.
	teams := make([]shared.Team, 16)
	for i := range teams {
		teams[i] = shared.Team{Name: string(rune('A' + i)), Seed: i + 1}
	}
	tournament, err := BuildBracket("Test", "South", teams, nil)
	require.NoError(t, err)

	for i := range tournament.Rounds[0].Games {
		game := &tournament.Rounds[0].Games[i]
		game.PredictedWinner = &game.Team1.Name
	}

	require.NoError(t, GenerateNextRound(tournament, 1))
	assert.Len(t, tournament.Rounds[1].Games, 4)
}
