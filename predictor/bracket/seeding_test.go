/* seeding_test.go
 * Contains unit tests for seeding.go
 */

package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracket-bot/predictor/shared"
)

func TestParseTeamList(t *testing.T) {
	teams, err := ParseTeamList(`Auburn:1, Alabama State:16, Louisville:8, Creighton:9`)

	require.NoError(t, err)
	require.Len(t, teams, 4)
	assert.Equal(t, shared.Team{Name: "Auburn", Seed: 1}, teams[0])
	assert.Equal(t, shared.Team{Name: "Alabama State", Seed: 16}, teams[1])
	assert.Equal(t, shared.Team{Name: "Creighton", Seed: 9}, teams[3])
}

func TestParseTeamListQuotedNames(t *testing.T) {
	teams, err := ParseTeamList(`"Texas A&M, Corpus Christi":16, Auburn:1`)

	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Texas A&M, Corpus Christi", teams[0].Name)
	assert.Equal(t, 16, teams[0].Seed)
}

func TestParseTeamListErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"missing seed", "Auburn"},
		{"empty seed", "Auburn:"},
		{"non numeric seed", "Auburn:first"},
		{"zero seed", "Auburn:0"},
		{"empty list", " , "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTeamList(tc.input)
			assert.Error(t, err)
		})
	}
}

func TestBuildBracketPairsTeamsInOrder(t *testing.T) {
	teams := []shared.Team{
		{Name: "Auburn", Seed: 1},
		{Name: "Alabama State", Seed: 16},
		{Name: "Louisville", Seed: 8},
		{Name: "Creighton", Seed: 9},
	}

	tournament, err := BuildBracket("Test Tournament", "South", teams, map[string]string{"Auburn": "32-5"})

	require.NoError(t, err)
	assert.Equal(t, 1, tournament.CurrentRound)
	require.Len(t, tournament.Rounds, 2)

	first := tournament.Rounds[0]
	require.Len(t, first.Games, 2)
	assert.Equal(t, "R1G1", first.Games[0].GameID)
	assert.Equal(t, "Auburn", first.Games[0].Team1.Name)
	assert.Equal(t, "Alabama State", first.Games[0].Team2.Name)
	assert.Equal(t, "R1G2", first.Games[1].GameID)
	assert.Equal(t, "Louisville", first.Games[1].Team1.Name)

	// Later rounds exist but stay empty until the prior round completes.
	assert.Empty(t, tournament.Rounds[1].Games)
	assert.Equal(t, "32-5", tournament.TeamRecords["Auburn"])
}

func TestBuildBracketRejectsNonPowerOfTwo(t *testing.T) {
	teams := []shared.Team{
		{Name: "A", Seed: 1},
		{Name: "B", Seed: 2},
		{Name: "C", Seed: 3},
	}

	_, err := BuildBracket("Test", "South", teams, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "power of two")
}
