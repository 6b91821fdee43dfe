/* report_test.go
 * Contains unit tests for report.go and html.go
 */

package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracket-bot/predictor/shared"
)

func game(id, region string, team1, team2 shared.Team, winner string, confidence int) shared.Game {
	return shared.Game{
		GameID:          id,
		Region:          region,
		Team1:           team1,
		Team2:           team2,
		PredictedWinner: &winner,
		Confidence:      &confidence,
	}
}

// reportTournament builds a small completed bracket with one upset.
func reportTournament() *shared.Tournament {
	auburn := shared.Team{Name: "Auburn", Seed: 1}
	alabamaState := shared.Team{Name: "Alabama State", Seed: 16}
	louisville := shared.Team{Name: "Louisville", Seed: 8}
	creighton := shared.Team{Name: "Creighton", Seed: 9}

	reasoning := "Auburn's frontcourt depth decides it."
	final := game("R2G1", "South", auburn, creighton, "Auburn", 88)
	final.Reasoning = &reasoning

	return &shared.Tournament{
		TournamentName: "Test Tournament",
		CurrentRound:   2,
		Rounds: []shared.Round{
			{RoundNumber: 1, RoundName: "First Round", Games: []shared.Game{
				game("R1G1", "South", auburn, alabamaState, "Auburn", 99),
				game("R1G2", "South", louisville, creighton, "Creighton", 61),
			}},
			{RoundNumber: 2, RoundName: "Second Round", Games: []shared.Game{final}},
		},
	}
}

func TestMarkdownReportSections(t *testing.T) {
	md := Markdown(reportTournament())

	assert.Contains(t, md, "# Test Tournament Prediction Report")
	assert.Contains(t, md, "**Auburn** (88% confidence)")
	assert.Contains(t, md, "Auburn's frontcourt depth decides it.")
	assert.Contains(t, md, "## Biggest Upsets")
	assert.Contains(t, md, "#9 Creighton over #8 Louisville (First Round, 61% confidence)")
	assert.Contains(t, md, "### First Round")
	assert.Contains(t, md, "R1G1: #1 Auburn vs #16 Alabama State, winner **Auburn** (99%)")
	assert.Contains(t, md, "### Second Round")
}

func TestUpsetsSortedBySeedDifferential(t *testing.T) {
	one := shared.Team{Name: "Top", Seed: 1}
	twelve := shared.Team{Name: "Cinderella", Seed: 12}
	five := shared.Team{Name: "Mid", Seed: 5}
	nine := shared.Team{Name: "Niner", Seed: 9}
	eight := shared.Team{Name: "Eighth", Seed: 8}

	tournament := &shared.Tournament{
		Rounds: []shared.Round{
			{RoundNumber: 1, RoundName: "First Round", Games: []shared.Game{
				game("R1G1", "South", five, twelve, "Cinderella", 58),
				game("R1G2", "South", eight, nine, "Niner", 52),
				game("R1G3", "South", one, twelve, "Top", 95),
			}},
		},
	}

	upsets := Upsets(tournament)
	require.Len(t, upsets, 2)
	assert.Equal(t, "Cinderella", upsets[0].Winner.Name)
	assert.Equal(t, 7, upsets[0].SeedDiff)
	assert.Equal(t, "Niner", upsets[1].Winner.Name)
	assert.Equal(t, 1, upsets[1].SeedDiff)
}

func TestRegionWinnersDerivedFromEliteEight(t *testing.T) {
	south := shared.Team{Name: "Auburn", Seed: 1}
	southRival := shared.Team{Name: "Michigan State", Seed: 2}
	west := shared.Team{Name: "Florida", Seed: 1}
	westRival := shared.Team{Name: "Texas Tech", Seed: 3}

	tournament := &shared.Tournament{
		Rounds: []shared.Round{
			{RoundNumber: 1}, {RoundNumber: 2}, {RoundNumber: 3},
			{RoundNumber: 4, RoundName: "Elite Eight", Games: []shared.Game{
				game("R4G1", "South", south, southRival, "Auburn", 70),
				game("R4G2", "West", west, westRival, "Florida", 66),
			}},
		},
	}

	winners := RegionWinners(tournament)
	require.Len(t, winners, 2)
	assert.Equal(t, "Auburn", winners["South"].Name)
	assert.Equal(t, "Florida", winners["West"].Name)
}

func TestHTMLHighlightsWinners(t *testing.T) {
	page, err := HTML(reportTournament())
	require.NoError(t, err)

	assert.Contains(t, page, "<title>Test Tournament Bracket</title>")
	assert.Contains(t, page, "Predicted Champion: <strong>Auburn</strong>")
	assert.Contains(t, page, `<div class="team winner"><span class="seed">#1</span>Auburn`)
	assert.Contains(t, page, `<span class="confidence">99%</span>`)

	// The losing team's row is never highlighted.
	assert.Contains(t, page, `<div class="team"><span class="seed">#16</span>Alabama State</div>`)
	assert.Equal(t, 3, strings.Count(page, `class="game"`))
}

func TestHTMLEscapesTeamNames(t *testing.T) {
	a := shared.Team{Name: "Texas A&M", Seed: 4}
	b := shared.Team{Name: "Yale", Seed: 13}
	tournament := &shared.Tournament{
		TournamentName: "Test",
		Rounds: []shared.Round{
			{RoundNumber: 1, RoundName: "First Round", Games: []shared.Game{
				game("R1G1", "South", a, b, "Texas A&M", 75),
			}},
		},
	}

	page, err := HTML(tournament)
	require.NoError(t, err)
	assert.Contains(t, page, "Texas A&amp;M")
	assert.NotContains(t, page, "Texas A&M<")
}
