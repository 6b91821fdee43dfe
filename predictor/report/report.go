/* report.go
 * Renders a completed bracket as a markdown report: champion, Final Four, notable upsets,
 * region winners and full round by round results.
 */

package report

import (
	"fmt"
	"sort"
	"strings"

	"bracket-bot/predictor/shared"
)

// Upset is a predicted win by the worse seeded team.
type Upset struct {
	Game         shared.Game
	Winner       shared.Team
	Loser        shared.Team
	SeedDiff     int
	RoundDisplay string
}

// Upsets collects every predicted upset in the tournament, biggest seed differential first.
func Upsets(t *shared.Tournament) []Upset {
	var upsets []Upset
	for _, round := range t.Rounds {
		for _, game := range round.Games {
			if game.PredictedWinner == nil {
				continue
			}
			winner, match := shared.TeamByName(&game, *game.PredictedWinner)
			if match == shared.MatchFallback {
				continue
			}
			loser := game.Team1
			if loser.Name == winner.Name {
				loser = game.Team2
			}
			if winner.Seed <= loser.Seed {
				continue
			}
			upsets = append(upsets, Upset{
				Game:         game,
				Winner:       winner,
				Loser:        loser,
				SeedDiff:     winner.Seed - loser.Seed,
				RoundDisplay: round.RoundName,
			})
		}
	}
	sort.SliceStable(upsets, func(i, j int) bool {
		return upsets[i].SeedDiff > upsets[j].SeedDiff
	})
	return upsets
}

// FinalFour returns the teams that reached the Final Four round, in bracket order. Returns nil
// for tournaments too small to have one.
func FinalFour(t *shared.Tournament) []shared.Team {
	if len(t.Rounds) < 5 {
		return nil
	}
	var teams []shared.Team
	for _, game := range t.Rounds[4].Games {
		teams = append(teams, game.Team1, game.Team2)
	}
	return teams
}

// RegionWinners maps each region to the team that won it, derived from Elite Eight winners.
func RegionWinners(t *shared.Tournament) map[string]shared.Team {
	if len(t.Rounds) < 4 {
		return nil
	}
	winners := make(map[string]shared.Team)
	for _, game := range t.Rounds[3].Games {
		if game.PredictedWinner == nil {
			continue
		}
		team, match := shared.TeamByName(&game, *game.PredictedWinner)
		if match == shared.MatchFallback {
			continue
		}
		winners[game.Region] = team
	}
	return winners
}

/* Markdown renders the completed bracket report.
 * Preconditions: t is a fully predicted tournament
 * Postconditions: returns the report as a markdown document
 */
func Markdown(t *shared.Tournament) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s Prediction Report\n\n", t.TournamentName)

	if champion := t.Champion(); champion != "" {
		final := t.FinalGame()
		fmt.Fprintf(&sb, "## Predicted Champion\n\n**%s**", champion)
		if final.Confidence != nil {
			fmt.Fprintf(&sb, " (%d%% confidence)", *final.Confidence)
		}
		sb.WriteString("\n\n")
		if final.Reasoning != nil && *final.Reasoning != "" {
			fmt.Fprintf(&sb, "%s\n\n", *final.Reasoning)
		}
	}

	if teams := FinalFour(t); len(teams) > 0 {
		sb.WriteString("## Final Four\n\n")
		for _, team := range teams {
			fmt.Fprintf(&sb, "- #%d %s\n", team.Seed, team.Name)
		}
		sb.WriteString("\n")
	}

	if winners := RegionWinners(t); len(winners) > 0 {
		sb.WriteString("## Region Winners\n\n")
		regions := make([]string, 0, len(winners))
		for region := range winners {
			regions = append(regions, region)
		}
		sort.Strings(regions)
		for _, region := range regions {
			team := winners[region]
			fmt.Fprintf(&sb, "- **%s**: #%d %s\n", region, team.Seed, team.Name)
		}
		sb.WriteString("\n")
	}

	if upsets := Upsets(t); len(upsets) > 0 {
		sb.WriteString("## Biggest Upsets\n\n")
		for _, upset := range upsets {
			line := fmt.Sprintf("- #%d %s over #%d %s (%s", upset.Winner.Seed, upset.Winner.Name,
				upset.Loser.Seed, upset.Loser.Name, upset.RoundDisplay)
			if upset.Game.Confidence != nil {
				line += fmt.Sprintf(", %d%% confidence", *upset.Game.Confidence)
			}
			sb.WriteString(line + ")\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Round by Round Results\n\n")
	for _, round := range t.Rounds {
		if len(round.Games) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "### %s\n\n", round.RoundName)
		for _, game := range round.Games {
			if game.PredictedWinner == nil {
				fmt.Fprintf(&sb, "- %s: #%d %s vs #%d %s (unresolved)\n", game.GameID,
					game.Team1.Seed, game.Team1.Name, game.Team2.Seed, game.Team2.Name)
				continue
			}
			line := fmt.Sprintf("- %s: #%d %s vs #%d %s, winner **%s**", game.GameID,
				game.Team1.Seed, game.Team1.Name, game.Team2.Seed, game.Team2.Name, *game.PredictedWinner)
			if game.Confidence != nil {
				line += fmt.Sprintf(" (%d%%)", *game.Confidence)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
