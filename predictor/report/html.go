/* html.go
 * Renders a completed bracket as a static HTML page. Rounds are laid out as columns and the
 * predicted winner of each game is highlighted with its confidence.
 */

package report

import (
	"fmt"
	"html/template"
	"strings"

	"bracket-bot/predictor/shared"
)

var bracketTemplate = template.Must(template.New("bracket").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}} Bracket</title>
<style>
body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 20px; }
h1 { text-align: center; }
.champion { text-align: center; font-size: 1.4em; margin-bottom: 24px; }
.bracket { display: flex; gap: 24px; align-items: flex-start; }
.round { flex: 1; }
.round h2 { font-size: 1em; text-align: center; }
.game { background: #fff; border: 1px solid #ccc; border-radius: 4px; margin-bottom: 12px; padding: 6px; }
.team { padding: 4px 6px; }
.team.winner { background: #d3f2d3; font-weight: bold; }
.seed { color: #777; margin-right: 4px; }
.confidence { float: right; color: #555; font-size: 0.85em; }
.region { color: #999; font-size: 0.8em; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
{{if .Champion}}<div class="champion">Predicted Champion: <strong>{{.Champion}}</strong></div>{{end}}
<div class="bracket">
{{range .Rounds}}<div class="round">
<h2>{{.Name}}</h2>
{{range .Games}}<div class="game">
<div class="region">{{.Region}}</div>
<div class="team{{if .Team1Won}} winner{{end}}"><span class="seed">{{.Team1Seed}}</span>{{.Team1Name}}{{if .Team1Won}}<span class="confidence">{{.Confidence}}</span>{{end}}</div>
<div class="team{{if .Team2Won}} winner{{end}}"><span class="seed">{{.Team2Seed}}</span>{{.Team2Name}}{{if .Team2Won}}<span class="confidence">{{.Confidence}}</span>{{end}}</div>
</div>
{{end}}</div>
{{end}}</div>
</body>
</html>
`))

type htmlGame struct {
	Region     string
	Team1Name  string
	Team1Seed  string
	Team1Won   bool
	Team2Name  string
	Team2Seed  string
	Team2Won   bool
	Confidence string
}

type htmlRound struct {
	Name  string
	Games []htmlGame
}

type htmlBracket struct {
	Name     string
	Champion string
	Rounds   []htmlRound
}

/* HTML renders the bracket as a standalone HTML document.
 * Preconditions: t has at least one round with games
 * Postconditions: returns the rendered page, or an error if template execution failed
 */
func HTML(t *shared.Tournament) (string, error) {
	data := htmlBracket{
		Name:     t.TournamentName,
		Champion: t.Champion(),
	}

	for _, round := range t.Rounds {
		if len(round.Games) == 0 {
			continue
		}
		hr := htmlRound{Name: round.RoundName}
		for _, game := range round.Games {
			hg := htmlGame{
				Region:    game.Region,
				Team1Name: game.Team1.Name,
				Team1Seed: fmt.Sprintf("#%d", game.Team1.Seed),
				Team2Name: game.Team2.Name,
				Team2Seed: fmt.Sprintf("#%d", game.Team2.Seed),
			}
			if game.PredictedWinner != nil {
				winner, _ := shared.TeamByName(&game, *game.PredictedWinner)
				hg.Team1Won = winner.Name == game.Team1.Name
				hg.Team2Won = !hg.Team1Won
				if game.Confidence != nil {
					hg.Confidence = fmt.Sprintf("%d%%", *game.Confidence)
				}
			}
			hr.Games = append(hr.Games, hg)
		}
		data.Rounds = append(data.Rounds, hr)
	}

	var sb strings.Builder
	if err := bracketTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render bracket page: %w", err)
	}
	return sb.String(), nil
}
