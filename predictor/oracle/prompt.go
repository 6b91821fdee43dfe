/* prompt.go
 * Contains the conversation builders for prediction requests. The conversation is a multi-turn
 * exchange: an intro message with seeds, records and upset history, one exchange per evidence
 * summary, and a final request in the PREDICTED WINNER / CONFIDENCE / REASONING format.
 */

package oracle

import (
	"fmt"
	"strings"

	"bracket-bot/predictor/seeds"
	"bracket-bot/predictor/shared"
)

const systemPrompt = `You are a basketball analysis expert assisting with March Madness predictions for a complete tournament bracket.

You are being asked to predict all games in a March Madness bracket, including first round games and potential matchups in later rounds. Even if a matchup is in a later round (Sweet 16, Elite 8, etc.), you should analyze and predict the outcome directly, based on the information provided.

Analyze the provided information about each matchup carefully to make accurate predictions. Consider:
1. Team performance statistics and trends
2. Key player matchups and injuries
3. Historical tournament performance
4. Coaching experience and strategy
5. Seed matchup history
6. Expert predictions and consensus views

Your goal is to provide an accurate, well-reasoned prediction based on the available data, regardless of which round the game is in.`

const clarificationPrompt = `I couldn't parse your prediction clearly. Please respond ONLY with the following format:

PREDICTED WINNER: [Team Name]
CONFIDENCE: [XX]% (a number between 50-99)
REASONING: [2-3 key decisive factors]`

// Summary is one analyzed block of evidence fed into the prediction conversation.
type Summary struct {
	Title   string
	Text    string
	Sources []string
}

// introMessage builds the opening user message for a matchup. Team records come from the
// read-only lookup passed into the adapter; missing records degrade to a shorter message.
func introMessage(game *shared.Game, records map[string]string) string {
	team1, team2 := game.Team1, game.Team2
	roundName := shared.RoundName(game.GameID)

	var sb strings.Builder
	record1 := shared.LookupRecord(records, team1.Name)
	record2 := shared.LookupRecord(records, team2.Name)
	if record1 != "" || record2 != "" {
		if record1 == "" {
			record1 = "record not available"
		}
		if record2 == "" {
			record2 = "record not available"
		}
		sb.WriteString(fmt.Sprintf("I need you to analyze the March Madness matchup between %s (Seed #%d, %s) and %s (Seed #%d, %s) in the %s region during the %s.",
			team1.Name, team1.Seed, record1, team2.Name, team2.Seed, record2, game.Region, roundName))
	} else {
		sb.WriteString(fmt.Sprintf("I need you to analyze the March Madness matchup between %s (Seed #%d) and %s (Seed #%d) in the %s region during the %s.",
			team1.Name, team1.Seed, team2.Name, team2.Seed, game.Region, roundName))
	}

	sb.WriteString("\n\nThis is part of a complete bracket prediction, so please analyze this matchup regardless of which tournament round it occurs in. For games beyond the first round, assume both teams have advanced to this point.")
	sb.WriteString("\n\nI'll provide detailed information about both teams, historical seed matchups, and expert predictions gathered from multiple sources. Based on this comprehensive analysis, I'd like you to predict which team will win.")

	factors := seeds.Lookup(team1.Seed, team2.Seed)
	lowerSeed, higherSeed := team1.Seed, team2.Seed
	if lowerSeed > higherSeed {
		lowerSeed, higherSeed = higherSeed, lowerSeed
	}
	sb.WriteString(fmt.Sprintf("\n\nHistorical Note: In March Madness history, #%d seeds upset #%d seeds approximately %.0f%% of the time.",
		higherSeed, lowerSeed, factors.UpsetRate*100))

	return sb.String()
}

// finalPrompt builds the closing user message that requests the structured prediction.
func finalPrompt(game *shared.Game) string {
	return fmt.Sprintf(`Based on all the information I've shared about %s and %s, please provide your prediction for this March Madness matchup.

Note: It's perfectly acceptable to predict games beyond the first round. This is part of a full bracket prediction, so please analyze this matchup directly regardless of which tournament round this game is in.

You should consider:
1. Team strength and statistics
2. Key player matchups
3. Historical tournament performance
4. Coaching experience and strategy
5. Seed matchup history
6. Expert predictions and consensus views
7. Any other relevant factors

Please format your response as:
PREDICTED WINNER: [Team Name]
CONFIDENCE: [XX]%% (a number between 50-99)
REASONING: [2-3 key decisive factors that led to your prediction]

Your response should be concise and focused only on the prediction.`, game.Team1.Name, game.Team2.Name)
}

// buildConversation assembles the full turn sequence for a prediction request.
func buildConversation(game *shared.Game, records map[string]string, evidence []Summary) []Turn {
	turns := []Turn{{Role: "user", Text: introMessage(game, records)}}

	for _, summary := range evidence {
		turns = append(turns,
			Turn{Role: "assistant", Text: fmt.Sprintf("I'll review the %s.", summary.Title)},
			Turn{Role: "user", Text: summaryMessage(summary)},
		)
	}

	turns = append(turns,
		Turn{Role: "assistant", Text: "I've analyzed all the information about this matchup. I'll now provide my prediction."},
		Turn{Role: "user", Text: finalPrompt(game)},
	)
	return turns
}

// summaryMessage formats one evidence summary as a user turn, sources included so they can
// be extracted back out of the conversation afterwards.
func summaryMessage(summary Summary) string {
	sources := "No sources available"
	if len(summary.Sources) > 0 {
		sources = strings.Join(summary.Sources, ", ")
	}
	return fmt.Sprintf("## %s\n\n%s\n\nSources: %s", summary.Title, summary.Text, sources)
}
