/* models.go
 * Contains the structs and query templates used by the enrichment pipeline. Each matchup gets
 * five fixed queries covering the matchup itself, both teams, expert predictions and the
 * historical seed matchup.
 */

package research

import (
	"context"
	"fmt"
	"time"

	"bracket-bot/predictor/shared"
)

// SearchResult is one ranked result from the search provider.
type SearchResult struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	PublishedDate string `json:"publishedDate"`
	Snippet       string `json:"snippet"`
}

// Searcher defines the search provider interface. This allows for mocking in tests.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// QueryKind identifies which aspect of a matchup a query targets.
type QueryKind string

const (
	QueryMatchup     QueryKind = "matchup"
	QueryTeam1       QueryKind = "team1_analysis"
	QueryTeam2       QueryKind = "team2_analysis"
	QueryPredictions QueryKind = "predictions"
	QuerySeedHistory QueryKind = "seed_history"
)

// Query pairs a search string with the kind of evidence it is expected to produce.
type Query struct {
	Kind QueryKind
	Text string
}

// BuildQueries generates the five search queries for a matchup.
func BuildQueries(game *shared.Game) []Query {
	team1, team2 := game.Team1, game.Team2
	roundName := shared.RoundName(game.GameID)
	year := time.Now().Year()

	return []Query{
		{Kind: QueryMatchup, Text: fmt.Sprintf("%s vs %s NCAA March Madness basketball %d %s region %s",
			team1.Name, team2.Name, year, game.Region, roundName)},
		{Kind: QueryTeam1, Text: fmt.Sprintf("%s basketball team statistics %d analysis strengths weaknesses",
			team1.Name, year)},
		{Kind: QueryTeam2, Text: fmt.Sprintf("%s basketball team statistics %d analysis strengths weaknesses",
			team2.Name, year)},
		{Kind: QueryPredictions, Text: fmt.Sprintf("%s vs %s basketball prediction odds March Madness %d",
			team1.Name, team2.Name, year)},
		{Kind: QuerySeedHistory, Text: fmt.Sprintf("#%d seed vs #%d seed historical NCAA tournament matchup statistics",
			team1.Seed, team2.Seed)},
	}
}

// title returns the evidence block heading for a query kind.
func (q Query) title(game *shared.Game) string {
	switch q.Kind {
	case QueryMatchup:
		return fmt.Sprintf("Analysis of %s vs %s Matchup", game.Team1.Name, game.Team2.Name)
	case QueryTeam1:
		return fmt.Sprintf("Analysis of %s", game.Team1.Name)
	case QueryTeam2:
		return fmt.Sprintf("Analysis of %s", game.Team2.Name)
	case QueryPredictions:
		return fmt.Sprintf("Expert Predictions for %s vs %s", game.Team1.Name, game.Team2.Name)
	case QuerySeedHistory:
		return fmt.Sprintf("Historical Analysis of #%d vs #%d Seed Matchups", game.Team1.Seed, game.Team2.Seed)
	default:
		return fmt.Sprintf("Analysis for %s", q.Kind)
	}
}

// analysisSystemPrompt returns the summarization system prompt for a query kind.
func (q Query) analysisSystemPrompt(game *shared.Game) string {
	switch q.Kind {
	case QueryMatchup:
		return "You are a basketball analysis expert. Analyze the provided information about this matchup and extract key insights. Focus on relevant factors that would influence the outcome of this game."
	case QueryTeam1, QueryTeam2:
		team := game.Team1.Name
		if q.Kind == QueryTeam2 {
			team = game.Team2.Name
		}
		return fmt.Sprintf("You are a basketball analysis expert. Analyze the provided information about %s and extract key insights about their strengths, weaknesses, recent performance, key players, and other relevant factors.", team)
	case QueryPredictions:
		return "You are a basketball analysis expert. Analyze the provided information about predictions and betting odds for this matchup. Summarize expert predictions and identify consensus views if they exist."
	case QuerySeedHistory:
		return "You are a basketball analysis expert. Analyze the historical data about NCAA tournament matchups between these seed numbers. Identify patterns and historical precedents that might inform predictions."
	default:
		return "You are a basketball analysis expert. Analyze the provided information and extract key insights relevant to predicting the outcome of this matchup."
	}
}
