/* pipeline.go
 * Runs the enrichment pipeline for a matchup: five searches in parallel, source pages fetched
 * concurrently per query, then one summarization call per query. Every failure degrades to less
 * evidence rather than an error so the prediction flow always proceeds.
 */

package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"bracket-bot/predictor/oracle"
	"bracket-bot/predictor/shared"
)

// Pipeline gathers and summarizes web evidence about a matchup.
type Pipeline struct {
	searcher Searcher
	fetcher  *Fetcher
	client   oracle.Client
	logger   *logrus.Logger
}

// NewPipeline creates an enrichment pipeline.
func NewPipeline(searcher Searcher, client oracle.Client, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		searcher: searcher,
		fetcher:  NewFetcher(),
		client:   client,
		logger:   logger,
	}
}

/* GatherEvidence collects summarized research for a matchup.
 * Preconditions: game has both teams populated
 * Postconditions: returns one summary per query that produced usable content. Search, fetch and
 * summarization failures are logged and skipped, so the result may be shorter than the query
 * list but never an error.
 */
func (p *Pipeline) GatherEvidence(ctx context.Context, game *shared.Game) []oracle.Summary {
	queries := BuildQueries(game)
	resultSets := make([][]SearchResult, len(queries))

	g, searchCtx := errgroup.WithContext(ctx)
	for i, query := range queries {
		g.Go(func() error {
			results, err := p.searcher.Search(searchCtx, query.Text)
			if err != nil {
				p.logger.Warnf("Search failed for %s query on %s: %v", query.Kind, game.GameID, err)
				return nil
			}
			resultSets[i] = results
			return nil
		})
	}
	// Goroutines only record failures, so Wait cannot return an error worth acting on.
	_ = g.Wait()

	var summaries []oracle.Summary
	for i, query := range queries {
		summary := p.summarize(ctx, game, query, resultSets[i])
		if summary.Text == "" {
			continue
		}
		summaries = append(summaries, summary)
	}

	p.logger.Infof("Gathered %d evidence summaries for %s", len(summaries), game.GameID)
	return summaries
}

// summarize fetches the sources for one query and asks the model for a short synthesis.
func (p *Pipeline) summarize(ctx context.Context, game *shared.Game, query Query, results []SearchResult) oracle.Summary {
	title := query.title(game)
	if len(results) == 0 {
		return oracle.Summary{
			Title: title,
			Text:  fmt.Sprintf("No data found for %s.", title),
		}
	}

	contents := make([]string, len(results))
	g, fetchCtx := errgroup.WithContext(ctx)
	for i, result := range results {
		g.Go(func() error {
			text, err := p.fetcher.FetchPage(fetchCtx, result.URL)
			if err != nil {
				p.logger.Debugf("Skipping source %s: %v", result.URL, err)
				return nil
			}
			contents[i] = text
			return nil
		})
	}
	_ = g.Wait()

	var sources []string
	turns := []oracle.Turn{{
		Role: "user",
		Text: fmt.Sprintf("I'm researching the NCAA tournament game between %s and %s. I'll share several sources about: %s",
			game.Team1.Name, game.Team2.Name, title),
	}}
	for i, result := range results {
		if contents[i] == "" {
			continue
		}
		sources = append(sources, result.URL)
		turns = append(turns,
			oracle.Turn{Role: "assistant", Text: "Please share the source."},
			oracle.Turn{Role: "user", Text: fmt.Sprintf("Source %d: %s\nTitle: %s\n\n%s",
				len(sources), result.URL, result.Title, contents[i])},
		)
	}
	if len(sources) == 0 {
		return oracle.Summary{
			Title: title,
			Text:  fmt.Sprintf("No data found for %s.", title),
		}
	}

	turns = append(turns,
		oracle.Turn{Role: "assistant", Text: "I've reviewed all the sources."},
		oracle.Turn{Role: "user", Text: "Based on all the sources above, provide a comprehensive analysis in 250-300 words. Focus on the most decision-relevant facts and note where sources disagree."},
	)

	response, err := p.client.Complete(ctx, query.analysisSystemPrompt(game), turns)
	if err != nil {
		p.logger.Warnf("Summarization failed for %s query on %s: %v", query.Kind, game.GameID, err)
		return oracle.Summary{
			Title:   title,
			Text:    fmt.Sprintf("Error analyzing sources: %v", err),
			Sources: sources,
		}
	}

	return oracle.Summary{
		Title:   title,
		Text:    strings.TrimSpace(response),
		Sources: sources,
	}
}
