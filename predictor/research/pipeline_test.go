/* pipeline_test.go
 * Tests for the enrichment pipeline using a mock searcher, a mock model client and a local page
 * server.
 */

package research

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracket-bot/predictor/oracle"
	"bracket-bot/predictor/shared"
)

// mockSearcher maps query substrings to canned results.
type mockSearcher struct {
	results map[string][]SearchResult
	err     error
}

func (m *mockSearcher) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	for key, results := range m.results {
		if key == "*" || strings.Contains(query, key) {
			return results, nil
		}
	}
	return nil, nil
}

func testPipelineLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testPipelineGame() *shared.Game {
	return &shared.Game{
		GameID: "R1G1",
		Region: "South",
		Team1:  shared.Team{Name: "Auburn", Seed: 1},
		Team2:  shared.Team{Name: "Alabama State", Seed: 16},
	}
}

func TestGatherEvidenceSummarizesFetchedSources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Auburn leads the nation in scoring margin.</p></body></html>"))
	}))
	defer server.Close()

	searcher := &mockSearcher{results: map[string][]SearchResult{
		"*": {{URL: server.URL, Title: "Tournament preview", PublishedDate: "2026-03-18"}},
	}}
	client := &oracle.MockClient{Responses: []string{"Auburn holds a clear statistical edge."}}
	pipeline := NewPipeline(searcher, client, testPipelineLogger())

	summaries := pipeline.GatherEvidence(context.Background(), testPipelineGame())

	require.Len(t, summaries, 5)
	assert.Equal(t, "Analysis of Auburn vs Alabama State Matchup", summaries[0].Title)
	assert.Equal(t, "Auburn holds a clear statistical edge.", summaries[0].Text)
	assert.Equal(t, []string{server.URL}, summaries[0].Sources)
	assert.Equal(t, 5, client.CallCount())

	// The fetched page text must reach the model.
	sawContent := false
	for _, turn := range client.Calls[0] {
		if turn.Role == "user" && strings.Contains(turn.Text, "scoring margin") {
			sawContent = true
		}
	}
	assert.True(t, sawContent, "expected fetched page content in summarization turns")
}

func TestGatherEvidenceDegradesWhenSearchFails(t *testing.T) {
	searcher := &mockSearcher{err: errors.New("search provider down")}
	client := &oracle.MockClient{Responses: []string{"unused"}}
	pipeline := NewPipeline(searcher, client, testPipelineLogger())

	summaries := pipeline.GatherEvidence(context.Background(), testPipelineGame())

	// Every query degrades to a "No data found" note and the model is never called.
	require.Len(t, summaries, 5)
	for _, summary := range summaries {
		assert.Contains(t, summary.Text, "No data found")
		assert.Empty(t, summary.Sources)
	}
	assert.Equal(t, 0, client.CallCount())
}

func TestGatherEvidenceSkipsUnfetchableSources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dead" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<html><body><p>Alabama State relies on three point shooting.</p></body></html>"))
	}))
	defer server.Close()

	searcher := &mockSearcher{results: map[string][]SearchResult{
		"*": {
			{URL: server.URL + "/dead", Title: "Dead link", PublishedDate: "2026-03-18"},
			{URL: server.URL + "/live", Title: "Scouting report", PublishedDate: "2026-03-17"},
		},
	}}
	client := &oracle.MockClient{Responses: []string{"Summary built from the live source."}}
	pipeline := NewPipeline(searcher, client, testPipelineLogger())

	summaries := pipeline.GatherEvidence(context.Background(), testPipelineGame())

	require.Len(t, summaries, 5)
	assert.Equal(t, []string{server.URL + "/live"}, summaries[0].Sources)
}

func TestGatherEvidenceRecordsSummarizationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Preview text.</p></body></html>"))
	}))
	defer server.Close()

	searcher := &mockSearcher{results: map[string][]SearchResult{
		"*": {{URL: server.URL, Title: "Preview", PublishedDate: "2026-03-18"}},
	}}
	client := &oracle.MockClient{Errors: []error{
		errors.New("model overloaded"),
		errors.New("model overloaded"),
		errors.New("model overloaded"),
		errors.New("model overloaded"),
		errors.New("model overloaded"),
	}}
	pipeline := NewPipeline(searcher, client, testPipelineLogger())

	summaries := pipeline.GatherEvidence(context.Background(), testPipelineGame())

	require.Len(t, summaries, 5)
	for _, summary := range summaries {
		assert.Contains(t, summary.Text, "Error analyzing sources")
		assert.NotEmpty(t, summary.Sources)
	}
}
