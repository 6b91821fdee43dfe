/* search.go
 * Implements the Exa web search client. Requests are rate limited and results are sorted by
 * publication date so the pipeline works from the most recent coverage of each matchup.
 */

package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultExaURL      = "https://api.exa.ai"
	searchTimeout      = 30 * time.Second
	maxResultsPerQuery = 3
)

// ExaClient searches the web through the Exa API.
type ExaClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewExaClient creates a search client backed by the Exa API.
func NewExaClient(apiKey string, logger *logrus.Logger) *ExaClient {
	return &ExaClient{
		apiKey:     apiKey,
		baseURL:    defaultExaURL,
		httpClient: &http.Client{Timeout: searchTimeout},
		limiter:    rate.NewLimiter(rate.Every(250*time.Millisecond), 2),
		logger:     logger,
	}
}

type exaSearchRequest struct {
	Query      string `json:"query"`
	NumResults int    `json:"numResults"`
	Type       string `json:"type"`
}

type exaSearchResponse struct {
	Results []SearchResult `json:"results"`
}

/* Search runs one query against the Exa API and returns the most recent results.
 * Preconditions: query is a non-empty search string
 * Postconditions: returns up to maxResultsPerQuery results sorted newest first, or an error if
 * the request failed
 */
func (c *ExaClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(exaSearchRequest{
		Query:      query,
		NumResults: 10,
		Type:       "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, string(data))
	}

	var parsed exaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := parsed.Results
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PublishedDate > results[j].PublishedDate
	})
	if len(results) > maxResultsPerQuery {
		results = results[:maxResultsPerQuery]
	}

	c.logger.Debugf("Search %q returned %d results", query, len(results))
	return results, nil
}
