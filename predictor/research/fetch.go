/* fetch.go
 * Fetches source pages and reduces them to plain text. Pages are stripped of markup and
 * navigation chrome, then truncated to a fixed budget keeping the head and tail of the text so
 * summaries see both the lede and concluding analysis.
 */

package research

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	fetchTimeout     = 30 * time.Second
	maxContentLength = 8000
	truncationMarker = "\n...[content truncated]...\n"
)

// skipTags are elements whose text content is boilerplate rather than article body.
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"svg":      true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"form":     true,
}

// Fetcher downloads source pages for summarization.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a page fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{httpClient: &http.Client{Timeout: fetchTimeout}}
}

/* FetchPage downloads a page and returns its readable text.
 * Preconditions: url is an absolute http(s) URL
 * Postconditions: returns stripped page text truncated to maxContentLength characters, or an
 * error if the page could not be fetched
 */
func (f *Fetcher) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; bracket-bot/1.0)")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s returned status %d", url, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", url, err)
	}

	text := collapseWhitespace(extractText(doc))
	return truncateContent(text), nil
}

// extractText walks the parse tree collecting visible text, skipping boilerplate elements.
func extractText(n *html.Node) string {
	if n.Type == html.ElementNode && skipTags[n.Data] {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data + " "
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(extractText(c))
	}
	return sb.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateContent keeps 60% of the budget from the head of the text and 40% from the tail.
// Cuts land on rune boundaries so the result stays valid UTF-8.
func truncateContent(text string) string {
	if len(text) <= maxContentLength {
		return text
	}
	headEnd := maxContentLength * 6 / 10
	for headEnd > 0 && !utf8.RuneStart(text[headEnd]) {
		headEnd--
	}
	tailStart := len(text) - (maxContentLength - maxContentLength*6/10)
	for tailStart < len(text) && !utf8.RuneStart(text[tailStart]) {
		tailStart++
	}
	return text[:headEnd] + truncationMarker + text[tailStart:]
}
