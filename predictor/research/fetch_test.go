/* fetch_test.go
 * Tests for page fetching, markup stripping and content truncation.
 */

package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPageStripsMarkupAndChrome(t *testing.T) {
	page := `<html><head><title>Preview</title><style>p { color: red }</style></head>
	<body>
	<nav>Home | Scores | Standings</nav>
	<script>trackPageView();</script>
	<article><p>Auburn enters the tournament as the top overall seed.</p>
	<p>Alabama State won the First Four play-in game.</p></article>
	<footer>Copyright 2026</footer>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	text, err := NewFetcher().FetchPage(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Contains(t, text, "Auburn enters the tournament as the top overall seed.")
	assert.Contains(t, text, "Alabama State won the First Four play-in game.")
	assert.NotContains(t, text, "trackPageView")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "Home | Scores")
	assert.NotContains(t, text, "Copyright 2026")
}

func TestFetchPageReturnsErrorOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := NewFetcher().FetchPage(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestTruncateContentKeepsHeadAndTail(t *testing.T) {
	text := strings.Repeat("a", 6000) + strings.Repeat("z", 6000)

	truncated := truncateContent(text)

	assert.LessOrEqual(t, len(truncated), maxContentLength+len(truncationMarker))
	assert.True(t, strings.HasPrefix(truncated, "aaaa"))
	assert.True(t, strings.HasSuffix(truncated, "zzzz"))
	assert.Contains(t, truncated, truncationMarker)
	// 60% of the budget comes from the head, 40% from the tail.
	assert.Equal(t, strings.Repeat("a", 4800), truncated[:4800])
	assert.Equal(t, strings.Repeat("z", 3200), truncated[len(truncated)-3200:])
}

func TestTruncateContentKeepsValidUTF8(t *testing.T) {
	// Offset the multi-byte runes so both cut points land mid-rune without adjustment.
	text := "a" + strings.Repeat("日", 6000)

	truncated := truncateContent(text)

	assert.True(t, utf8.ValidString(truncated))
	assert.Contains(t, truncated, truncationMarker)
	assert.LessOrEqual(t, len(truncated), maxContentLength+len(truncationMarker))
}

func TestTruncateContentLeavesShortTextAlone(t *testing.T) {
	text := "short article body"
	assert.Equal(t, text, truncateContent(text))
}
