/* parse.go
 * Contains the parsing of oracle responses into structured predictions and the extraction of
 * source URLs back out of a conversation.
 */

package oracle

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	winnerPattern     = regexp.MustCompile(`PREDICTED WINNER:\s*(.*)`)
	confidencePattern = regexp.MustCompile(`CONFIDENCE:\s*(\d+)%`)
	reasoningPattern  = regexp.MustCompile(`(?s)REASONING:\s*(.*?)(?:\n\n|$)`)

	sourceLinePattern = regexp.MustCompile(`Source \d+: (https?://[^\s\n]+)`)
	sourcesListLine   = regexp.MustCompile(`Sources: (.*)`)
	urlPattern        = regexp.MustCompile(`(https?://[^,\s]+)`)
)

// parsedResponse holds the three labeled fields extracted from an oracle response.
type parsedResponse struct {
	Winner     string
	Confidence int
	Reasoning  string
}

// parseResponse extracts the labeled prediction fields from free text. Returns false when
// any of the three fields is missing, which triggers the clarification round-trip.
func parseResponse(text string) (parsedResponse, bool) {
	winnerMatch := winnerPattern.FindStringSubmatch(text)
	confidenceMatch := confidencePattern.FindStringSubmatch(text)
	reasoningMatch := reasoningPattern.FindStringSubmatch(text)

	if winnerMatch == nil || confidenceMatch == nil || reasoningMatch == nil {
		return parsedResponse{}, false
	}

	confidence, err := strconv.Atoi(confidenceMatch[1])
	if err != nil {
		return parsedResponse{}, false
	}

	winner := strings.TrimSpace(winnerMatch[1])
	// The winner line sometimes carries markdown decoration
	winner = strings.Trim(winner, "*_ ")
	if winner == "" {
		return parsedResponse{}, false
	}

	return parsedResponse{
		Winner:     winner,
		Confidence: confidence,
		Reasoning:  strings.TrimSpace(reasoningMatch[1]),
	}, true
}

// extractSources collects every source URL mentioned in the user turns of a conversation,
// deduplicated in first-seen order.
func extractSources(turns []Turn) []string {
	var sources []string
	seen := make(map[string]bool)

	appendURL := func(url string) {
		if url != "" && !seen[url] {
			seen[url] = true
			sources = append(sources, url)
		}
	}

	for _, turn := range turns {
		if turn.Role != "user" {
			continue
		}
		for _, m := range sourceLinePattern.FindAllStringSubmatch(turn.Text, -1) {
			appendURL(m[1])
		}
		if m := sourcesListLine.FindStringSubmatch(turn.Text); m != nil {
			for _, u := range urlPattern.FindAllStringSubmatch(m[1], -1) {
				appendURL(u[1])
			}
		}
	}
	return sources
}
