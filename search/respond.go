package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/newscout/core"
)

const (
	maxRenderedItems = 3
	excerptLimit     = 150
)

// Respond renders the assistant's reply for one search turn as Markdown.
// With no relevant results it returns the analyzer's suggestions, falling
// back to a generic retry prompt.
func Respond(query string, analysis core.Analysis) string {
	if !analysis.HasRelevant || len(analysis.Relevant) == 0 {
		if analysis.Suggestions != "" {
			return analysis.Suggestions
		}
		return fmt.Sprintf("I couldn't find any news about '%s'. Please try different keywords.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d news items about '%s':\n\n", len(analysis.Relevant), query)

	shown := analysis.Relevant
	if len(shown) > maxRenderedItems {
		shown = shown[:maxRenderedItems]
	}

	for i, item := range shown {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, orNA(item.Title))
		fmt.Fprintf(&b, "   Source: %s", orNA(item.Source))
		if item.Date != "" {
			fmt.Fprintf(&b, " | %s", formatDate(item.Date))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "   %s\n", excerpt(item.Body))
		link := item.URL
		if link == "" {
			link = "#"
		}
		fmt.Fprintf(&b, "   [Read more](%s)\n\n", link)
		if item.Reason != "" {
			fmt.Fprintf(&b, "   *Relevance: %s*\n\n", item.Reason)
		}
	}

	if hidden := len(analysis.Relevant) - len(shown); hidden > 0 {
		fmt.Fprintf(&b, "...and %d more matching items.\n\n", hidden)
	}

	b.WriteString("What else would you like to know?")
	return b.String()
}

// formatDate renders an RFC 3339 timestamp as YYYY-MM-DD, passing
// unparseable dates through verbatim.
func formatDate(date string) string {
	ts, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return ts.Format("2006-01-02")
}

// excerpt truncates a summary to the first 150 runes.
func excerpt(body string) string {
	if body == "" {
		return "N/A"
	}
	runes := []rune(body)
	if len(runes) > excerptLimit {
		runes = runes[:excerptLimit]
	}
	return string(runes) + "..."
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
