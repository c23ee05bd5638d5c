package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/newscout/core"
)

const rewriteSystemPrompt = `You are an assistant that helps users generate precise search queries. Based on the user's input and the conversation history, produce one concise, precise search query that will retrieve the most relevant news results from a search engine. Reply with the query text only: no quotes, no explanation, no preamble.`

const rewriteUserTemplate = `Generate a search query for finding news about the following: %s. Do not add any time or date qualifiers unless the user's input already contains one.`

const analyzeSystemPrompt = `You are an assistant that evaluates how relevant search results are to a query. Score each result's relevance to the query and, when results are not relevant, suggest how the search could be improved. For every relevant result, give a concrete reason why it is relevant.`

const analyzeUserTemplate = `Query: %s

Search results:
%s
Analyze the relevance of these results to the query and reply with a JSON object in exactly this format:
{
  "has_relevant": true or false,
  "analysis": "overall assessment",
  "result_analysis": [
    {
      "index": 0,
      "relevance_score": score from 1 to 10,
      "relevance_reason": "concrete reason this result is relevant to the query"
    },
    ...
  ],
  "suggestions": "if the results are not relevant, how to improve the search"
}

The index field is the zero-based number of the result as listed above. Output ONLY the JSON object, with no preamble and no trailing text.`

// noResultsSuggestion is the canned advice returned when retrieval came back
// empty and no model call was made.
const noResultsSuggestion = "No news found for '%s'. Try more specific keywords, or consider changing the search topic."

// buildCandidateListing renders the numbered candidate summary embedded in the
// analyzer prompt. Indices are zero-based to match the result_analysis schema.
func buildCandidateListing(items []core.NewsItem) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. Title: %s\n", i, orNA(item.Title))
		fmt.Fprintf(&b, "   Source: %s\n", orNA(item.Source))
		if item.Date != "" {
			fmt.Fprintf(&b, "   Date: %s\n", item.Date)
		}
		fmt.Fprintf(&b, "   Summary: %s\n\n", orNA(item.Body))
	}
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
