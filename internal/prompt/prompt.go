// Package prompt builds the turn list sent to the completion model.
package prompt

import (
	"fmt"
	"strings"

	"recall-assistant/internal/model"
)

// DefaultPreamble is the system instruction of every request.
const DefaultPreamble = "You are a helpful assistant. Be sure to answer in short explanations."

const citationTemplate = `Answer the following user query, use listed sources to help you answer. Cite sources as [1] or [2] or [3] after each sentence (not just the very end) to back up your answer (Ex: Correct: [1], Correct: [2][3], Incorrect: [1, 2]).:

User query: %s

%s`

// Assemble orders the request as: system preamble, recalled answers (best match first),
// the history window, then the current query. When sources are present the current
// query is replaced by a citation prompt carrying them.
//
// window may already end with the current user turn; it is not repeated.
// Assemble does no I/O and returns the same turns for the same inputs.
func Assemble(preamble string, matches []model.Match, window []model.Turn, query string, sources []model.Source) []model.Turn {
	if preamble == "" {
		preamble = DefaultPreamble
	}

	turns := make([]model.Turn, 0, 2+len(matches)+len(window))
	turns = append(turns, model.Turn{Role: model.RoleSystem, Content: preamble})

	for _, m := range matches {
		if content, ok := m.Content(); ok {
			turns = append(turns, model.Turn{Role: model.RoleAssistant, Content: content})
		}
	}

	if n := len(window); n > 0 && window[n-1].Role == model.RoleUser && window[n-1].Content == query {
		window = window[:n-1]
	}
	turns = append(turns, window...)

	current := query
	if len(sources) > 0 {
		current = CitationPrompt(query, sources)
	}
	return append(turns, model.Turn{Role: model.RoleUser, Content: current})
}

// CitationPrompt restates query with numbered sources and the inline citation rule.
func CitationPrompt(query string, sources []model.Source) string {
	blocks := make([]string, len(sources))
	for i, s := range sources {
		blocks[i] = fmt.Sprintf("Source [%d]:\n%s", i+1, s.Text)
	}
	return fmt.Sprintf(citationTemplate, query, strings.Join(blocks, "\n\n"))
}

// SourceURLs returns the source URLs without duplicates, in order.
func SourceURLs(sources []model.Source) []string {
	seen := make(map[string]struct{}, len(sources))
	urls := make([]string, 0, len(sources))
	for _, s := range sources {
		if _, ok := seen[s.URL]; ok {
			continue
		}
		seen[s.URL] = struct{}{}
		urls = append(urls, s.URL)
	}
	return urls
}
