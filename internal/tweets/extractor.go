package tweets

import (
	"context"
	"regexp"
	"strings"
)

// tweetIDRegex matches twitter.com / x.com post URLs and captures the numeric ID.
var tweetIDRegex = regexp.MustCompile(`(?:twitter|x)\.com/.{1,15}/(?:web|status(?:es)?)/([0-9]{1,20})`)

// Resolver expands short links found in a text.
type Resolver interface {
	Resolve(ctx context.Context, text string) []string
}

// Extractor finds tweet IDs in message text, including behind t.co links.
type Extractor struct {
	resolver Resolver
}

// NewExtractor creates an extractor. A nil resolver disables short link expansion.
func NewExtractor(resolver Resolver) *Extractor {
	return &Extractor{resolver: resolver}
}

// Extract returns the unique tweet IDs of text in first-seen order, or nil if there are none.
func (e *Extractor) Extract(ctx context.Context, text string) []string {
	var sb strings.Builder
	sb.WriteString(text)
	if e.resolver != nil {
		for _, link := range e.resolver.Resolve(ctx, text) {
			sb.WriteString("\n")
			sb.WriteString(link)
		}
	}
	return ExtractIDs(sb.String())
}

// ExtractIDs applies the tweet URL pattern to text without resolving short links.
func ExtractIDs(text string) []string {
	matches := tweetIDRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		id := m[1]
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
