package socratic

import "context"

// SearchResult is a single item returned by a SearchProvider.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// SearchProvider executes a query and returns results.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// FetchProvider retrieves raw content for a URL. The execution stage uses it
// to read the top result's full page when snippets alone would make a thin
// summary.
type FetchProvider interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// LLMResponse is returned by LLMProvider.Generate and carries the generated
// text, optional reasoning tokens, and the cost (in dollars) of the call.
type LLMResponse struct {
	Text      string
	Reasoning string
	Cost      float64
}

// LLMProvider is implemented by user-supplied language model clients.
// Implementations must be stateless across calls: every call receives the
// full session context explicitly and no conversational memory may be kept
// between calls.
type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (LLMResponse, error)
}
