package socratic

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExecutedSearchTerm is a SearchTerm after execution. Exactly one of Summary
// and Err is populated: a failed search is recorded with its error reason
// instead of aborting the rest of the batch.
type ExecutedSearchTerm struct {
	SearchTerm
	Summary string `json:"summary,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Failed reports whether this term's execution failed.
func (t ExecutedSearchTerm) Failed() bool { return t.Err != "" }

// ExecutedSearchPlan is a SearchPlan with per-term summaries merged in.
type ExecutedSearchPlan struct {
	Searches []ExecutedSearchTerm `json:"searches"`
}

// executePlan runs every term of the plan concurrently: search, optionally
// fetch the top result, then summarize. Terms have no ordering dependency on
// each other, so this is the one place fan-out is safe. Per-term failures
// are collected, never propagated — the batch always completes.
func (m *Manager) executePlan(ctx context.Context, plan SearchPlan) (ExecutedSearchPlan, float64) {
	executed := make([]ExecutedSearchTerm, len(plan.Searches))
	var mu sync.Mutex
	var total float64

	g, ctx := errgroup.WithContext(ctx)
	for i, term := range plan.Searches {
		g.Go(func() error {
			summary, cost, err := m.executeTerm(ctx, term)
			mu.Lock()
			total += cost
			mu.Unlock()
			executed[i] = ExecutedSearchTerm{SearchTerm: term, Summary: summary}
			if err != nil {
				m.logger.Warn("search term failed",
					zap.String("session", m.id),
					zap.String("query", term.Query),
					zap.Error(err))
				executed[i].Summary = ""
				executed[i].Err = err.Error()
			}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines never return an error

	return ExecutedSearchPlan{Searches: executed}, total
}

func (m *Manager) executeTerm(ctx context.Context, term SearchTerm) (string, float64, error) {
	results, err := m.searcher.Search(ctx, term.Query)
	if err != nil {
		return "", 0, fmt.Errorf("search: %w", err)
	}
	cost := m.searchCost

	// Page fetch is best effort; a summary from snippets alone is still useful.
	page := ""
	if m.fetcher != nil && len(results) > 0 {
		page, err = m.fetcher.Fetch(ctx, results[0].URL)
		if err != nil {
			m.logger.Debug("fetch failed, summarizing from snippets",
				zap.String("session", m.id),
				zap.String("url", results[0].URL),
				zap.Error(err))
			page = ""
		}
	}

	resp, err := m.summarizer.Generate(ctx, summarizerSystemPrompt, buildSummaryUserPrompt(term, results, page))
	if err != nil {
		return "", cost, fmt.Errorf("summarizer: %w", err)
	}
	return responseContent(resp), cost + resp.Cost, nil
}
