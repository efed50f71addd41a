package socratic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// SearchTerm is a single proposed web query with the planner's rationale.
type SearchTerm struct {
	Reason string `json:"reason"`
	Query  string `json:"query"`
}

// SearchPlan is the ordered set of searches proposed for a session, produced
// once after the question budget is met. Construction enforces that all
// queries are unique under case-insensitive, whitespace-normalized
// comparison.
type SearchPlan struct {
	Searches []SearchTerm `json:"searches"`
}

// NewSearchPlan validates the proposed terms and builds a plan. Duplicate
// queries fail with ErrDuplicateSearchTerm: a duplicate means the planner
// model violated its contract, and the caller decides whether to retry
// generation or surface the error.
func NewSearchPlan(terms []SearchTerm) (SearchPlan, error) {
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		key := normalizeQuery(t.Query)
		if key == "" {
			return SearchPlan{}, fmt.Errorf("%w: search term has an empty query", ErrMalformedGeneration)
		}
		if seen[key] {
			return SearchPlan{}, fmt.Errorf("%w: %q", ErrDuplicateSearchTerm, t.Query)
		}
		seen[key] = true
	}
	return SearchPlan{Searches: terms}, nil
}

// normalizeQuery lowercases and collapses internal whitespace so that
// "Rust vs Go" and " rust  VS go " compare equal.
func normalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// generatePlan asks the planner model for the session's search plan from the
// full serialized context. Must be invoked at most once per session; the
// caller persists the first plan produced rather than regenerating.
func (m *Manager) generatePlan(ctx context.Context) (SearchPlan, float64, error) {
	user := buildPlannerUserPrompt(m.session, m.termCount)
	m.logger.Debug("planner prompt", zap.String("session", m.id), zap.String("user", user))

	resp, err := m.planner.Generate(ctx, plannerSystemPrompt, user)
	if err != nil {
		return SearchPlan{}, 0, fmt.Errorf("planner: %w", err)
	}
	raw := responseContent(resp)
	m.logger.Debug("planner response", zap.String("session", m.id), zap.String("raw", raw))

	var parsed struct {
		Searches []SearchTerm `json:"searches"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		// Some models return the bare array without the wrapper object.
		if arrErr := json.Unmarshal([]byte(extractJSON(raw)), &parsed.Searches); arrErr != nil {
			return SearchPlan{}, resp.Cost, fmt.Errorf("%w: plan JSON parse: %v (raw: %.200s)", ErrMalformedGeneration, err, raw)
		}
	}
	if len(parsed.Searches) == 0 {
		return SearchPlan{}, resp.Cost, fmt.Errorf("%w: plan contains no searches (raw: %.200s)", ErrMalformedGeneration, raw)
	}
	for i := range parsed.Searches {
		parsed.Searches[i].Reason = strings.TrimSpace(parsed.Searches[i].Reason)
		parsed.Searches[i].Query = strings.TrimSpace(parsed.Searches[i].Query)
	}
	if len(parsed.Searches) != m.termCount {
		m.logger.Warn("planner returned unexpected term count",
			zap.String("session", m.id),
			zap.Int("want", m.termCount),
			zap.Int("got", len(parsed.Searches)))
	}

	plan, err := NewSearchPlan(parsed.Searches)
	if err != nil {
		return SearchPlan{}, resp.Cost, err
	}
	return plan, resp.Cost, nil
}
