package socratic

import "go.uber.org/zap"

// Option configures a Manager.
type Option func(*Manager)

// WithModel sets one model for all three generation roles (questioner,
// planner, summarizer).
func WithModel(m LLMProvider) Option {
	return func(mgr *Manager) {
		mgr.questioner = m
		mgr.planner = m
		mgr.summarizer = m
	}
}

// WithQuestionerModel sets the model used to generate clarifying questions.
func WithQuestionerModel(m LLMProvider) Option {
	return func(mgr *Manager) { mgr.questioner = m }
}

// WithPlannerModel sets the model used to plan web searches.
func WithPlannerModel(m LLMProvider) Option {
	return func(mgr *Manager) { mgr.planner = m }
}

// WithSummarizerModel sets the model used to summarize search results.
func WithSummarizerModel(m LLMProvider) Option {
	return func(mgr *Manager) { mgr.summarizer = m }
}

// WithSearchProvider sets the search implementation. When configured, the
// plan is executed and the session ends with an ExecutedSearchPlan; without
// it the session ends with the raw plan.
func WithSearchProvider(s SearchProvider) Option {
	return func(mgr *Manager) { mgr.searcher = s }
}

// WithFetchProvider sets the optional page fetcher used to enrich summaries
// with the top result's full text.
func WithFetchProvider(f FetchProvider) Option {
	return func(mgr *Manager) { mgr.fetcher = f }
}

// WithQuestionBudget sets how many clarifying questions are asked before
// planning. Zero is valid and skips questioning entirely.
func WithQuestionBudget(n int) Option {
	return func(mgr *Manager) {
		if n >= 0 {
			mgr.budget = n
		}
	}
}

// WithSearchCount sets how many search terms the planner is asked for.
func WithSearchCount(k int) Option {
	return func(mgr *Manager) {
		if k > 0 {
			mgr.termCount = k
		}
	}
}

// WithSearchCost sets the cost in dollars attributed to each search call,
// for providers that bill per query.
func WithSearchCost(c float64) Option {
	return func(mgr *Manager) {
		if c >= 0 {
			mgr.searchCost = c
		}
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(mgr *Manager) { mgr.logger = l }
}

// WithDebug enables a development logger (prompts and responses at debug
// level) when no logger was supplied.
func WithDebug(enabled bool) Option {
	return func(mgr *Manager) { mgr.debug = enabled }
}
