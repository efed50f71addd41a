package socratic

// Action is the next step the orchestrator should take for a session.
type Action string

const (
	// ActionAskQuestion means the question budget has headroom and no turn
	// is pending; the questioner should produce the next question.
	ActionAskQuestion Action = "ask_question"
	// ActionAwaitAnswer means a pending turn exists; the caller must supply
	// an answer before anything else can happen.
	ActionAwaitAnswer Action = "await_answer"
	// ActionPlanSearches means the budget is met and the planner should
	// produce the search plan.
	ActionPlanSearches Action = "plan_searches"
)

// NextAction maps the current session state to the next action under the
// given question budget. Pure function; a budget of zero degenerates
// directly to planning on an empty history.
func NextAction(s *Session, budget int) Action {
	if s.HasPendingTurn() {
		return ActionAwaitAnswer
	}
	if s.TurnsCompleted() < budget {
		return ActionAskQuestion
	}
	return ActionPlanSearches
}
