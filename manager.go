package socratic

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State identifies where a Manager is in the session lifecycle.
type State string

const (
	StateAwaitingQuery  State = "awaiting_query"
	StateAwaitingAnswer State = "awaiting_answer"
	StatePlanning       State = "planning"
	StateExecuting      State = "executing"
	StateDone           State = "done"
)

// OutputKind tags the artifact a Manager call produced.
type OutputKind string

const (
	OutputQuestion     OutputKind = "question"
	OutputPlan         OutputKind = "plan"
	OutputExecutedPlan OutputKind = "executed_plan"
)

// Output is the single artifact produced by one Manager call: the next
// question to show the user, or the final (possibly executed) search plan.
// Exactly one of Question, Plan, and Executed is set, per Kind.
type Output struct {
	Kind     OutputKind
	Question *Question
	Plan     *SearchPlan
	Executed *ExecutedSearchPlan
	// Cost is the total cost in dollars accumulated by the session so far.
	Cost float64
}

// Manager drives one research conversation: it asks the configured number of
// clarifying questions, then hands the accumulated context to the planner
// and, when a search provider is configured, executes the plan.
//
// A Manager owns its Session exclusively and is driven sequentially — one
// external input produces exactly one state transition and one Output, with
// at most one generation call in flight at a time. It is not safe for
// concurrent use; run one Manager per session.
type Manager struct {
	questioner LLMProvider
	planner    LLMProvider
	summarizer LLMProvider
	searcher   SearchProvider
	fetcher    FetchProvider

	budget     int
	termCount  int
	searchCost float64
	debug      bool
	logger     *zap.Logger

	id      string
	state   State
	session *Session
	cost    float64
	final   *Output
}

const (
	defaultQuestionBudget = 3
	defaultSearchCount    = 3
)

// New constructs a Manager with optional configuration. At minimum a
// questioner model must be supplied; the planner and summarizer fall back to
// it when not set separately.
func New(opts ...Option) *Manager {
	m := &Manager{
		budget:    defaultQuestionBudget,
		termCount: defaultSearchCount,
		id:        uuid.NewString(),
		state:     StateAwaitingQuery,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.planner == nil {
		m.planner = m.questioner
	}
	if m.summarizer == nil {
		m.summarizer = m.planner
	}
	if m.logger == nil {
		if m.debug {
			m.logger, _ = zap.NewDevelopment()
		} else {
			m.logger = zap.NewNop()
		}
	}
	return m
}

// ID returns the session trace id.
func (m *Manager) ID() string { return m.id }

// State returns the current lifecycle state.
func (m *Manager) State() State { return m.state }

// Session exposes the underlying session. Callers must not mutate it;
// answers go through Submit.
func (m *Manager) Session() *Session { return m.session }

// Result returns the final artifact once the session is done.
func (m *Manager) Result() (Output, bool) {
	if m.final == nil {
		return Output{}, false
	}
	return *m.final, true
}

// Start begins the session with the user's research query and produces the
// first output: the first clarifying question, or the plan directly when
// the question budget is zero.
func (m *Manager) Start(ctx context.Context, initialQuery string) (Output, error) {
	if m.state == StateDone {
		return Output{}, ErrSessionComplete
	}
	if m.session != nil {
		return Output{}, ErrSessionStarted
	}
	if m.questioner == nil && m.planner == nil {
		return Output{}, errors.New("socratic: no model configured")
	}
	s := NewSession(initialQuery)
	if s.InitialQuery == "" {
		return Output{}, errors.New("socratic: initial query is empty")
	}
	m.session = s
	m.logger.Info("session started",
		zap.String("session", m.id),
		zap.Int("question_budget", m.budget),
		zap.Int("search_terms", m.termCount))
	return m.step(ctx)
}

// Submit records the user's answer to the pending question and produces the
// next output. After the final plan has been produced, Submit fails with
// ErrSessionComplete.
func (m *Manager) Submit(ctx context.Context, answerText string) (Output, error) {
	if m.state == StateDone {
		return Output{}, ErrSessionComplete
	}
	if m.session == nil {
		return Output{}, ErrNoPendingTurn
	}
	if err := m.session.AnswerPendingTurn(answerText); err != nil {
		return Output{}, err
	}
	m.logger.Debug("answer recorded",
		zap.String("session", m.id),
		zap.Int("turns_completed", m.session.TurnsCompleted()))
	return m.step(ctx)
}

// Advance retries the pending generation step after a transient failure
// (for example a failed question generation or planning call). It never
// records input and fails if the session is instead waiting for an answer.
func (m *Manager) Advance(ctx context.Context) (Output, error) {
	if m.state == StateDone {
		return Output{}, ErrSessionComplete
	}
	if m.session == nil {
		return Output{}, ErrSessionNotStarted
	}
	return m.step(ctx)
}

// step performs exactly one state transition. The automatic
// planning→execution chain counts as a single logical step from the
// caller's perspective.
func (m *Manager) step(ctx context.Context) (Output, error) {
	switch action := NextAction(m.session, m.budget); action {
	case ActionAskQuestion:
		return m.AskQuestion(ctx)
	case ActionAwaitAnswer:
		return Output{}, fmt.Errorf("%w: a question is awaiting an answer", ErrPendingTurnExists)
	case ActionPlanSearches:
		return m.planAndExecute(ctx)
	default:
		return Output{}, fmt.Errorf("socratic: unknown action %q", action)
	}
}

// AskQuestion runs the question stage: generate the next question and append
// it as a pending turn. Requesting a question once the budget is met is a
// protocol error, rejected with ErrBudgetExceeded rather than silently
// downgraded to planning.
func (m *Manager) AskQuestion(ctx context.Context) (Output, error) {
	if m.session == nil {
		return Output{}, ErrSessionNotStarted
	}
	if m.session.TurnsCompleted() >= m.budget {
		return Output{}, ErrBudgetExceeded
	}
	if m.session.HasPendingTurn() {
		return Output{}, ErrPendingTurnExists
	}

	q, cost, err := m.generateQuestion(ctx)
	m.cost += cost
	if err != nil {
		return Output{}, err
	}
	if err := m.session.AppendPendingTurn(q); err != nil {
		return Output{}, err
	}
	m.state = StateAwaitingAnswer
	m.logger.Info("question asked",
		zap.String("session", m.id),
		zap.Int("turn", len(m.session.Turns)),
		zap.String("question", q.Question))
	return Output{Kind: OutputQuestion, Question: &q, Cost: m.cost}, nil
}

func (m *Manager) planAndExecute(ctx context.Context) (Output, error) {
	m.state = StatePlanning
	plan, cost, err := m.generatePlan(ctx)
	m.cost += cost
	if err != nil {
		// Session stays valid; the caller may retry via Advance.
		return Output{}, err
	}
	m.logger.Info("plan produced",
		zap.String("session", m.id),
		zap.Int("terms", len(plan.Searches)))

	if m.searcher == nil {
		out := Output{Kind: OutputPlan, Plan: &plan, Cost: m.cost}
		m.finish(out)
		return out, nil
	}

	m.state = StateExecuting
	executed, execCost := m.executePlan(ctx, plan)
	m.cost += execCost
	out := Output{Kind: OutputExecutedPlan, Executed: &executed, Cost: m.cost}
	m.finish(out)
	return out, nil
}

func (m *Manager) finish(out Output) {
	m.state = StateDone
	m.final = &out
	m.logger.Info("session complete",
		zap.String("session", m.id),
		zap.Float64("cost", m.cost))
}
