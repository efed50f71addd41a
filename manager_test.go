package socratic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM plays back canned responses per stage, keyed by system prompt,
// and records the user prompts it saw.
type scriptedLLM struct {
	questions []string
	plans     []string
	summaries []string

	qIdx, pIdx, sIdx int

	costPerCall float64
	prompts     []string
}

func (s *scriptedLLM) next(list []string, idx *int) (string, error) {
	if *idx >= len(list) {
		return "", errors.New("no scripted response available")
	}
	resp := list[*idx]
	*idx++
	return resp, nil
}

func (s *scriptedLLM) Generate(_ context.Context, systemPrompt, userPrompt string) (LLMResponse, error) {
	s.prompts = append(s.prompts, userPrompt)
	var text string
	var err error
	switch systemPrompt {
	case questionerInitialSystemPrompt, questionerFollowUpSystemPrompt:
		text, err = s.next(s.questions, &s.qIdx)
	case plannerSystemPrompt:
		text, err = s.next(s.plans, &s.pIdx)
	case summarizerSystemPrompt:
		text, err = s.next(s.summaries, &s.sIdx)
	default:
		return LLMResponse{}, errors.New("unknown system prompt")
	}
	if err != nil {
		return LLMResponse{}, err
	}
	return LLMResponse{Text: text, Cost: s.costPerCall}, nil
}

// fakeSearch returns fixed results, failing for queries listed in failOn.
type fakeSearch struct {
	results []SearchResult
	failOn  map[string]string
}

func (f fakeSearch) Search(_ context.Context, query string) ([]SearchResult, error) {
	if reason, ok := f.failOn[query]; ok {
		return nil, errors.New(reason)
	}
	return f.results, nil
}

func questionJSON(reasoning, question string) string {
	return fmt.Sprintf(`{"reasoning": %q, "question": %q}`, reasoning, question)
}

const threeTermPlan = `{"searches": [
	{"reason": "fundamentals first", "query": "machine learning basics"},
	{"reason": "hands-on material", "query": "beginner ML tutorials"},
	{"reason": "time-boxed learning", "query": "learn ML a few hours a week"}
]}`

func TestManagerThreeQuestionFlow(t *testing.T) {
	llm := &scriptedLLM{
		questions: []string{
			questionJSON("scope the request", "What is your experience level?"),
			questionJSON("narrow the topic", "Which areas interest you most?"),
			questionJSON("plan the effort", "How much time can you spend per week?"),
		},
		plans: []string{threeTermPlan},
	}
	mgr := New(WithModel(llm), WithQuestionBudget(3), WithSearchCount(3))

	out, err := mgr.Start(context.Background(), "I want to learn about machine learning")
	require.NoError(t, err)
	require.Equal(t, OutputQuestion, out.Kind)
	assert.Equal(t, "What is your experience level?", out.Question.Question)
	assert.Equal(t, StateAwaitingAnswer, mgr.State())

	out, err = mgr.Submit(context.Background(), "I'm a beginner")
	require.NoError(t, err)
	require.Equal(t, OutputQuestion, out.Kind)
	// The follow-up prompt carried the full context, including the first answer.
	assert.Contains(t, llm.prompts[1], `"I'm a beginner"`)
	assert.Contains(t, llm.prompts[1], "I want to learn about machine learning")

	out, err = mgr.Submit(context.Background(), "basics and simple models")
	require.NoError(t, err)
	require.Equal(t, OutputQuestion, out.Kind)

	// Exactly N questions before the plan.
	out, err = mgr.Submit(context.Background(), "2-3 hours per week")
	require.NoError(t, err)
	require.Equal(t, OutputPlan, out.Kind)
	assert.Len(t, out.Plan.Searches, 3)
	assert.Equal(t, 3, mgr.Session().TurnsCompleted())
	assert.Equal(t, StateDone, mgr.State())

	// The planner saw every Q&A pair.
	plannerPrompt := llm.prompts[len(llm.prompts)-1]
	assert.Contains(t, plannerPrompt, "2-3 hours per week")
	assert.Contains(t, plannerPrompt, mgr.Session().Serialize())

	final, ok := mgr.Result()
	require.True(t, ok)
	assert.Equal(t, OutputPlan, final.Kind)

	// The final artifact is produced exactly once.
	_, err = mgr.Submit(context.Background(), "another answer")
	require.ErrorIs(t, err, ErrSessionComplete)
	_, err = mgr.Advance(context.Background())
	require.ErrorIs(t, err, ErrSessionComplete)
}

func TestManagerZeroBudgetPlansImmediately(t *testing.T) {
	llm := &scriptedLLM{plans: []string{threeTermPlan}}
	mgr := New(WithModel(llm), WithQuestionBudget(0))

	out, err := mgr.Start(context.Background(), "quantum computing")
	require.NoError(t, err)
	require.Equal(t, OutputPlan, out.Kind)
	assert.Len(t, out.Plan.Searches, 3)
	assert.Equal(t, StateDone, mgr.State())

	// Planner worked from the initial query alone.
	assert.Contains(t, llm.prompts[0], `"qa_history":[]`)
}

func TestManagerGuards(t *testing.T) {
	llm := &scriptedLLM{
		questions: []string{questionJSON("r", "q1")},
		plans:     []string{threeTermPlan},
	}
	mgr := New(WithModel(llm), WithQuestionBudget(1))

	// Nothing to answer or advance before Start.
	_, err := mgr.Submit(context.Background(), "early")
	require.ErrorIs(t, err, ErrNoPendingTurn)
	_, err = mgr.Advance(context.Background())
	require.ErrorIs(t, err, ErrSessionNotStarted)
	_, err = mgr.AskQuestion(context.Background())
	require.ErrorIs(t, err, ErrSessionNotStarted)

	out, err := mgr.Start(context.Background(), "some topic")
	require.NoError(t, err)
	require.Equal(t, OutputQuestion, out.Kind)

	// Starting twice is a protocol error.
	_, err = mgr.Start(context.Background(), "another topic")
	require.ErrorIs(t, err, ErrSessionStarted)

	// Asking while a turn is pending is a protocol error.
	_, err = mgr.AskQuestion(context.Background())
	require.ErrorIs(t, err, ErrPendingTurnExists)

	out, err = mgr.Submit(context.Background(), "an answer")
	require.NoError(t, err)
	require.Equal(t, OutputPlan, out.Kind)

	// Budget met: a further question request is rejected, not downgraded.
	_, err = mgr.AskQuestion(context.Background())
	require.ErrorIs(t, err, ErrBudgetExceeded)
}

func TestManagerMalformedQuestionLeavesSessionIntact(t *testing.T) {
	llm := &scriptedLLM{
		questions: []string{
			`{"reasoning": "forgot the question field"}`,
			questionJSON("recovered", "What level are you at?"),
		},
		plans: []string{threeTermPlan},
	}
	mgr := New(WithModel(llm), WithQuestionBudget(1))

	_, err := mgr.Start(context.Background(), "a topic")
	require.ErrorIs(t, err, ErrMalformedGeneration)

	// No partial turn was recorded.
	require.False(t, mgr.Session().HasPendingTurn())
	require.Equal(t, 0, mgr.Session().TurnsCompleted())

	// The caller decides to retry; the next generation succeeds.
	out, err := mgr.Advance(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutputQuestion, out.Kind)
	assert.Equal(t, "What level are you at?", out.Question.Question)
}

func TestManagerDuplicatePlanSurfaced(t *testing.T) {
	llm := &scriptedLLM{
		plans: []string{
			`{"searches": [
				{"reason": "r1", "query": "Rust vs Go"},
				{"reason": "r2", "query": " rust VS go "}
			]}`,
			threeTermPlan,
		},
	}
	mgr := New(WithModel(llm), WithQuestionBudget(0))

	_, err := mgr.Start(context.Background(), "compare rust and go")
	require.ErrorIs(t, err, ErrDuplicateSearchTerm)
	assert.Equal(t, StatePlanning, mgr.State())

	// Retry produces a valid plan and completes the session.
	out, err := mgr.Advance(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutputPlan, out.Kind)
	assert.Equal(t, StateDone, mgr.State())
}

func TestManagerExecutionPartialFailure(t *testing.T) {
	llm := &scriptedLLM{
		plans:     []string{threeTermPlan},
		summaries: []string{"summary one", "summary two"},
	}
	searcher := fakeSearch{
		results: []SearchResult{{Title: "t", URL: "https://example.com", Snippet: "s"}},
		failOn:  map[string]string{"beginner ML tutorials": "connection refused"},
	}
	mgr := New(WithModel(llm), WithQuestionBudget(0), WithSearchProvider(searcher))

	out, err := mgr.Start(context.Background(), "machine learning")
	require.NoError(t, err)
	require.Equal(t, OutputExecutedPlan, out.Kind)
	require.Len(t, out.Executed.Searches, 3)
	assert.Equal(t, StateDone, mgr.State())

	var failed, succeeded int
	for _, term := range out.Executed.Searches {
		if term.Failed() {
			failed++
			assert.Contains(t, term.Err, "connection refused")
			assert.Empty(t, term.Summary)
		} else {
			succeeded++
			assert.True(t, strings.HasPrefix(term.Summary, "summary "))
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, succeeded)
}

func TestManagerCostTracking(t *testing.T) {
	llm := &scriptedLLM{
		questions:   []string{questionJSON("r", "q1")},
		plans:       []string{threeTermPlan},
		summaries:   []string{"s1", "s2", "s3"},
		costPerCall: 0.01,
	}
	searcher := fakeSearch{results: []SearchResult{{Title: "t", URL: "u", Snippet: "s"}}}
	mgr := New(
		WithModel(llm),
		WithQuestionBudget(1),
		WithSearchProvider(searcher),
		WithSearchCost(0.005),
	)

	out, err := mgr.Start(context.Background(), "a topic")
	require.NoError(t, err)
	assert.InDelta(t, 0.01, out.Cost, 1e-9)

	out, err = mgr.Submit(context.Background(), "an answer")
	require.NoError(t, err)
	// question(0.01) + plan(0.01) + 3×(search 0.005 + summary 0.01) = 0.065
	assert.InDelta(t, 0.065, out.Cost, 1e-9)
}

func TestManagerPlanOnlyWithoutSearcher(t *testing.T) {
	llm := &scriptedLLM{plans: []string{threeTermPlan}}
	mgr := New(WithModel(llm), WithQuestionBudget(0))

	out, err := mgr.Start(context.Background(), "a topic")
	require.NoError(t, err)
	assert.Equal(t, OutputPlan, out.Kind)
	assert.Nil(t, out.Executed)
}
