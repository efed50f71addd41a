package socratic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPendingTurnLifecycle(t *testing.T) {
	s := NewSession("  what is quantum computing  ")
	require.Equal(t, "what is quantum computing", s.InitialQuery)
	require.False(t, s.HasPendingTurn())
	require.Equal(t, 0, s.TurnsCompleted())

	// Answering with nothing asked fails.
	require.ErrorIs(t, s.AnswerPendingTurn("eager answer"), ErrNoPendingTurn)

	q := Question{Reasoning: "scope the topic", Question: "Hardware or algorithms?"}
	require.NoError(t, s.AppendPendingTurn(q))
	require.True(t, s.HasPendingTurn())
	require.Equal(t, 0, s.TurnsCompleted())
	assert.Equal(t, RoleAgent, s.Turns[0].Question.Role)

	// A second question while one is pending is rejected.
	require.ErrorIs(t, s.AppendPendingTurn(q), ErrPendingTurnExists)

	require.NoError(t, s.AnswerPendingTurn("algorithms"))
	require.False(t, s.HasPendingTurn())
	require.Equal(t, 1, s.TurnsCompleted())
	assert.Equal(t, RoleUser, s.Turns[0].Answer.Role)
	assert.Equal(t, "algorithms", s.Turns[0].Answer.Answer)

	// Nothing pending anymore.
	require.ErrorIs(t, s.AnswerPendingTurn("again"), ErrNoPendingTurn)
}

func TestSessionSerializeCanonicalForm(t *testing.T) {
	s := NewSession("learn go")
	require.NoError(t, s.AppendPendingTurn(Question{Reasoning: "why", Question: "what level?"}))

	out := s.Serialize()
	assert.Contains(t, out, `"initial_query":"learn go"`)
	assert.Contains(t, out, `"qa_history":[`)
	assert.Contains(t, out, `"reasoning":"why"`)
	assert.Contains(t, out, `"question":"what level?"`)
	// A pending turn's answer is omitted entirely, not rendered as null.
	assert.NotContains(t, out, `"answer"`)

	// Empty history renders as an empty array.
	empty := NewSession("q")
	assert.Contains(t, empty.Serialize(), `"qa_history":[]`)
}

func TestSessionRoundTrip(t *testing.T) {
	s := NewSession("learn rust")
	for i, qa := range []struct{ q, a string }{
		{"what level?", "beginner"},
		{"what goal?", "systems programming"},
	} {
		require.NoError(t, s.AppendPendingTurn(Question{Reasoning: "r", Question: qa.q}), "turn %d", i)
		require.NoError(t, s.AnswerPendingTurn(qa.a), "turn %d", i)
	}
	// Leave one turn pending.
	require.NoError(t, s.AppendPendingTurn(Question{Reasoning: "r3", Question: "how much time?"}))

	parsed, err := ParseSession([]byte(s.Serialize()))
	require.NoError(t, err)
	require.Equal(t, s, parsed)
	assert.Equal(t, 2, parsed.TurnsCompleted())
	assert.True(t, parsed.HasPendingTurn())
}

func TestParseSessionRejectsGarbage(t *testing.T) {
	_, err := ParseSession([]byte("not json"))
	require.Error(t, err)
}

func TestSessionTextSummary(t *testing.T) {
	s := NewSession("learn go")
	require.NoError(t, s.AppendPendingTurn(Question{Reasoning: "r", Question: "what level?"}))
	require.NoError(t, s.AnswerPendingTurn("beginner"))
	require.NoError(t, s.AppendPendingTurn(Question{Reasoning: "r", Question: "how much time?"}))

	want := "Initial query: learn go\nQ1: what level?\nA1: beginner\nQ2: how much time?"
	assert.Equal(t, want, s.TextSummary())
}
