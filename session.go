package socratic

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Fixed role tags carried in the serialized session.
const (
	RoleAgent = "Agent"
	RoleUser  = "User"
)

// Question is one clarifying question produced by the questioner, together
// with the model's reasoning for asking it. Immutable once created.
type Question struct {
	Role      string `json:"role"`
	Reasoning string `json:"reasoning"`
	Question  string `json:"question"`
}

// Answer is the user's reply to a Question. Immutable once created.
type Answer struct {
	Role   string `json:"role"`
	Answer string `json:"answer"`
}

// Turn is one question/answer exchange. A Turn is created pending (Answer
// nil) and transitions to answered exactly once.
type Turn struct {
	Question Question `json:"question"`
	Answer   *Answer  `json:"answer,omitempty"`
}

// Pending reports whether the turn is still waiting for an answer.
func (t Turn) Pending() bool { return t.Answer == nil }

// Session is the accumulated state of one research conversation: the user's
// original query plus the ordered question/answer history. Turns are
// append-only; at most one pending turn exists at any time.
//
// The JSON field names are the persisted wire form and must not change.
type Session struct {
	InitialQuery string `json:"initial_query"`
	Turns        []Turn `json:"qa_history"`
}

// NewSession starts a session for the given research query. The query is
// set once and never mutated.
func NewSession(initialQuery string) *Session {
	// Turns starts non-nil so an empty history serializes as [], the form
	// the round-trip law and the planner prompt both expect.
	return &Session{InitialQuery: strings.TrimSpace(initialQuery), Turns: []Turn{}}
}

// HasPendingTurn reports whether the most recent turn is still unanswered.
func (s *Session) HasPendingTurn() bool {
	return len(s.Turns) > 0 && s.Turns[len(s.Turns)-1].Pending()
}

// TurnsCompleted returns the number of fully answered turns.
func (s *Session) TurnsCompleted() int {
	n := len(s.Turns)
	if s.HasPendingTurn() {
		n--
	}
	return n
}

// AppendPendingTurn records a freshly generated question as a pending turn.
// Fails if the previous question has not been answered yet.
func (s *Session) AppendPendingTurn(q Question) error {
	if s.HasPendingTurn() {
		return ErrPendingTurnExists
	}
	q.Role = RoleAgent
	s.Turns = append(s.Turns, Turn{Question: q})
	return nil
}

// AnswerPendingTurn completes the most recent turn with the user's answer.
// This is the only way an answer enters the session.
func (s *Session) AnswerPendingTurn(text string) error {
	if !s.HasPendingTurn() {
		return ErrNoPendingTurn
	}
	s.Turns[len(s.Turns)-1].Answer = &Answer{Role: RoleUser, Answer: strings.TrimSpace(text)}
	return nil
}

// Serialize renders the canonical compact-JSON form of the session. This
// exact string is what every generation call receives as context; stages
// must pass it through unchanged rather than re-render their own view of
// the history.
func (s *Session) Serialize() string {
	data, _ := json.Marshal(s) // no unmarshalable fields, cannot fail
	return string(data)
}

// ParseSession is the inverse of Serialize.
func ParseSession(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &s, nil
}

// TextSummary renders a human-readable view of the session for display.
// Prompts use Serialize instead; the two forms must never be mixed.
func (s *Session) TextSummary() string {
	var b strings.Builder
	b.WriteString("Initial query: ")
	b.WriteString(s.InitialQuery)
	for i, t := range s.Turns {
		b.WriteString(fmt.Sprintf("\nQ%d: %s", i+1, t.Question.Question))
		if t.Answer != nil {
			b.WriteString(fmt.Sprintf("\nA%d: %s", i+1, t.Answer.Answer))
		}
	}
	return b.String()
}
