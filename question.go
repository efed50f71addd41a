package socratic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type questionResponse struct {
	Reasoning string `json:"reasoning"`
	Question  string `json:"question"`
}

// generateQuestion asks the questioner model for the next clarifying
// question. The entire serialized session is sent every call; the model has
// no memory between calls. The session itself is not touched here — the
// caller appends the pending turn only after a well-formed question came
// back, so a failed generation leaves no partial state behind.
func (m *Manager) generateQuestion(ctx context.Context) (Question, float64, error) {
	sys := questionerFollowUpSystemPrompt
	if len(m.session.Turns) == 0 {
		sys = questionerInitialSystemPrompt
	}
	user := buildQuestionUserPrompt(m.session)
	m.logger.Debug("questioner prompt", zap.String("session", m.id), zap.String("user", user))

	resp, err := m.questioner.Generate(ctx, sys, user)
	if err != nil {
		return Question{}, 0, fmt.Errorf("questioner: %w", err)
	}
	raw := responseContent(resp)
	m.logger.Debug("questioner response", zap.String("session", m.id), zap.String("raw", raw))

	var parsed questionResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return Question{}, resp.Cost, fmt.Errorf("%w: question JSON parse: %v (raw: %.200s)", ErrMalformedGeneration, err, raw)
	}
	if strings.TrimSpace(parsed.Question) == "" {
		return Question{}, resp.Cost, fmt.Errorf("%w: question field is empty (raw: %.200s)", ErrMalformedGeneration, raw)
	}
	if strings.TrimSpace(parsed.Reasoning) == "" {
		return Question{}, resp.Cost, fmt.Errorf("%w: reasoning field is empty (raw: %.200s)", ErrMalformedGeneration, raw)
	}

	q := Question{
		Role:      RoleAgent,
		Reasoning: strings.TrimSpace(parsed.Reasoning),
		Question:  strings.TrimSpace(parsed.Question),
	}
	return q, resp.Cost, nil
}
