package socratic

import (
	"fmt"
	"regexp"
	"strings"
)

const questionerInitialSystemPrompt = "You are a helpful research assistant. Given a user's initial query, ask the first question to better understand what they really want. Your question should be focused and help clarify the user's intent. Be specific and ask about the most important aspect first. Respond with a JSON object of the form {\"reasoning\": \"why this question matters now\", \"question\": \"the question to ask\"} and nothing else."

const questionerFollowUpSystemPrompt = "You are a helpful research assistant conducting an interactive questioning session. Based on the user's initial query and their previous answers, ask the next question that will provide the most valuable insight into what the user really wants. Focus on areas that have not been clarified yet and build on the information you already have. Respond with a JSON object of the form {\"reasoning\": \"why this question matters now\", \"question\": \"the question to ask\"} and nothing else."

const plannerSystemPrompt = "You are a helpful research assistant. Based on the user's initial query and their Q&A history, propose web search terms that together best answer the user's query. Each term needs a distinct query; never repeat a query with different wording. Respond with a JSON object of the form {\"searches\": [{\"reason\": \"why this search is important\", \"query\": \"the search term\"}]} and nothing else."

const summarizerSystemPrompt = "You summarize web search results for a research report. Only include facts that appear in the material provided; never add information from internal knowledge. If the material is insufficient, say so. Respond with a short plain-text summary of two or three sentences."

func buildQuestionUserPrompt(s *Session) string {
	var b strings.Builder
	if len(s.Turns) == 0 {
		b.WriteString("Ask the first clarifying question for this research session.\n\n")
	} else {
		b.WriteString("Ask the next clarifying question for this research session.\n\n")
	}
	b.WriteString("Session state (initial_query and qa_history):\n")
	b.WriteString(s.Serialize())
	return b.String()
}

func buildPlannerUserPrompt(s *Session, termCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Provide exactly %d search terms to best answer the user's query.\n", termCount)
	b.WriteString("The qa_history may be empty; in that case plan from the initial query alone.\n\n")
	b.WriteString("Session state (initial_query and qa_history):\n")
	b.WriteString(s.Serialize())
	return b.String()
}

func buildSummaryUserPrompt(term SearchTerm, results []SearchResult, page string) string {
	var b strings.Builder
	b.WriteString("Search query:\n")
	b.WriteString(term.Query)
	b.WriteString("\n\nWhy this search was planned:\n")
	b.WriteString(term.Reason)
	b.WriteString("\n\nSearch results (title | url | snippet):\n")
	if len(results) == 0 {
		b.WriteString("(no results returned)\n")
	}
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s | %s | %s\n", i+1, strings.TrimSpace(r.Title), strings.TrimSpace(r.URL), strings.TrimSpace(r.Snippet))
	}
	if strings.TrimSpace(page) != "" {
		b.WriteString("\nFull text of the top result:\n")
		b.WriteString(page)
		b.WriteString("\n")
	}
	b.WriteString("\nSummarize what this material says about the search query.")
	return b.String()
}

var thinkRegex = regexp.MustCompile(`(?s)<think>.*?</think>`)
var codeBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)```")

// StripThinkBlocks removes <think>...</think> blocks from LLM responses.
// Some models (like qwen3) output reasoning in these blocks.
func StripThinkBlocks(s string) string {
	return strings.TrimSpace(thinkRegex.ReplaceAllString(s, ""))
}

// responseContent extracts usable text from an LLM response. If Text is
// empty (thinking models that put everything into reasoning tokens), it
// falls back to the Reasoning field.
func responseContent(resp LLMResponse) string {
	text := StripThinkBlocks(resp.Text)
	if text != "" {
		return text
	}
	return StripThinkBlocks(resp.Reasoning)
}

// extractJSON pulls the JSON payload out of a model response that may wrap
// it in a markdown code fence or surround it with prose.
func extractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := codeBlockRegex.FindStringSubmatch(trimmed); len(m) == 2 {
		trimmed = strings.TrimSpace(m[1])
	}
	// Fall back to the outermost brace pair when the model adds prose.
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		start := strings.IndexAny(trimmed, "{[")
		if start < 0 {
			return trimmed
		}
		end := strings.LastIndexAny(trimmed, "}]")
		if end <= start {
			return trimmed
		}
		trimmed = trimmed[start : end+1]
	}
	return trimmed
}
