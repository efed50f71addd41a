// Package llm provides LLMProvider implementations for common backends.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/smhanov/socratic"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAI implements socratic.LLMProvider using the OpenAI chat completions
// API (or any OpenAI-compatible endpoint).
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAI constructs an OpenAI provider. An empty model selects
// gpt-4o-mini.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{client: openai.NewClient(apiKey), model: model}
}

// NewOpenAIWithConfig constructs a provider against a custom endpoint, for
// OpenAI-compatible servers (llama.cpp, vLLM, LM Studio and friends).
func NewOpenAIWithConfig(cfg openai.ClientConfig, model string) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}
}

// WithTemperature sets the sampling temperature for all calls.
func (o *OpenAI) WithTemperature(t float32) *OpenAI {
	o.temperature = t
	return o
}

// Generate sends one chat completion request. Every call is independent;
// all context must arrive in the prompts.
func (o *OpenAI) Generate(ctx context.Context, systemPrompt, userPrompt string) (socratic.LLMResponse, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	if o.temperature > 0 {
		req.Temperature = o.temperature
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return socratic.LLMResponse{}, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return socratic.LLMResponse{}, fmt.Errorf("openai: no choices returned")
	}
	// The API does not report dollar cost; Cost stays zero unless the
	// caller layers accounting on top.
	return socratic.LLMResponse{Text: resp.Choices[0].Message.Content}, nil
}
