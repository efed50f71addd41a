package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/smhanov/socratic"
)

// Ollama implements socratic.LLMProvider using the Ollama native
// /api/generate endpoint.
type Ollama struct {
	Endpoint string
	Model    string
	client   *http.Client
}

// NewOllama constructs an Ollama provider. An empty endpoint defaults to
// localhost:11434.
func NewOllama(endpoint, model string) *Ollama {
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	return &Ollama{Endpoint: endpoint, Model: model, client: &http.Client{Timeout: 120 * time.Second}}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends one generation request to Ollama.
func (o *Ollama) Generate(ctx context.Context, systemPrompt, userPrompt string) (socratic.LLMResponse, error) {
	endpoint := o.Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "http://" + endpoint
	}
	url := fmt.Sprintf("%s/api/generate", strings.TrimSuffix(endpoint, "/"))

	reqBody := ollamaRequest{
		Model:  o.Model,
		Prompt: userPrompt,
		System: systemPrompt,
		Stream: false,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return socratic.LLMResponse{}, fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return socratic.LLMResponse{}, fmt.Errorf("ollama: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return socratic.LLMResponse{}, fmt.Errorf("ollama: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return socratic.LLMResponse{}, fmt.Errorf("ollama: %s - %s", resp.Status, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return socratic.LLMResponse{}, fmt.Errorf("ollama: read response: %w", err)
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return socratic.LLMResponse{}, fmt.Errorf("ollama: parse response: %w", err)
	}
	// Local models are free; Cost stays zero.
	return socratic.LLMResponse{Text: parsed.Response}, nil
}
