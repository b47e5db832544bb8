// Package generate provides an external text-generation interface, with
// an Ollama-backed implementation, used to produce HyDE hypothetical
// answer documents for the hybrid ranker.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Generator produces a bounded text completion for prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const hydePrompt = "write a short hypothetical code snippet that answers this question: "

// HyDE generates a hypothetical answer document for query via g. On
// failure it falls back to the raw query, per the ranker's degrade
// policy — callers never need to branch on error.
func HyDE(ctx context.Context, g Generator, query string) string {
	doc, err := g.Generate(ctx, hydePrompt+query)
	if err != nil || doc == "" {
		return query
	}
	return doc
}

// Ollama calls the Ollama /api/chat endpoint for generative responses.
type Ollama struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllama creates a chat client targeting baseURL with model.
func NewOllama(baseURL, model string) *Ollama {
	return &Ollama{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  struct {
		NumPredict int `json:"num_predict"`
	} `json:"options"`
}

type chatResponse struct {
	Message message `json:"message"`
}

// Generate sends prompt as a single user message and returns the
// assistant's response, bounded to roughly 200 tokens.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model:    o.model,
		Messages: []message{{Role: "user", Content: prompt}},
		Stream:   false,
	}
	req.Options.NumPredict = 200

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama chat returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	return result.Message.Content, nil
}
