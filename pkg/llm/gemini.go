// Package llm wraps the Gemini generative API behind a small Generator
// interface so the pipeline can be tested without network access.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrEmptyResponse indicates the model replied without any extractable text.
var ErrEmptyResponse = errors.New("empty response from generative API")

// APIError carries the status and body of a failed generative API call.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("generative API error %d: %s", e.Status, e.Body)
}

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Generation parameters are fixed; there is no per-request tuning and no
// retry at this layer.
const (
	temperature     float32 = 0.7
	topP            float32 = 0.9
	maxOutputTokens int32   = 800
)

// GeminiClient implements Generator against the Gemini API.
type GeminiClient struct {
	client        *genai.Client
	model         string
	fallbackModel string
}

// GeminiOptions configures a GeminiClient. FallbackModel is optional; when
// set, a failed call against Model gets one attempt on the fallback.
type GeminiOptions struct {
	APIKey        string
	Model         string
	FallbackModel string
}

// NewGeminiClient creates a Gemini-backed Generator.
func NewGeminiClient(ctx context.Context, opts GeminiOptions) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{
		client:        client,
		model:         opts.Model,
		fallbackModel: opts.FallbackModel,
	}, nil
}

// Generate sends the prompt and returns the model's text reply.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := c.generate(ctx, c.model, prompt)
	if err != nil && c.fallbackModel != "" && !errors.Is(err, ErrEmptyResponse) {
		return c.generate(ctx, c.fallbackModel, prompt)
	}
	return text, err
}

func (c *GeminiClient) generate(ctx context.Context, model, prompt string) (string, error) {
	temp := temperature
	tp := topP
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &tp,
		MaxOutputTokens: maxOutputTokens,
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{Status: apiErr.Code, Body: apiErr.Message}
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// extractText joins the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
