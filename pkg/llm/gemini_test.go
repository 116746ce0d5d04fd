package llm

import (
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "Bonjour, "},
				{Text: "nous proposons plusieurs tentes."},
			}}},
		},
	}
	got := extractText(resp)
	if got != "Bonjour, nous proposons plusieurs tentes." {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestExtractTextEmpty(t *testing.T) {
	cases := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
	}
	for i, resp := range cases {
		if got := extractText(resp); got != "" {
			t.Errorf("case %d: expected empty text, got %q", i, got)
		}
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Status: 429, Body: "quota exceeded"}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("unexpected error string: %v", err)
	}

	var target *APIError
	if !errors.As(error(err), &target) {
		t.Error("APIError must unwrap with errors.As")
	}
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	if _, err := NewGeminiClient(t.Context(), GeminiOptions{Model: "gemini-2.0-flash"}); err == nil {
		t.Error("expected error for missing API key")
	}
}
