package llm

import (
	"testing"

	"github.com/chiu791118/daily-report-2.0/internal/common"
)

func newTestFactory() *ProviderFactory {
	return NewProviderFactory(common.LLMConfig{
		DefaultProvider:   "gemini",
		Model:             "gemini-2.0-flash",
		Temperature:       0.3,
		MaxTokens:         4000,
		RequestsPerMinute: 30,
	})
}

func TestDetectProvider(t *testing.T) {
	factory := newTestFactory()

	tests := []struct {
		model string
		want  ProviderType
	}{
		{"claude-sonnet-4-20250514", ProviderClaude},
		{"claude/claude-sonnet-4-20250514", ProviderClaude},
		{"anthropic/claude-haiku-3-5", ProviderClaude},
		{"gemini-2.0-flash", ProviderGemini},
		{"gemini/gemini-2.0-flash", ProviderGemini},
		{"google/gemini-2.0-flash", ProviderGemini},
		{"CLAUDE-OPUS", ProviderClaude},
		{"", ProviderGemini},
		{"unknown-model", ProviderGemini},
	}

	for _, tt := range tests {
		if got := factory.DetectProvider(tt.model); got != tt.want {
			t.Errorf("DetectProvider(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}

func TestDetectProviderDefaultClaude(t *testing.T) {
	factory := NewProviderFactory(common.LLMConfig{DefaultProvider: "claude"})

	if got := factory.DetectProvider(""); got != ProviderClaude {
		t.Errorf("DetectProvider(\"\") = %v, want claude", got)
	}
}

func TestNormalizeModel(t *testing.T) {
	factory := newTestFactory()

	tests := []struct {
		model string
		want  string
	}{
		{"claude/claude-sonnet-4", "claude-sonnet-4"},
		{"gemini/gemini-2.0-flash", "gemini-2.0-flash"},
		{"google/gemini-2.0-flash", "gemini-2.0-flash"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := factory.NormalizeModel(tt.model); got != tt.want {
			t.Errorf("NormalizeModel(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}
