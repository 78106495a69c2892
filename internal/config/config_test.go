package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("AI_CALL_TIMEOUT", "not-a-duration")
	t.Setenv("CATEGORY_FANOUT", "")

	cfg := Load()

	assert.Equal(t, "gemini-1.5-flash", cfg.Ai.LLMModel)
	assert.Equal(t, 30*time.Second, cfg.Ai.CallTimeout)
	assert.Equal(t, 4, cfg.Assistant.CategoryFanout)
	assert.Equal(t, "CHAT_MESSAGE_PROCESSED", cfg.Assistant.ChatEventsTopic)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AI_RATE_LIMIT_RPS", "2.5")
	t.Setenv("KEYWORD_CACHE_TTL", "90s")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "Production")

	cfg := Load()

	assert.Equal(t, 2.5, cfg.Ai.RateLimitRPS)
	assert.Equal(t, 90*time.Second, cfg.Ai.KeywordCacheTTL)
	assert.True(t, cfg.App.OtelEnabled)
	assert.True(t, cfg.App.IsProduction())
}

func TestProviderCredentials(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		baseURL  string
		wantKey  string
		wantURL  string
	}{
		{name: "gemini", provider: "gemini", wantKey: "g-key"},
		{name: "huggingface", provider: "huggingface", wantKey: "hf-key"},
		{name: "ollama", provider: "ollama", wantURL: "http://ollama:11434"},
		{name: "explicit base url", provider: "ollama", baseURL: "http://custom", wantURL: "http://custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Keys: APIKeys{GoogleGemini: "g-key", HuggingFace: "hf-key"},
				Ai:   AIConfig{LLMProvider: tt.provider, LLMBaseURL: tt.baseURL, OllamaBaseURL: "http://ollama:11434"},
			}
			assert.Equal(t, tt.wantKey, cfg.ProviderAPIKey())
			assert.Equal(t, tt.wantURL, cfg.ProviderBaseURL())
		})
	}
}
