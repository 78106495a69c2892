package factory

import (
	"testing"

	"ai-storefront-be/pkg/llm/gemini"
	"ai-storefront-be/pkg/llm/huggingface"
	"ai-storefront-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProviderConfig
		want    interface{}
		wantErr bool
	}{
		{name: "gemini default", cfg: ProviderConfig{APIKey: "k"}, want: &gemini.GeminiProvider{}},
		{name: "gemini without key", cfg: ProviderConfig{Provider: "gemini"}, wantErr: true},
		{name: "ollama", cfg: ProviderConfig{Provider: "Ollama", Model: "llama3"}, want: &ollama.OllamaProvider{}},
		{name: "huggingface", cfg: ProviderConfig{Provider: "huggingface", Model: "m"}, want: &huggingface.HuggingFaceProvider{}},
		{name: "huggingface without model", cfg: ProviderConfig{Provider: "huggingface"}, wantErr: true},
		{name: "unknown", cfg: ProviderConfig{Provider: "openai"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLLMProvider(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}
}
