package factory

import (
	"ai-storefront-be/pkg/llm"
	"ai-storefront-be/pkg/llm/gemini"
	"ai-storefront-be/pkg/llm/huggingface"
	"ai-storefront-be/pkg/llm/ollama"
	"fmt"
	"strings"
)

type ProviderConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api key")
		}
		return gemini.NewGeminiProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	case "huggingface":
		if cfg.Model == "" {
			return nil, fmt.Errorf("huggingface provider requires a model name")
		}
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
