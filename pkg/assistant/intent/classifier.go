package intent

import (
	"context"
	"fmt"

	"ai-storefront-be/internal/constant"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/internal/pkg/metrics"
	"ai-storefront-be/pkg/assistant/parser"
	"ai-storefront-be/pkg/assistant/state"
	"ai-storefront-be/pkg/llm"
)

const module = "INTENT"

type Classifier struct {
	llm     llm.LLMProvider
	logger  logger.ILogger
	metrics *metrics.Assistant
}

func NewClassifier(provider llm.LLMProvider, log logger.ILogger, m *metrics.Assistant) *Classifier {
	return &Classifier{llm: provider, logger: log, metrics: m}
}

// Classify stores the trimmed model label as the intent. Unknown labels are kept
// as-is and left to the router. A failed call falls back to GENERAL_HELP.
func (c *Classifier) Classify(ctx context.Context, s state.ConversationState) (state.ConversationState, error) {
	prompt := fmt.Sprintf(constant.IntentClassificationPrompt, s.UserMessage())

	reply, err := c.llm.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		c.metrics.GenerationFailed("intent")
		c.logger.Error(module, "Intent classification failed, defaulting to general help", map[string]interface{}{
			"error": err.Error(),
		})
		s.Intent = state.IntentGeneralHelp
		return s.WithError(fmt.Sprintf("intent classification: %v", err)), nil
	}

	s.Intent = parser.CleanLabel(reply)
	c.logger.Info(module, "Intent classified", map[string]interface{}{
		"intent": s.Intent,
		"known":  state.KnownIntent(s.Intent),
	})
	return s, nil
}
