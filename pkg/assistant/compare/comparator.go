package compare

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-storefront-be/internal/constant"
	"ai-storefront-be/internal/entity"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/internal/pkg/metrics"
	"ai-storefront-be/pkg/assistant/state"
	"ai-storefront-be/pkg/llm"
)

const (
	module = "COMPARE"

	maxCompared = 3
	minCompared = 2
)

type comparedProduct struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

type Comparator struct {
	llm     llm.LLMProvider
	logger  logger.ILogger
	metrics *metrics.Assistant
}

func NewComparator(provider llm.LLMProvider, log logger.ILogger, m *metrics.Assistant) *Comparator {
	return &Comparator{llm: provider, logger: log, metrics: m}
}

// Compare writes a narrative comparison of the top search results.
func (c *Comparator) Compare(ctx context.Context, s state.ConversationState) (state.ConversationState, error) {
	products := s.SearchResults
	if len(products) > maxCompared {
		products = products[:maxCompared]
	}

	if len(products) < minCompared {
		c.logger.Info(module, "Not enough products to compare", map[string]interface{}{
			"available": len(products),
		})
		s.Response = constant.InsufficientProductsMessage
		s.ResponseType = state.ResponseInsufficientProducts
		return s, nil
	}

	reply, err := c.generate(ctx, products)
	if err != nil {
		c.metrics.GenerationFailed("compare")
		c.logger.Error(module, "Comparison generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		s.Response = constant.ComparisonFailedMessage
		s.ResponseType = state.ResponseError
		return s.WithError(err.Error()), nil
	}

	c.logger.Info(module, "Comparison generated", map[string]interface{}{
		"compared": len(products),
	})

	s.Response = reply
	s.ResponseType = state.ResponseComparison
	s.Products = products
	return s, nil
}

func (c *Comparator) generate(ctx context.Context, products []*entity.Product) (string, error) {
	data := make([]comparedProduct, len(products))
	for i, p := range products {
		category := p.CategoryName()
		if category == "" {
			category = constant.UncategorizedLabel
		}
		data[i] = comparedProduct{Name: p.Name, Price: p.Price, Description: p.Description, Category: category}
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal comparison payload: %w", err)
	}

	reply, err := c.llm.Generate(ctx, fmt.Sprintf(constant.ProductComparisonPrompt, string(payload)))
	if err != nil {
		return "", fmt.Errorf("comparison: %w", err)
	}
	return reply, nil
}
