// Package response builds the final reply for each branch of the workflow.
package response

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ai-storefront-be/internal/constant"
	"ai-storefront-be/internal/entity"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/internal/pkg/metrics"
	"ai-storefront-be/pkg/assistant/contract"
	"ai-storefront-be/pkg/assistant/parser"
	"ai-storefront-be/pkg/assistant/state"
	"ai-storefront-be/pkg/llm"
)

const (
	module = "RESPONSE"

	maxListed          = 6
	descriptionPreview = 150
)

type Generator struct {
	catalog contract.Catalog
	llm     llm.LLMProvider
	logger  logger.ILogger
	metrics *metrics.Assistant
}

func NewGenerator(catalog contract.Catalog, provider llm.LLMProvider, log logger.ILogger, m *metrics.Assistant) *Generator {
	return &Generator{catalog: catalog, llm: provider, logger: log, metrics: m}
}

type listedProduct struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

func categoryLabel(p *entity.Product) string {
	if name := p.CategoryName(); name != "" {
		return name
	}
	return constant.UncategorizedLabel
}

func formatPrice(price float64) string {
	return "$" + strconv.FormatFloat(price, 'f', -1, 64)
}

// Product answers a search. Without results it suggests whatever the catalog has.
func (g *Generator) Product(ctx context.Context, s state.ConversationState) (state.ConversationState, error) {
	var (
		next state.ConversationState
		err  error
	)
	if len(s.SearchResults) == 0 || s.NoResultsFound {
		next, err = g.noMatch(ctx, s)
	} else {
		next, err = g.productInfo(ctx, s)
	}

	if err != nil {
		g.metrics.GenerationFailed("product_response")
		g.logger.Error(module, "Product response failed", map[string]interface{}{
			"error": err.Error(),
		})
		s.Response = constant.ProductResponseFailedMessage
		s.ResponseType = state.ResponseError
		return s.WithError(err.Error()), nil
	}
	return next, nil
}

func (g *Generator) noMatch(ctx context.Context, s state.ConversationState) (state.ConversationState, error) {
	alternatives, err := g.catalog.FindAny(ctx, maxListed)
	if err != nil {
		return s, fmt.Errorf("load alternatives: %w", err)
	}

	if len(alternatives) == 0 {
		g.logger.Info(module, "Catalog is empty", nil)
		s.Response = fmt.Sprintf(constant.EmptyCatalogMessage, s.UserMessage())
		s.ResponseType = state.ResponseNoProducts
		s.Products = []*entity.Product{}
		return s, nil
	}

	lines := make([]string, len(alternatives))
	for i, p := range alternatives {
		lines[i] = fmt.Sprintf("%s (%s) - %s", p.Name, categoryLabel(p), formatPrice(p.Price))
	}

	reply, err := g.llm.Generate(ctx, fmt.Sprintf(constant.NoMatchSuggestionPrompt, s.UserMessage(), strings.Join(lines, "\n")))
	if err != nil {
		return s, fmt.Errorf("suggestion reply: %w", err)
	}

	g.logger.Info(module, "Suggested alternatives", map[string]interface{}{
		"alternatives": len(alternatives),
	})

	s.Response = reply
	s.ResponseType = state.ResponseNoProducts
	s.Products = alternatives
	return s, nil
}

func (g *Generator) productInfo(ctx context.Context, s state.ConversationState) (state.ConversationState, error) {
	products := s.SearchResults
	if len(products) > maxListed {
		products = products[:maxListed]
	}

	data := make([]listedProduct, len(products))
	for i, p := range products {
		data[i] = listedProduct{
			Name:        p.Name,
			Price:       p.Price,
			Description: parser.Truncate(p.Description, descriptionPreview, "..."),
			Category:    categoryLabel(p),
		}
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return s, fmt.Errorf("marshal products: %w", err)
	}

	reply, err := g.llm.Generate(ctx, fmt.Sprintf(constant.ProductAnswerPrompt, s.UserMessage(), string(payload)))
	if err != nil {
		return s, fmt.Errorf("product reply: %w", err)
	}

	g.logger.Info(module, "Product response generated", map[string]interface{}{
		"products": len(products),
	})

	s.Response = reply
	s.ResponseType = state.ResponseProductInfo
	s.Products = products
	return s, nil
}

// Category summarizes the loaded categories without calling the model.
func (g *Generator) Category(_ context.Context, s state.ConversationState) (state.ConversationState, error) {
	if len(s.Categories) == 0 {
		s.Response = constant.NoCategoriesMessage
		s.ResponseType = state.ResponseNoCategories
		return s, nil
	}

	entries := make([]string, len(s.Categories))
	products := make([]*entity.Product, 0)
	for i, group := range s.Categories {
		entries[i] = fmt.Sprintf("%s (%d products)", group.Category.Name, len(group.SampleProducts))
		products = append(products, group.SampleProducts...)
	}

	s.Response = fmt.Sprintf(constant.CategorySummaryMessage, strings.Join(entries, ", "))
	s.ResponseType = state.ResponseCategories
	s.Products = products
	return s, nil
}

// General covers greetings and store questions, with a canned greeting on failure.
func (g *Generator) General(ctx context.Context, s state.ConversationState) (state.ConversationState, error) {
	s.ResponseType = state.ResponseGeneral
	s.Products = []*entity.Product{}

	reply, err := g.llm.Generate(ctx, fmt.Sprintf(constant.GeneralHelpPrompt, s.UserMessage()))
	if err != nil {
		g.metrics.GenerationFailed("general_response")
		g.logger.Warn(module, "General response failed, using greeting", map[string]interface{}{
			"error": err.Error(),
		})
		s.Response = constant.GeneralFallbackMessage
		return s, nil
	}

	s.Response = reply
	return s, nil
}
