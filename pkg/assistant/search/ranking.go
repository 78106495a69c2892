package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-storefront-be/internal/constant"
	"ai-storefront-be/internal/entity"
	"ai-storefront-be/pkg/assistant/parser"
)

// RankingCandidate is the compact product view sent to the model for ranking.
type RankingCandidate struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

func categoryLabel(p *entity.Product) string {
	if name := p.CategoryName(); name != "" {
		return name
	}
	return constant.UncategorizedLabel
}

func (e *Engine) rankingCandidates(products []*entity.Product) []RankingCandidate {
	out := make([]RankingCandidate, len(products))
	for i, p := range products {
		out[i] = RankingCandidate{
			Id:          p.Id.String(),
			Name:        p.Name,
			Description: parser.Snippet(p.Description, e.cfg.RankSnippet, "..."),
			Category:    categoryLabel(p),
			Price:       p.Price,
		}
	}
	return out
}

// Rank orders candidates by the id list the model returns, at most RankLimit of them.
// Ids the model invents are skipped, so the result may be shorter than the input.
func (e *Engine) Rank(ctx context.Context, query string, candidates []*entity.Product) ([]*entity.Product, error) {
	payload, err := json.MarshalIndent(e.rankingCandidates(candidates), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal ranking candidates: %w", err)
	}

	reply, err := e.llm.Generate(ctx, fmt.Sprintf(constant.ProductRankingPrompt, query, string(payload), e.cfg.RankLimit))
	if err != nil {
		return nil, fmt.Errorf("ranking: %w", err)
	}

	ids := parser.ParseIDList(reply)
	ranked := parser.ReorderByIDs(candidates, func(p *entity.Product) string { return p.Id.String() }, ids, e.cfg.RankLimit)

	e.logger.Info(module, "Candidates ranked", map[string]interface{}{
		"returned_ids": len(ids),
		"ranked":       len(ranked),
	})
	return ranked, nil
}

// FilterRelevant asks the model whether off-topic items should be hidden. On FILTER only
// items in the top item's category are kept. Any failure keeps the ranked list.
func (e *Engine) FilterRelevant(ctx context.Context, query string, ranked []*entity.Product) []*entity.Product {
	preview := capProducts(ranked, e.cfg.FilterPreview)
	lines := make([]string, len(preview))
	for i, p := range preview {
		lines[i] = fmt.Sprintf("%s (%s) - %s", p.Name, categoryLabel(p), parser.Snippet(p.Description, e.cfg.FilterSnippet, "..."))
	}

	reply, err := e.llm.Generate(ctx, fmt.Sprintf(constant.RelevanceFilterPrompt, query, strings.Join(lines, "\n")))
	if err != nil {
		e.metrics.GenerationFailed("filter")
		e.logger.Warn(module, "Relevance check failed, keeping ranked list", map[string]interface{}{
			"error": err.Error(),
		})
		return ranked
	}

	if !parser.WantsFilter(reply) {
		return ranked
	}

	topCategory := ranked[0].CategoryName()
	if topCategory == "" {
		return ranked
	}

	filtered := make([]*entity.Product, 0, e.cfg.FilterLimit)
	for _, p := range ranked {
		if len(filtered) == e.cfg.FilterLimit {
			break
		}
		if p.CategoryName() == topCategory {
			filtered = append(filtered, p)
		}
	}

	e.logger.Info(module, "Filtered to top category", map[string]interface{}{
		"category": topCategory,
		"kept":     len(filtered),
	})
	return filtered
}
