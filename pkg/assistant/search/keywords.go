package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-storefront-be/internal/constant"
	"ai-storefront-be/internal/entity"
	"ai-storefront-be/pkg/assistant/parser"
	"ai-storefront-be/pkg/cache"
)

const keywordCachePrefix = "kw:"

func keywordCacheKey(query string) string {
	return keywordCachePrefix + strings.Join(parser.QueryTokens(query), " ")
}

// ExpandKeywords returns the model's related terms merged with the query's own tokens.
func (e *Engine) ExpandKeywords(ctx context.Context, query string) ([]string, error) {
	reply, err := e.keywordReply(ctx, query)
	if err != nil {
		e.metrics.GenerationFailed("keywords")
		return nil, fmt.Errorf("keyword expansion: %w", err)
	}

	terms := parser.MergeTerms(parser.ParseKeywords(reply), parser.QueryTokens(query))
	e.logger.Info(module, "Keywords expanded", map[string]interface{}{
		"terms": terms,
	})
	return terms, nil
}

func (e *Engine) keywordReply(ctx context.Context, query string) (string, error) {
	key := keywordCacheKey(query)

	if e.cache != nil {
		cached, err := e.cache.Get(ctx, key)
		if err == nil {
			return string(cached), nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			e.logger.Warn(module, "Keyword cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	reply, err := e.llm.Generate(ctx, fmt.Sprintf(constant.KeywordExpansionPrompt, query))
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)

	if e.cache != nil && reply != "" {
		if err := e.cache.Set(ctx, key, []byte(reply), e.cfg.KeywordCacheTTL); err != nil {
			e.logger.Warn(module, "Keyword cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return reply, nil
}

// Retrieve runs the text and category-name matches and unions them by product id,
// text matches first. Terms shorter than MinTermLength are ignored.
func (e *Engine) Retrieve(ctx context.Context, terms []string) ([]*entity.Product, error) {
	searchable := parser.SearchableTerms(terms, e.cfg.MinTermLength)
	if len(searchable) == 0 {
		return []*entity.Product{}, nil
	}

	byText, err := e.catalog.FindByTextSubstring(ctx, searchable, e.cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("text retrieval: %w", err)
	}

	byCategory, err := e.catalog.FindByCategoryNameSubstring(ctx, searchable, e.cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("category retrieval: %w", err)
	}

	return unionByID(byText, byCategory), nil
}

func unionByID(lists ...[]*entity.Product) []*entity.Product {
	seen := make(map[string]struct{})
	out := make([]*entity.Product, 0)
	for _, list := range lists {
		for _, p := range list {
			if p == nil {
				continue
			}
			id := p.Id.String()
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
