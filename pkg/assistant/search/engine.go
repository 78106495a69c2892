// Package search finds catalog products for a shopping query. The query is widened by model
// keyword expansion, matched against the catalog, then narrowed back by model ranking and a
// category relevance check.
package search

import (
	"context"
	"fmt"
	"time"

	"ai-storefront-be/internal/entity"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/internal/pkg/metrics"
	"ai-storefront-be/pkg/assistant/contract"
	"ai-storefront-be/pkg/assistant/state"
	"ai-storefront-be/pkg/cache"
	"ai-storefront-be/pkg/llm"
)

const module = "SEARCH"

type Config struct {
	CandidateLimit  int // per retrieval query
	RankLimit       int
	FilterThreshold int // the relevance check runs when more than this many items are ranked
	FilterLimit     int
	FilterPreview   int
	SuggestionLimit int
	FallbackLimit   int
	MinTermLength   int
	RankSnippet     int
	FilterSnippet   int
	KeywordCacheTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		CandidateLimit:  20,
		RankLimit:       6,
		FilterThreshold: 3,
		FilterLimit:     4,
		FilterPreview:   6,
		SuggestionLimit: 8,
		FallbackLimit:   8,
		MinTermLength:   3,
		RankSnippet:     100,
		FilterSnippet:   50,
		KeywordCacheTTL: 10 * time.Minute,
	}
}

type Engine struct {
	catalog contract.Catalog
	llm     llm.LLMProvider
	cache   cache.Client
	logger  logger.ILogger
	metrics *metrics.Assistant
	cfg     Config
}

// NewEngine accepts a nil keyword cache.
func NewEngine(
	catalog contract.Catalog,
	provider llm.LLMProvider,
	keywordCache cache.Client,
	log logger.ILogger,
	m *metrics.Assistant,
	cfg Config,
) *Engine {
	return &Engine{
		catalog: catalog,
		llm:     provider,
		cache:   keywordCache,
		logger:  log,
		metrics: m,
		cfg:     cfg,
	}
}

// Search fills SearchResults and Products. Failures in expansion or retrieval switch to a
// plain substring search on the raw message.
func (e *Engine) Search(ctx context.Context, s state.ConversationState) (state.ConversationState, error) {
	next, err := e.search(ctx, s)
	if err == nil {
		return next, nil
	}

	e.logger.Error(module, "Smart search failed, using plain text fallback", map[string]interface{}{
		"error": err.Error(),
		"query": s.UserMessage(),
	})

	s.SearchResults = []*entity.Product{}
	s.Products = []*entity.Product{}

	fallback, ferr := e.catalog.FindByTextSubstring(ctx, []string{s.UserMessage()}, e.cfg.FallbackLimit)
	if ferr != nil {
		e.logger.Error(module, "Fallback search failed", map[string]interface{}{
			"error": ferr.Error(),
		})
		return s.WithError(fmt.Sprintf("%v; fallback: %v", err, ferr)), nil
	}

	s.SearchResults = fallback
	s.Products = fallback
	return s.WithError(err.Error()), nil
}

func (e *Engine) search(ctx context.Context, s state.ConversationState) (state.ConversationState, error) {
	query := s.UserMessage()

	terms, err := e.ExpandKeywords(ctx, query)
	if err != nil {
		return s, err
	}

	candidates, err := e.Retrieve(ctx, terms)
	if err != nil {
		return s, err
	}

	if len(candidates) == 0 {
		return e.suggest(ctx, s)
	}

	ranked, err := e.Rank(ctx, query, candidates)
	if err != nil {
		e.metrics.GenerationFailed("rank")
		e.logger.Warn(module, "Ranking failed, keeping retrieval order", map[string]interface{}{
			"error":      err.Error(),
			"candidates": len(candidates),
		})
		ranked = capProducts(candidates, e.cfg.RankLimit)
		s.SearchResults = ranked
		s.Products = ranked
		return s, nil
	}

	if len(ranked) > e.cfg.FilterThreshold {
		ranked = e.FilterRelevant(ctx, query, ranked)
	}

	e.logger.Info(module, "Search completed", map[string]interface{}{
		"candidates": len(candidates),
		"results":    len(ranked),
	})

	s.SearchResults = ranked
	s.Products = ranked
	return s, nil
}

// suggest handles an empty retrieval: a few arbitrary products stand in as suggestions.
func (e *Engine) suggest(ctx context.Context, s state.ConversationState) (state.ConversationState, error) {
	suggestions, err := e.catalog.FindAny(ctx, e.cfg.SuggestionLimit)
	if err != nil {
		return s, fmt.Errorf("load suggestions: %w", err)
	}

	e.logger.Info(module, "No candidates found, returning suggestions", map[string]interface{}{
		"suggestions": len(suggestions),
	})

	s.SearchResults = []*entity.Product{}
	s.Products = suggestions
	s.NoResultsFound = true
	return s, nil
}

func capProducts(in []*entity.Product, limit int) []*entity.Product {
	if len(in) <= limit {
		return in
	}
	return in[:limit]
}
