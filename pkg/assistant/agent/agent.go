// Package agent is the entry point of the storefront assistant: one call per shopper message.
package agent

import (
	"context"
	"fmt"
	"time"

	"ai-storefront-be/internal/constant"
	"ai-storefront-be/internal/entity"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/internal/pkg/metrics"
	"ai-storefront-be/pkg/assistant/browse"
	"ai-storefront-be/pkg/assistant/compare"
	"ai-storefront-be/pkg/assistant/contract"
	"ai-storefront-be/pkg/assistant/intent"
	"ai-storefront-be/pkg/assistant/response"
	"ai-storefront-be/pkg/assistant/search"
	"ai-storefront-be/pkg/assistant/state"
	"ai-storefront-be/pkg/assistant/workflow"
	"ai-storefront-be/pkg/cache"
	"ai-storefront-be/pkg/llm"
)

const module = "AGENT"

type Result struct {
	Message  string
	Type     state.ResponseType
	Products []*entity.Product
	Error    *string
	Intent   string
	Duration time.Duration
}

type options struct {
	logger         logger.ILogger
	metrics        *metrics.Assistant
	keywordCache   cache.Client
	history        contract.HistoryStore
	search         search.Config
	sampleSize     int
	categoryFanout int
}

type Option func(*options)

func WithLogger(l logger.ILogger) Option {
	return func(o *options) { o.logger = l }
}

func WithMetrics(m *metrics.Assistant) Option {
	return func(o *options) { o.metrics = m }
}

func WithKeywordCache(c cache.Client) Option {
	return func(o *options) { o.keywordCache = c }
}

func WithHistory(h contract.HistoryStore) Option {
	return func(o *options) { o.history = h }
}

func WithSearchConfig(cfg search.Config) Option {
	return func(o *options) { o.search = cfg }
}

func WithCategoryFanout(n int) Option {
	return func(o *options) { o.categoryFanout = n }
}

type Agent struct {
	workflow *workflow.Orchestrator
	history  contract.HistoryStore
	logger   logger.ILogger
	metrics  *metrics.Assistant
}

// New wires every node around the given catalog and model.
func New(catalog contract.Catalog, provider llm.LLMProvider, opts ...Option) (*Agent, error) {
	o := options{
		logger:         logger.NewNopLogger(),
		history:        contract.NoopHistoryStore{},
		search:         search.DefaultConfig(),
		sampleSize:     browse.DefaultSampleSize,
		categoryFanout: browse.DefaultFanout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	classifier := intent.NewClassifier(provider, o.logger, o.metrics)
	engine := search.NewEngine(catalog, provider, o.keywordCache, o.logger, o.metrics, o.search)
	browser := browse.NewBrowser(catalog, o.logger, o.sampleSize, o.categoryFanout)
	comparator := compare.NewComparator(provider, o.logger, o.metrics)
	generator := response.NewGenerator(catalog, provider, o.logger, o.metrics)

	orchestrator, err := workflow.New(workflow.Nodes{
		ClassifyIntent:   classifier.Classify,
		SearchProducts:   engine.Search,
		BrowseCategories: browser.Browse,
		CompareProducts:  comparator.Compare,
		ProductResponse:  generator.Product,
		CategoryResponse: generator.Category,
		GeneralResponse:  generator.General,
	}, o.logger, o.metrics)
	if err != nil {
		return nil, fmt.Errorf("build workflow: %w", err)
	}

	return &Agent{
		workflow: orchestrator,
		history:  o.history,
		logger:   o.logger,
		metrics:  o.metrics,
	}, nil
}

// ProcessMessage never fails: anything escaping the workflow, panics included,
// becomes an apology of type error.
func (a *Agent) ProcessMessage(ctx context.Context, userMessage string) Result {
	start := time.Now()

	final, err := a.invoke(ctx, userMessage)

	var res Result
	switch {
	case err != nil:
		a.logger.Error(module, "Workflow failed", map[string]interface{}{
			"error": err.Error(),
		})
		res = apology(err.Error())
	case !final.ResponseType.Valid():
		a.logger.Error(module, "Workflow ended without a response type", map[string]interface{}{
			"intent": final.Intent,
		})
		res = apology("workflow ended without a response")
	default:
		res = Result{
			Message:  final.Response,
			Type:     final.ResponseType,
			Products: final.Products,
			Intent:   final.Intent,
		}
		if res.Products == nil {
			res.Products = []*entity.Product{}
		}
		if final.Error != "" {
			msg := final.Error
			res.Error = &msg
		}
	}
	res.Duration = time.Since(start)

	a.metrics.ResponseSent(string(res.Type), res.Duration)
	a.logger.Info(module, "Message processed", map[string]interface{}{
		"intent":        res.Intent,
		"response_type": res.Type,
		"products":      len(res.Products),
		"has_error":     res.Error != nil,
		"duration_ms":   res.Duration.Milliseconds(),
	})

	a.appendHistory(ctx, userMessage, res)
	return res
}

func (a *Agent) invoke(ctx context.Context, userMessage string) (final state.ConversationState, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workflow panic: %v", r)
		}
	}()
	return a.workflow.Invoke(ctx, state.New(userMessage))
}

func (a *Agent) appendHistory(ctx context.Context, userMessage string, res Result) {
	entry := contract.HistoryEntry{
		UserId:       UserIDFromContext(ctx),
		UserMessage:  userMessage,
		Reply:        res.Message,
		ResponseType: string(res.Type),
		CreatedAt:    time.Now(),
	}
	if err := a.history.Append(ctx, entry); err != nil {
		a.logger.Warn(module, "Failed to append chat history", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// History returns stored exchanges for the caller in ctx.
func (a *Agent) History(ctx context.Context, limit int) ([]contract.HistoryEntry, error) {
	return a.history.Query(ctx, UserIDFromContext(ctx), limit)
}

func apology(reason string) Result {
	return Result{
		Message:  constant.ProcessingFailedMessage,
		Type:     state.ResponseError,
		Products: []*entity.Product{},
		Error:    &reason,
	}
}

type userIDKey struct{}

// ContextWithUserID tags ctx with the shopper's id; anonymous shoppers use "".
func ContextWithUserID(ctx context.Context, userId string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userId)
}

func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
