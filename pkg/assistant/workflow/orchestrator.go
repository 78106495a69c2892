// Package workflow wires the assistant nodes into a fixed graph and walks it once per message.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/internal/pkg/metrics"
	"ai-storefront-be/pkg/assistant/state"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	module     = "WORKFLOW"
	tracerName = "ai-storefront-be/pkg/assistant/workflow"
)

const (
	NodeStart            = "__start__"
	NodeClassifyIntent   = "classify_intent"
	NodeSearchProducts   = "search_products"
	NodeBrowseCategories = "browse_categories"
	NodeCompareProducts  = "compare_products"
	NodeProductResponse  = "generate_product_response"
	NodeCategoryResponse = "generate_category_response"
	NodeGeneralResponse  = "generate_general_response"
	NodeEnd              = "__end__"
)

// NodeFunc consumes the current state and returns the next one.
type NodeFunc func(ctx context.Context, s state.ConversationState) (state.ConversationState, error)

type Nodes struct {
	ClassifyIntent   NodeFunc
	SearchProducts   NodeFunc
	BrowseCategories NodeFunc
	CompareProducts  NodeFunc
	ProductResponse  NodeFunc
	CategoryResponse NodeFunc
	GeneralResponse  NodeFunc
}

var ErrStepLimit = errors.New("workflow: step limit exceeded")

type Orchestrator struct {
	nodes   map[string]NodeFunc
	logger  logger.ILogger
	metrics *metrics.Assistant
	tracer  trace.Tracer
}

func New(nodes Nodes, log logger.ILogger, m *metrics.Assistant) (*Orchestrator, error) {
	table := map[string]NodeFunc{
		NodeClassifyIntent:   nodes.ClassifyIntent,
		NodeSearchProducts:   nodes.SearchProducts,
		NodeBrowseCategories: nodes.BrowseCategories,
		NodeCompareProducts:  nodes.CompareProducts,
		NodeProductResponse:  nodes.ProductResponse,
		NodeCategoryResponse: nodes.CategoryResponse,
		NodeGeneralResponse:  nodes.GeneralResponse,
	}
	for name, fn := range table {
		if fn == nil {
			return nil, fmt.Errorf("workflow: node %q is not set", name)
		}
	}

	return &Orchestrator{
		nodes:   table,
		logger:  log,
		metrics: m,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// Invoke runs the graph from START to END, one node at a time. A node error stops the
// walk and is returned to the caller unhandled.
func (o *Orchestrator) Invoke(ctx context.Context, initial state.ConversationState) (state.ConversationState, error) {
	current := next(NodeStart, initial)
	s := initial

	for steps := 0; current != NodeEnd; steps++ {
		if steps >= len(o.nodes) {
			return s, ErrStepLimit
		}

		var err error
		s, err = o.run(ctx, current, s)
		if err != nil {
			return s, fmt.Errorf("node %s: %w", current, err)
		}

		if current == NodeClassifyIntent && !state.KnownIntent(s.Intent) {
			o.logger.Warn(module, "Unrecognized intent, routing to general response", map[string]interface{}{
				"intent": s.Intent,
			})
		}

		following := next(current, s)
		o.logger.Debug(module, "Transition", map[string]interface{}{
			"from": current,
			"to":   following,
		})
		current = following
	}

	return s, nil
}

func (o *Orchestrator) run(ctx context.Context, node string, s state.ConversationState) (state.ConversationState, error) {
	ctx, span := o.tracer.Start(ctx, "workflow."+node)
	defer span.End()

	o.metrics.NodeExecuted(node)

	out, err := o.nodes[node](ctx, s)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return out, err
	}

	span.SetAttributes(
		attribute.String("assistant.intent", out.Intent),
		attribute.Int("assistant.search_results", len(out.SearchResults)),
		attribute.Bool("assistant.degraded", out.Error != ""),
	)
	return out, nil
}

// next holds the static edges plus the two conditional ones.
func next(node string, s state.ConversationState) string {
	switch node {
	case NodeStart:
		return NodeClassifyIntent
	case NodeClassifyIntent:
		return RouteAfterIntent(s)
	case NodeSearchProducts:
		return RouteAfterSearch(s)
	case NodeBrowseCategories:
		return NodeCategoryResponse
	default:
		return NodeEnd
	}
}

// RouteAfterIntent sends anything that is not a search, compare or browse to the general reply.
func RouteAfterIntent(s state.ConversationState) string {
	switch s.Intent {
	case state.IntentProductSearch, state.IntentProductCompare:
		return NodeSearchProducts
	case state.IntentCategoryBrowse:
		return NodeBrowseCategories
	default:
		return NodeGeneralResponse
	}
}

// RouteAfterSearch compares only when asked to and there is more than one result.
func RouteAfterSearch(s state.ConversationState) string {
	if s.Intent == state.IntentProductCompare && len(s.SearchResults) > 1 {
		return NodeCompareProducts
	}
	return NodeProductResponse
}
