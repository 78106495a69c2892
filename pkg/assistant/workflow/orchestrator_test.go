package workflow

import (
	"context"
	"errors"
	"testing"

	"ai-storefront-be/internal/entity"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/pkg/assistant/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteAfterIntent(t *testing.T) {
	tests := []struct {
		intent string
		want   string
	}{
		{intent: state.IntentProductSearch, want: NodeSearchProducts},
		{intent: state.IntentProductCompare, want: NodeSearchProducts},
		{intent: state.IntentCategoryBrowse, want: NodeBrowseCategories},
		{intent: state.IntentGeneralHelp, want: NodeGeneralResponse},
		{intent: state.IntentGreeting, want: NodeGeneralResponse},
		{intent: "ORDER_STATUS", want: NodeGeneralResponse},
		{intent: "", want: NodeGeneralResponse},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			s := state.New("msg")
			s.Intent = tt.intent
			assert.Equal(t, tt.want, RouteAfterIntent(s))
		})
	}
}

func TestRouteAfterSearch(t *testing.T) {
	one := []*entity.Product{{Name: "a"}}
	two := []*entity.Product{{Name: "a"}, {Name: "b"}}

	tests := []struct {
		name    string
		intent  string
		results []*entity.Product
		want    string
	}{
		{name: "compare with two", intent: state.IntentProductCompare, results: two, want: NodeCompareProducts},
		{name: "compare with one", intent: state.IntentProductCompare, results: one, want: NodeProductResponse},
		{name: "compare with none", intent: state.IntentProductCompare, want: NodeProductResponse},
		{name: "search with two", intent: state.IntentProductSearch, results: two, want: NodeProductResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.New("msg")
			s.Intent = tt.intent
			s.SearchResults = tt.results
			assert.Equal(t, tt.want, RouteAfterSearch(s))
		})
	}
}

// recordingNodes builds nodes that append their own name to visited.
func recordingNodes(intent string, results int, visited *[]string) Nodes {
	mark := func(name string, mutate func(*state.ConversationState)) NodeFunc {
		return func(_ context.Context, s state.ConversationState) (state.ConversationState, error) {
			*visited = append(*visited, name)
			if mutate != nil {
				mutate(&s)
			}
			return s, nil
		}
	}
	return Nodes{
		ClassifyIntent: mark(NodeClassifyIntent, func(s *state.ConversationState) { s.Intent = intent }),
		SearchProducts: mark(NodeSearchProducts, func(s *state.ConversationState) {
			s.SearchResults = make([]*entity.Product, results)
		}),
		BrowseCategories: mark(NodeBrowseCategories, nil),
		CompareProducts:  mark(NodeCompareProducts, func(s *state.ConversationState) { s.ResponseType = state.ResponseComparison }),
		ProductResponse:  mark(NodeProductResponse, func(s *state.ConversationState) { s.ResponseType = state.ResponseProductInfo }),
		CategoryResponse: mark(NodeCategoryResponse, func(s *state.ConversationState) { s.ResponseType = state.ResponseCategories }),
		GeneralResponse:  mark(NodeGeneralResponse, func(s *state.ConversationState) { s.ResponseType = state.ResponseGeneral }),
	}
}

func TestOrchestrator_Invoke_Paths(t *testing.T) {
	tests := []struct {
		name     string
		intent   string
		results  int
		wantPath []string
		wantType state.ResponseType
	}{
		{name: "search", intent: state.IntentProductSearch, results: 3, wantPath: []string{NodeClassifyIntent, NodeSearchProducts, NodeProductResponse}, wantType: state.ResponseProductInfo},
		{name: "compare", intent: state.IntentProductCompare, results: 2, wantPath: []string{NodeClassifyIntent, NodeSearchProducts, NodeCompareProducts}, wantType: state.ResponseComparison},
		{name: "compare with one result", intent: state.IntentProductCompare, results: 1, wantPath: []string{NodeClassifyIntent, NodeSearchProducts, NodeProductResponse}, wantType: state.ResponseProductInfo},
		{name: "browse", intent: state.IntentCategoryBrowse, wantPath: []string{NodeClassifyIntent, NodeBrowseCategories, NodeCategoryResponse}, wantType: state.ResponseCategories},
		{name: "greeting", intent: state.IntentGreeting, wantPath: []string{NodeClassifyIntent, NodeGeneralResponse}, wantType: state.ResponseGeneral},
		{name: "unknown label", intent: "SOMETHING_ELSE", wantPath: []string{NodeClassifyIntent, NodeGeneralResponse}, wantType: state.ResponseGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			o, err := New(recordingNodes(tt.intent, tt.results, &visited), logger.NewNopLogger(), nil)
			require.NoError(t, err)

			out, err := o.Invoke(context.Background(), state.New("hello"))

			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, visited)
			assert.Equal(t, tt.wantType, out.ResponseType)
			assert.Equal(t, "hello", out.UserMessage())
		})
	}
}

func TestOrchestrator_Invoke_PropagatesNodeError(t *testing.T) {
	var visited []string
	nodes := recordingNodes(state.IntentProductSearch, 2, &visited)
	boom := errors.New("boom")
	nodes.SearchProducts = func(context.Context, state.ConversationState) (state.ConversationState, error) {
		return state.ConversationState{}, boom
	}

	o, err := New(nodes, logger.NewNopLogger(), nil)
	require.NoError(t, err)

	_, err = o.Invoke(context.Background(), state.New("laptops"))

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), NodeSearchProducts)
	assert.Equal(t, []string{NodeClassifyIntent}, visited)
}

func TestNew_RejectsMissingNodes(t *testing.T) {
	var visited []string
	nodes := recordingNodes(state.IntentGreeting, 0, &visited)
	nodes.CompareProducts = nil

	_, err := New(nodes, logger.NewNopLogger(), nil)
	assert.ErrorContains(t, err, NodeCompareProducts)
}

func TestDescribe_MatchesRouting(t *testing.T) {
	g := Describe()

	ids := map[string]bool{}
	for _, n := range g.Nodes {
		ids[n.Id] = true
	}
	for _, e := range g.Edges {
		assert.True(t, ids[e.From], e.From)
		assert.True(t, ids[e.To], e.To)
	}
	assert.Len(t, g.Nodes, 9)
	assert.Len(t, g.Edges, 11)
}

func TestMermaid(t *testing.T) {
	out := Mermaid()

	assert.Contains(t, out, "flowchart TD\n")
	assert.Contains(t, out, "    START --> classify_intent\n")
	assert.Contains(t, out, "    search_products -->|PRODUCT_COMPARE and more than one result| compare_products\n")
	assert.Contains(t, out, "    generate_general_response --> END\n")
	assert.NotContains(t, out, "__")
}
