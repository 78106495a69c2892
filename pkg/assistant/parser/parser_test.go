package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{name: "plain list", reply: "Swimwear, Swimsuit ,bikini", want: []string{"swimwear", "swimsuit", "bikini"}},
		{name: "empty entries dropped", reply: "laptop,, ,notebook,", want: []string{"laptop", "notebook"}},
		{name: "quoted reply", reply: `"phone, smartphone"`, want: []string{"phone", "smartphone"}},
		{name: "blank", reply: "   ", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKeywords(tt.reply))
		})
	}
}

func TestMergeTerms(t *testing.T) {
	got := MergeTerms([]string{"swimwear", "swim", "beach"}, QueryTokens("Swim  Wear"))
	assert.Equal(t, []string{"swimwear", "swim", "beach", "wear"}, got)
}

func TestSearchableTerms(t *testing.T) {
	got := SearchableTerms([]string{"tv", "pc", "usb", "", "café", "él"}, 3)
	assert.Equal(t, []string{"usb", "café"}, got)
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{name: "comma separated", reply: "id3, id1", want: []string{"id3", "id1"}},
		{name: "newline separated", reply: "id3\nid1\r\n", want: []string{"id3", "id1"}},
		{name: "json-ish", reply: `["id3","id1"]`, want: []string{"id3", "id1"}},
		{name: "fenced", reply: "```\nid2\n```", want: []string{"id2"}},
		{name: "garbage", reply: "I cannot rank these", want: []string{"I cannot rank these"}},
		{name: "empty", reply: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIDList(tt.reply))
		})
	}
}

func TestReorderByIDs(t *testing.T) {
	items := []string{"id1", "id2", "id3"}
	self := func(s string) string { return s }

	tests := []struct {
		name  string
		ids   []string
		limit int
		want  []string
	}{
		{name: "reorders and drops missing", ids: []string{"id3", "id1"}, limit: 6, want: []string{"id3", "id1"}},
		{name: "repeated id taken once", ids: []string{"id2", "id2", "id1"}, limit: 6, want: []string{"id2", "id1"}},
		{name: "unknown ids skipped", ids: []string{"nope", "id1"}, limit: 6, want: []string{"id1"}},
		{name: "capped", ids: []string{"id1", "id2", "id3"}, limit: 2, want: []string{"id1", "id2"}},
		{name: "nothing recognized", ids: []string{"x"}, limit: 6, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReorderByIDs(items, self, tt.ids, tt.limit))
		})
	}
}

func TestWantsFilter(t *testing.T) {
	assert.True(t, WantsFilter("FILTER"))
	assert.True(t, WantsFilter("I think we should FILTER these."))
	assert.False(t, WantsFilter("SHOW_ALL"))
	assert.False(t, WantsFilter("filter"))
}

func TestCleanLabel(t *testing.T) {
	assert.Equal(t, "PRODUCT_SEARCH", CleanLabel("  PRODUCT_SEARCH\n"))
	assert.Equal(t, "\"GREETING\"", CleanLabel("\"GREETING\""))
}

func TestTruncateAndSnippet(t *testing.T) {
	long := strings.Repeat("a", 120)

	assert.Equal(t, "short", Truncate("short", 150, "..."))
	assert.Equal(t, strings.Repeat("a", 100)+"...", Truncate(long, 100, "..."))

	assert.Equal(t, "short...", Snippet("short", 50, "..."))
	assert.Equal(t, strings.Repeat("a", 50)+"...", Snippet(long, 50, "..."))
}
