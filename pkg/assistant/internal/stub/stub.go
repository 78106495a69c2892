// Package stub holds deterministic collaborators for assistant tests.
package stub

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ai-storefront-be/internal/entity"
	"ai-storefront-be/pkg/llm"

	"github.com/google/uuid"
)

var ErrUnavailable = errors.New("generation backend unavailable")

// Rule answers prompts containing Match. Err takes precedence over Reply.
type Rule struct {
	Match string
	Reply string
	Err   error
}

// LLM returns the first rule whose Match is a substring of the prompt.
// Unmatched prompts fail with ErrUnavailable.
type LLM struct {
	Rules []Rule

	mu      sync.Mutex
	Prompts []string
}

var _ llm.LLMProvider = &LLM{}

func (l *LLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	l.mu.Lock()
	l.Prompts = append(l.Prompts, prompt)
	l.mu.Unlock()

	for _, r := range l.Rules {
		if strings.Contains(prompt, r.Match) {
			if r.Err != nil {
				return "", r.Err
			}
			return r.Reply, nil
		}
	}
	return "", ErrUnavailable
}

func (l *LLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", ErrUnavailable
	}
	return l.Generate(ctx, history[len(history)-1].Content, opts...)
}

// Calls counts the prompts that contained marker.
func (l *LLM) Calls(marker string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, p := range l.Prompts {
		if strings.Contains(p, marker) {
			n++
		}
	}
	return n
}

// Prompt markers, one distinctive phrase per prompt template.
const (
	IntentPrompt     = "Classify the user's intent"
	KeywordPrompt    = "Generate smart search keywords"
	RankingPrompt    = "STRICT RANKING RULES"
	FilterPrompt     = "SHOW_ALL"
	ComparePrompt    = "Compare these products in detail"
	SuggestionPrompt = "We couldn't find exact matches"
	ProductPrompt    = "Here are the relevant products I found"
	GeneralPrompt    = "This is a general query for an e-commerce store"
)

// Catalog is an in-memory catalog with case-insensitive substring matching.
type Catalog struct {
	Products   []*entity.Product
	Categories []*entity.Category

	// Err, when set, fails the named method ("text", "category", "categories", "bycategory", "any").
	Err map[string]error
}

func (c *Catalog) fail(method string) error {
	if c.Err == nil {
		return nil
	}
	return c.Err[method]
}

func matchesAny(s string, terms []string) bool {
	s = strings.ToLower(s)
	for _, t := range terms {
		if strings.Contains(s, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

func capped(in []*entity.Product, limit int) []*entity.Product {
	if len(in) > limit {
		return in[:limit]
	}
	return in
}

func (c *Catalog) FindByTextSubstring(_ context.Context, terms []string, limit int) ([]*entity.Product, error) {
	if err := c.fail("text"); err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0)
	for _, p := range c.Products {
		if matchesAny(p.Name, terms) || matchesAny(p.Description, terms) {
			out = append(out, p)
		}
	}
	return capped(out, limit), nil
}

func (c *Catalog) FindByCategoryNameSubstring(_ context.Context, terms []string, limit int) ([]*entity.Product, error) {
	if err := c.fail("category"); err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0)
	for _, p := range c.Products {
		if p.Category != nil && matchesAny(p.Category.Name, terms) {
			out = append(out, p)
		}
	}
	return capped(out, limit), nil
}

func (c *Catalog) FindAllCategories(_ context.Context) ([]*entity.Category, error) {
	if err := c.fail("categories"); err != nil {
		return nil, err
	}
	return c.Categories, nil
}

func (c *Catalog) FindByCategory(_ context.Context, categoryId uuid.UUID, limit int) ([]*entity.Product, error) {
	if err := c.fail("bycategory"); err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0)
	for _, p := range c.Products {
		if p.CategoryId == categoryId {
			out = append(out, p)
		}
	}
	return capped(out, limit), nil
}

func (c *Catalog) FindAny(_ context.Context, limit int) ([]*entity.Product, error) {
	if err := c.fail("any"); err != nil {
		return nil, err
	}
	return capped(c.Products, limit), nil
}

// NewCategory builds a category with a deterministic id derived from name.
func NewCategory(name string) *entity.Category {
	return &entity.Category{
		Id:   uuid.NewSHA1(uuid.NameSpaceOID, []byte("category:"+name)),
		Name: name,
	}
}

// NewProduct builds a product with a deterministic id derived from name.
func NewProduct(name, description string, price float64, category *entity.Category) *entity.Product {
	p := &entity.Product{
		Id:          uuid.NewSHA1(uuid.NameSpaceOID, []byte("product:"+name)),
		Name:        name,
		Description: description,
		Price:       price,
		Images:      []string{},
		Category:    category,
	}
	if category != nil {
		p.CategoryId = category.Id
	}
	return p
}
