// Package state defines the per-message record threaded through the assistant workflow.
package state

import (
	"strings"

	"ai-storefront-be/internal/entity"
)

type ResponseType string

const (
	ResponseProductInfo          ResponseType = "product_info"
	ResponseComparison           ResponseType = "comparison"
	ResponseCategories           ResponseType = "categories"
	ResponseGeneral              ResponseType = "general"
	ResponseNoProducts           ResponseType = "no_products"
	ResponseNoCategories         ResponseType = "no_categories"
	ResponseInsufficientProducts ResponseType = "insufficient_products"
	ResponseError                ResponseType = "error"
)

func (r ResponseType) Valid() bool {
	switch r {
	case ResponseProductInfo, ResponseComparison, ResponseCategories, ResponseGeneral,
		ResponseNoProducts, ResponseNoCategories, ResponseInsufficientProducts, ResponseError:
		return true
	}
	return false
}

const (
	IntentProductSearch  = "PRODUCT_SEARCH"
	IntentProductCompare = "PRODUCT_COMPARE"
	IntentCategoryBrowse = "CATEGORY_BROWSE"
	IntentGeneralHelp    = "GENERAL_HELP"
	IntentGreeting       = "GREETING"
)

// KnownIntent reports whether label is one of the five labels the classifier is asked for.
func KnownIntent(label string) bool {
	switch label {
	case IntentProductSearch, IntentProductCompare, IntentCategoryBrowse, IntentGeneralHelp, IntentGreeting:
		return true
	}
	return false
}

type CategoryGroup struct {
	Category       *entity.Category
	SampleProducts []*entity.Product
}

// ConversationState is passed by value between nodes. A node returns a copy with
// only its own fields replaced; slices are never mutated in place.
type ConversationState struct {
	userMessage string

	Intent         string
	SearchResults  []*entity.Product
	Categories     []CategoryGroup
	Response       string
	ResponseType   ResponseType
	Products       []*entity.Product
	Error          string
	NoResultsFound bool
}

func New(userMessage string) ConversationState {
	return ConversationState{userMessage: userMessage}
}

func (s ConversationState) UserMessage() string {
	return s.userMessage
}

// WithError appends msg to any error already recorded.
func (s ConversationState) WithError(msg string) ConversationState {
	if msg == "" {
		return s
	}
	if s.Error == "" {
		s.Error = msg
		return s
	}
	s.Error = strings.Join([]string{s.Error, msg}, "; ")
	return s
}
