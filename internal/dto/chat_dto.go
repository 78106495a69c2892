package dto

import "time"

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type CategoryDTO struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductDTO struct {
	Id          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Images      []string     `json:"images"`
	Category    *CategoryDTO `json:"category"`
	SellerId    string       `json:"seller_id"`
	CreatedAt   time.Time    `json:"created_at"`
}

type ChatResponse struct {
	Message   string       `json:"message"`
	Type      string       `json:"type"`
	Products  []ProductDTO `json:"products"`
	Error     *string      `json:"error"`
	Timestamp string       `json:"timestamp"`
}

type ChatHistoryResponse struct {
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Type      string    `json:"type"`
	UserId    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatEventMessage is the payload published on the chat events topic.
type ChatEventMessage struct {
	UserId       string    `json:"user_id,omitempty"`
	Intent       string    `json:"intent"`
	ResponseType string    `json:"response_type"`
	ProductCount int       `json:"product_count"`
	HasError     bool      `json:"has_error"`
	DurationMs   int64     `json:"duration_ms"`
	OccurredAt   time.Time `json:"occurred_at"`
}
