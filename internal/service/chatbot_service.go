package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ai-storefront-be/internal/dto"
	"ai-storefront-be/internal/mapper"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/pkg/assistant/agent"
	"ai-storefront-be/pkg/assistant/contract"

	"github.com/gofiber/fiber/v2"
)

const historyLimit = 50

// MessageProcessor is the part of the assistant the chat transport needs.
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, userMessage string) agent.Result
	History(ctx context.Context, limit int) ([]contract.HistoryEntry, error)
}

type IChatbotService interface {
	SendChat(ctx context.Context, userId string, request *dto.SendChatRequest) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, userId string) ([]dto.ChatHistoryResponse, error)
}

type chatbotService struct {
	assistant        MessageProcessor
	publisherService IPublisherService
	productMapper    *mapper.ProductMapper
	logger           logger.ILogger
}

func NewChatbotService(assistant MessageProcessor, publisherService IPublisherService, logger logger.ILogger) IChatbotService {
	return &chatbotService{
		assistant:        assistant,
		publisherService: publisherService,
		productMapper:    mapper.NewProductMapper(),
		logger:           logger,
	}
}

func (c *chatbotService) SendChat(ctx context.Context, userId string, request *dto.SendChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(request.Message)
	if message == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	ctx = agent.ContextWithUserID(ctx, userId)
	res := c.assistant.ProcessMessage(ctx, message)

	c.publishProcessed(ctx, userId, res)

	return &dto.ChatResponse{
		Message:   res.Message,
		Type:      string(res.Type),
		Products:  c.productMapper.ToDTOs(res.Products),
		Error:     res.Error,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (c *chatbotService) GetHistory(ctx context.Context, userId string) ([]dto.ChatHistoryResponse, error) {
	entries, err := c.assistant.History(agent.ContextWithUserID(ctx, userId), historyLimit)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ChatHistoryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, dto.ChatHistoryResponse{
			Message:   e.UserMessage,
			Response:  e.Reply,
			Type:      e.ResponseType,
			UserId:    e.UserId,
			Timestamp: e.CreatedAt,
		})
	}
	return res, nil
}

// publishProcessed is fire and forget; the shopper already has an answer.
func (c *chatbotService) publishProcessed(ctx context.Context, userId string, res agent.Result) {
	if c.publisherService == nil {
		return
	}

	payload, err := json.Marshal(dto.ChatEventMessage{
		UserId:       userId,
		Intent:       res.Intent,
		ResponseType: string(res.Type),
		ProductCount: len(res.Products),
		HasError:     res.Error != nil,
		DurationMs:   res.Duration.Milliseconds(),
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		c.logger.Error("CHAT", "Failed to marshal chat event", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := c.publisherService.Publish(context.WithoutCancel(ctx), payload); err != nil {
		c.logger.Warn("CHAT", "Failed to publish chat event", map[string]interface{}{"error": err.Error()})
	}
}
