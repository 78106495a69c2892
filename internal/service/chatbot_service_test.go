package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-storefront-be/internal/dto"
	"ai-storefront-be/internal/entity"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/pkg/assistant/agent"
	"ai-storefront-be/pkg/assistant/contract"
	"ai-storefront-be/pkg/assistant/state"
	"ai-storefront-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistant struct {
	result   agent.Result
	history  []contract.HistoryEntry
	err      error
	lastUser string
	lastMsg  string
}

func (f *fakeAssistant) ProcessMessage(ctx context.Context, userMessage string) agent.Result {
	f.lastUser = agent.UserIDFromContext(ctx)
	f.lastMsg = userMessage
	return f.result
}

func (f *fakeAssistant) History(ctx context.Context, limit int) ([]contract.HistoryEntry, error) {
	f.lastUser = agent.UserIDFromContext(ctx)
	return f.history, f.err
}

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (r *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	return r.err
}

func TestChatbotService_SendChat(t *testing.T) {
	category := &entity.Category{Id: uuid.New(), Name: "Electronics"}
	product := &entity.Product{
		Id:         uuid.New(),
		Name:       "Aurora X1",
		Price:      499,
		CategoryId: category.Id,
		Category:   category,
		SellerId:   uuid.New(),
	}

	t.Run("maps the assistant result", func(t *testing.T) {
		fa := &fakeAssistant{result: agent.Result{
			Message:  "Here are some phones",
			Type:     state.ResponseProductInfo,
			Products: []*entity.Product{product},
			Intent:   state.IntentProductSearch,
			Duration: 25 * time.Millisecond,
		}}
		pub := &recordingPublisher{}
		svc := NewChatbotService(fa, pub, logger.NewNopLogger())

		res, err := svc.SendChat(context.Background(), "user-1", &dto.SendChatRequest{Message: "  phones  "})
		require.NoError(t, err)

		assert.Equal(t, "phones", fa.lastMsg)
		assert.Equal(t, "user-1", fa.lastUser)
		assert.Equal(t, "Here are some phones", res.Message)
		assert.Equal(t, "product_info", res.Type)
		assert.Nil(t, res.Error)
		require.Len(t, res.Products, 1)
		assert.Equal(t, product.Id.String(), res.Products[0].Id)
		assert.Equal(t, "Electronics", res.Products[0].Category.Name)
		assert.Equal(t, []string{}, res.Products[0].Images)

		_, err = time.Parse(time.RFC3339, res.Timestamp)
		assert.NoError(t, err)

		require.Len(t, pub.payloads, 1)
		var evt dto.ChatEventMessage
		require.NoError(t, json.Unmarshal(pub.payloads[0], &evt))
		assert.Equal(t, "user-1", evt.UserId)
		assert.Equal(t, state.IntentProductSearch, evt.Intent)
		assert.Equal(t, 1, evt.ProductCount)
		assert.Equal(t, int64(25), evt.DurationMs)
	})

	t.Run("products are never null", func(t *testing.T) {
		reason := "boom"
		fa := &fakeAssistant{result: agent.Result{
			Message:  "sorry",
			Type:     state.ResponseError,
			Products: []*entity.Product{},
			Error:    &reason,
		}}
		svc := NewChatbotService(fa, nil, logger.NewNopLogger())

		res, err := svc.SendChat(context.Background(), "", &dto.SendChatRequest{Message: "hi"})
		require.NoError(t, err)
		assert.NotNil(t, res.Products)
		assert.Empty(t, res.Products)
		require.NotNil(t, res.Error)
		assert.Equal(t, "boom", *res.Error)

		body, err := json.Marshal(res)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"products":[]`)
	})

	t.Run("publish failure does not fail the chat", func(t *testing.T) {
		fa := &fakeAssistant{result: agent.Result{Message: "hello", Type: state.ResponseGeneral, Products: []*entity.Product{}}}
		svc := NewChatbotService(fa, &recordingPublisher{err: errors.New("bus down")}, logger.NewNopLogger())

		res, err := svc.SendChat(context.Background(), "", &dto.SendChatRequest{Message: "hi"})
		require.NoError(t, err)
		assert.Equal(t, "hello", res.Message)
	})

	t.Run("blank message is rejected", func(t *testing.T) {
		svc := NewChatbotService(&fakeAssistant{}, nil, logger.NewNopLogger())

		_, err := svc.SendChat(context.Background(), "", &dto.SendChatRequest{Message: "   "})
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})
}

func TestChatbotService_GetHistory(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("empty store returns an empty list", func(t *testing.T) {
		fa := &fakeAssistant{history: []contract.HistoryEntry{}}
		svc := NewChatbotService(fa, nil, logger.NewNopLogger())

		res, err := svc.GetHistory(context.Background(), "user-9")
		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
		assert.Equal(t, "user-9", fa.lastUser)
	})

	t.Run("entries are mapped", func(t *testing.T) {
		fa := &fakeAssistant{history: []contract.HistoryEntry{
			{UserId: "u", UserMessage: "hi", Reply: "hello", ResponseType: "general", CreatedAt: at},
		}}
		svc := NewChatbotService(fa, nil, logger.NewNopLogger())

		res, err := svc.GetHistory(context.Background(), "u")
		require.NoError(t, err)
		assert.Equal(t, []dto.ChatHistoryResponse{
			{Message: "hi", Response: "hello", Type: "general", UserId: "u", Timestamp: at},
		}, res)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		svc := NewChatbotService(&fakeAssistant{err: errors.New("db down")}, nil, logger.NewNopLogger())

		_, err := svc.GetHistory(context.Background(), "u")
		assert.EqualError(t, err, "db down")
	})
}

type recordingForwarder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingForwarder) Publish(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingForwarder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestConsumerService_ForwardsChatEvents(t *testing.T) {
	const topic = "CHAT_MESSAGE_PROCESSED"

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	forwarder := &recordingForwarder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumerService(pubSub, topic, forwarder, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(topic, pubSub)
	require.NoError(t, publisher.Publish(ctx, []byte("not json")))

	payload, err := json.Marshal(dto.ChatEventMessage{
		UserId:       "user-1",
		Intent:       state.IntentProductCompare,
		ResponseType: "comparison",
		ProductCount: 3,
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	require.Eventually(t, func() bool { return forwarder.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	forwarder.mu.Lock()
	evt := forwarder.events[0]
	forwarder.mu.Unlock()
	assert.Equal(t, events.ChatMessageProcessed, evt.EventType())
	assert.Equal(t, "user-1", evt.Payload()["user_id"])
	assert.Equal(t, 3, evt.Payload()["product_count"])
}
