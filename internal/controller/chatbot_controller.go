package controller

import (
	"context"
	"encoding/json"

	"ai-storefront-be/internal/dto"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/internal/pkg/serverutils"
	"ai-storefront-be/internal/service"
	internalWS "ai-storefront-be/internal/websocket"
	"ai-storefront-be/pkg/assistant/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetGraph(ctx *fiber.Ctx) error
	Socket(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
	hub     *internalWS.Hub
	logger  logger.ILogger

	jwtSecret string

	// sockets outlive their upgrade request, so they run under the app context
	appCtx context.Context
}

func NewChatbotController(appCtx context.Context, service service.IChatbotService, hub *internalWS.Hub, jwtSecret string, logger logger.ILogger) IChatbotController {
	return &chatbotController{
		service:   service,
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    logger,
		appCtx:    appCtx,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.OptionalJwtMiddleware(c.jwtSecret)) // anonymous shoppers allowed
	h.Post("send", c.SendChat)
	h.Get("history", c.GetHistory)
	h.Get("graph", c.GetGraph)
	h.Get("ws", c.Socket)
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.UserContext(), serverutils.UserIDFromLocals(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatbotController) GetHistory(ctx *fiber.Ctx) error {
	res, err := c.service.GetHistory(ctx.UserContext(), serverutils.UserIDFromLocals(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatbotController) GetGraph(ctx *fiber.Ctx) error {
	switch ctx.Query("format", "json") {
	case "mermaid":
		ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return ctx.SendString(workflow.Mermaid())
	case "json":
		return ctx.JSON(serverutils.SuccessResponse("Success get chat graph", workflow.Describe()))
	default:
		return fiber.NewError(fiber.StatusBadRequest, "format must be json or mermaid")
	}
}

func (c *chatbotController) Socket(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	userID := serverutils.UserIDFromLocals(ctx)
	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("ChatSocket", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(c.appCtx, c.hub, conn, userID, c.handleFrame)
		c.logger.Info("ChatSocket", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(ctx)
}

// handleFrame answers one socket frame with the same envelope as SendChat.
func (c *chatbotController) handleFrame(ctx context.Context, userID string, frame []byte) []byte {
	res := c.processFrame(ctx, userID, frame)

	data, err := json.Marshal(res)
	if err != nil {
		data, _ = json.Marshal(serverutils.ErrorResponse(fiber.StatusInternalServerError, "Failed to encode reply"))
	}
	return data
}

func (c *chatbotController) processFrame(ctx context.Context, userID string, frame []byte) *serverutils.Response {
	var req dto.SendChatRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		return serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		_, res := serverutils.ErrorToResponse(err)
		return res
	}

	chat, err := c.service.SendChat(ctx, userID, &req)
	if err != nil {
		_, res := serverutils.ErrorToResponse(err)
		return res
	}
	return serverutils.SuccessResponse("Success send chat", chat)
}
