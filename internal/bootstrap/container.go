package bootstrap

import (
	"context"
	"log"

	"ai-storefront-be/internal/config"
	"ai-storefront-be/internal/controller"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/internal/pkg/metrics"
	"ai-storefront-be/internal/repository/unitofwork"
	"ai-storefront-be/internal/service"
	"ai-storefront-be/internal/websocket"
	"ai-storefront-be/pkg/assistant/agent"
	"ai-storefront-be/pkg/assistant/contract"
	"ai-storefront-be/pkg/assistant/search"
	"ai-storefront-be/pkg/cache"
	"ai-storefront-be/pkg/events"
	"ai-storefront-be/pkg/llm"
	"ai-storefront-be/pkg/llm/factory"

	pktNats "ai-storefront-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	ChatbotController controller.IChatbotController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	WebSocketHub *websocket.Hub
	Logger       *logger.ZapLogger

	closers []func()
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	c.Logger = sysLogger

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure, all optional
	var natsPub events.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
			c.closers = append(c.closers, pub.Close)
		}
	}

	rdb := newRedis(ctx, cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// 4. Generation Client
	provider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		APIKey:   cfg.ProviderAPIKey(),
		BaseURL:  cfg.ProviderBaseURL(),
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	provider = llm.NewGuarded(provider, cfg.Ai.CallTimeout, cfg.Ai.RateLimitRPS, cfg.Ai.RateLimitBurst)
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. Assistant
	var sharedCache cache.Client
	if rdb != nil {
		sharedCache = cache.NewRedisClient(rdb, "")
	}
	keywordCache := cache.NewTiered(
		cache.NewMemoryClient(cfg.Ai.KeywordCacheTTL, 2*cfg.Ai.KeywordCacheTTL),
		sharedCache,
		cfg.Ai.KeywordCacheTTL,
	)

	searchCfg := search.DefaultConfig()
	searchCfg.KeywordCacheTTL = cfg.Ai.KeywordCacheTTL

	catalog := contract.WithTimeout(service.NewCatalogService(uowFactory), cfg.Assistant.CatalogCallTimeout)
	assistant, err := agent.New(catalog, provider,
		agent.WithLogger(sysLogger),
		agent.WithMetrics(metrics.NewAssistant(prometheus.DefaultRegisterer)),
		agent.WithKeywordCache(keywordCache),
		agent.WithSearchConfig(searchCfg),
		agent.WithCategoryFanout(cfg.Assistant.CategoryFanout),
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to build assistant: %v", err)
	}

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Assistant.ChatEventsTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Assistant.ChatEventsTopic,
		natsPub,
		sysLogger,
	)
	chatbotService := service.NewChatbotService(assistant, publisherService, sysLogger)

	// 7. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)
	go c.WebSocketHub.Run(ctx)

	// 8. Controllers
	c.ChatbotController = controller.NewChatbotController(ctx, chatbotService, c.WebSocketHub, cfg.App.JwtSecret, wsLogger)

	return c
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func newRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, continuing without it: %v", err)
		rdb.Close()
		return nil
	}
	return rdb
}
