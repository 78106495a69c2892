package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"ai-storefront-be/internal/config"
	"ai-storefront-be/internal/repository/unitofwork"
	"ai-storefront-be/internal/service"
	"ai-storefront-be/pkg/assistant/agent"
	"ai-storefront-be/pkg/assistant/contract"
	"ai-storefront-be/pkg/assistant/workflow"
	"ai-storefront-be/pkg/database"
	"ai-storefront-be/pkg/events"
	"ai-storefront-be/pkg/llm"
	"ai-storefront-be/pkg/llm/factory"
	pktNats "ai-storefront-be/pkg/nats"

	"github.com/fatih/color"
	"gorm.io/gorm/logger"
)

func main() {
	watch := flag.Bool("watch", false, "print chat events from NATS instead of running messages")
	graph := flag.Bool("graph", false, "print the workflow as a Mermaid flowchart and exit")
	flag.Parse()

	if *graph {
		fmt.Print(workflow.Mermaid())
		return
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *watch {
		if err := watchEvents(ctx, cfg.App.NatsURL); err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		return
	}

	assistant, err := buildAgent(cfg)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	color.Cyan("🛍️  Storefront assistant debug (%s / %s)\n", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	if flag.NArg() > 0 {
		run(ctx, assistant, strings.Join(flag.Args(), " "))
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		if msg := strings.TrimSpace(scanner.Text()); msg != "" {
			run(ctx, assistant, msg)
		}
		if ctx.Err() != nil {
			return
		}
		fmt.Print("> ")
	}
}

func buildAgent(cfg *config.Config) (*agent.Agent, error) {
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.WithLogLevel(logger.Silent))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	provider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		APIKey:   cfg.ProviderAPIKey(),
		BaseURL:  cfg.ProviderBaseURL(),
	})
	if err != nil {
		return nil, err
	}
	provider = llm.NewGuarded(provider, cfg.Ai.CallTimeout, 0, 0)

	catalog := contract.WithTimeout(service.NewCatalogService(unitofwork.NewRepositoryFactory(db)), cfg.Assistant.CatalogCallTimeout)
	return agent.New(catalog, provider)
}

func run(ctx context.Context, assistant *agent.Agent, msg string) {
	res := assistant.ProcessMessage(ctx, msg)

	color.Yellow("\n[%s] -> %s (%s)", res.Intent, res.Type, res.Duration.Round(time.Millisecond))
	if res.Error != nil {
		color.Red("error: %s", *res.Error)
	}
	color.Green("%s\n", res.Message)

	for i, p := range res.Products {
		fmt.Printf("  %d. %s  %s  $%.2f\n", i+1, p.Name, color.HiBlackString(p.CategoryName()), p.Price)
	}
	fmt.Println()
}

func watchEvents(ctx context.Context, url string) error {
	if url == "" {
		return fmt.Errorf("NATS_URL is not set")
	}

	sub, err := pktNats.NewSubscriber(url)
	if err != nil {
		return err
	}
	defer sub.Close()

	err = sub.Subscribe(ctx, events.ChatMessageProcessed, "", func(_ context.Context, evt events.Event) error {
		body, _ := json.Marshal(evt.Payload())
		color.Cyan("%s %s", evt.Timestamp().Format(time.TimeOnly), evt.EventType())
		fmt.Println(string(body))
		return nil
	})
	if err != nil {
		return err
	}

	color.Green("Watching %s (ctrl+c to stop)", pktNats.Subject(events.ChatMessageProcessed))
	<-ctx.Done()
	return nil
}
