package bootstrap

import (
	"log"
	"os"
	"time"

	"nestquest-be/internal/config"
	"nestquest-be/internal/controller"
	"nestquest-be/internal/pkg/logger"
	"nestquest-be/internal/service"
	"nestquest-be/pkg/assistant/contextcache"
	"nestquest-be/pkg/assistant/faq"
	"nestquest-be/pkg/assistant/invoker"
	"nestquest-be/pkg/assistant/ledger"
	"nestquest-be/pkg/assistant/memory"
	"nestquest-be/pkg/assistant/ratelimit"
	"nestquest-be/pkg/assistant/retrieval"
	"nestquest-be/pkg/llm/factory"
	"nestquest-be/pkg/matching"
	"nestquest-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	AssistantController controller.IAssistantController
	AdminController     controller.IAdminController

	// Background services, run by main.go.
	ConsumerService service.IConsumerService

	SysLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	querier := store.NewGormQuerier(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := log.New(os.Stdout, "[assistant] ", log.LstdFlags)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Model provider
	llmProvider, err := factory.NewProvider(
		cfg.Assistant.LLMProvider,
		cfg.Assistant.LLMModel,
		providerBaseURL(cfg),
		cfg.Assistant.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Assistant.LLMProvider, cfg.Assistant.LLMModel)

	// 4. Assistant state
	userCtx := contextcache.New()
	faqStore := faq.NewStore()
	transcripts := memory.NewTranscripts()
	ledg := ledger.New()
	limiter := ratelimit.New(cfg.Assistant.RateLimit, time.Duration(cfg.Assistant.RateWindowSecs)*time.Second)

	var matcher matching.Service
	if cfg.Assistant.MatchingBaseURL != "" {
		matcher = matching.NewHTTPService(cfg.Assistant.MatchingBaseURL)
	} else {
		log.Println("[WARN] Matching service URL not set, roommate retrieval disabled")
	}

	orchestrator := retrieval.NewOrchestrator(querier, matcher, userCtx, pipelineLogger)
	inv := invoker.New(llmProvider, faqStore, pipelineLogger)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Assistant.InteractionTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Assistant.InteractionTopic, querier)

	assistantService := service.NewAssistantService(
		orchestrator,
		inv,
		limiter,
		transcripts,
		ledg,
		faqStore,
		userCtx,
		publisherService,
		cfg.Assistant.LLMModel,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		AdminController:     controller.NewAdminController(assistantService),
		ConsumerService:     consumerService,
		SysLogger:           sysLogger,
	}
}

// providerBaseURL picks the endpoint matching the configured provider.
func providerBaseURL(cfg *config.Config) string {
	if cfg.Assistant.LLMProvider == "ollama" {
		return cfg.Assistant.OllamaBaseURL
	}
	return cfg.Assistant.OpenAIBaseURL
}
