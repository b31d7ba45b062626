package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"ai-travelplanner-be/internal/config"
	"ai-travelplanner-be/internal/controller"
	"ai-travelplanner-be/internal/pkg/logger"
	"ai-travelplanner-be/internal/pkg/mailer"
	"ai-travelplanner-be/internal/repository/implementation"
	memrepo "ai-travelplanner-be/internal/repository/memory"
	"ai-travelplanner-be/internal/repository/unitofwork"
	"ai-travelplanner-be/internal/service"
	"ai-travelplanner-be/internal/websocket"
	"ai-travelplanner-be/pkg/agent"
	"ai-travelplanner-be/pkg/analyst"
	"ai-travelplanner-be/pkg/embedding"
	"ai-travelplanner-be/pkg/extract"
	"ai-travelplanner-be/pkg/llm/factory"
	"ai-travelplanner-be/pkg/memory"
	"ai-travelplanner-be/pkg/rank"
	"ai-travelplanner-be/pkg/search"
	"ai-travelplanner-be/pkg/warehouse"

	pktNats "ai-travelplanner-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const analystResponseInstruction = "You will always maintain a friendly tone and provide concise response."

type Container struct {
	// Controllers
	PlannerController  controller.IPlannerController
	ActivityController controller.IActivityController

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.EmbeddingBaseURL,
		cfg.Ai.EmbeddingModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMAuthToken,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Agent trace log. Kept separate from the app log so a noisy planning
	// run doesn't drown out request logs.
	agentLogger := initAgentLogger(cfg.App.AgentLogFilePath)

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Embedding Pipeline
	publisherService := service.NewPublisherService(pubSub, cfg.Ai.EmbedTopicName)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedTopicName,
		uowFactory,
		embeddingProvider,
	)

	// 6. Planning Core
	analystClient := analyst.NewClient(
		cfg.Analyst.URL,
		cfg.Analyst.AuthToken,
		cfg.Analyst.Model,
		cfg.Analyst.SemanticModelFile,
		analystResponseInstruction,
		time.Duration(cfg.Analyst.TimeoutSeconds)*time.Second,
		agentLogger,
	)

	turnStore := memory.NewStore(implementation.NewMemoryTurnRepository(db), agentLogger)
	executor := warehouse.NewExecutor(db)
	searcher := search.NewSearcher(
		implementation.NewActivityEmbeddingRepository(db),
		embeddingProvider,
		float32(cfg.Ai.SearchThreshold),
		agentLogger,
	)
	ranker := rank.NewRanker(llmProvider)

	pipeline := agent.NewPipeline(
		turnStore,
		agent.NewAnalystStreamer(analystClient),
		executor,
		searcher,
		ranker,
		cfg.Planner.ContextTurns,
		cfg.Planner.SearchLimit,
		time.Duration(cfg.Planner.StepTimeoutSeconds)*time.Second,
		agentLogger,
	)

	intentService := service.NewIntentService(
		extract.NewResolver(llmProvider, agentLogger),
		memrepo.NewIntentRepository(),
	)
	orchestrator := agent.NewOrchestrator(pipeline, intentService, agentLogger)

	// 7. Services
	plannerService := service.NewPlannerService(
		orchestrator,
		uowFactory,
		natsPub,
		emailService,
		sysLogger,
		cfg.Planner.ConcurrencyLimit,
	)
	activityService := service.NewActivityService(uowFactory, publisherService)

	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	// 8. Controllers
	return &Container{
		PlannerController:  controller.NewPlannerController(plannerService),
		ActivityController: controller.NewActivityController(activityService),

		ConsumerService:     consumerService,
		NotificationService: notifService,

		WebSocketHub: wsHub,
	}
}

func initAgentLogger(path string) *log.Logger {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("[WARN] Failed to open agent log file %s: %v. Using stdout", path, err)
		return log.New(os.Stdout, "[agent] ", log.LstdFlags)
	}
	return log.New(f, "", log.LstdFlags)
}
