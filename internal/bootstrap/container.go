package bootstrap

import (
	"context"
	"log"
	"time"

	"tabular-qa-be/internal/config"
	"tabular-qa-be/internal/controller"
	"tabular-qa-be/internal/pkg/logger"
	"tabular-qa-be/internal/pkg/serverutils"
	"tabular-qa-be/internal/repository/memory"
	"tabular-qa-be/internal/repository/unitofwork"
	"tabular-qa-be/internal/service"
	"tabular-qa-be/pkg/cache"
	"tabular-qa-be/pkg/llm/factory"

	pktNats "tabular-qa-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const auditTopic = "audit.events"

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	FileController  controller.IFileController
	QueryController controller.IQueryController

	// Background Services (Exposed for main.go to run)
	AuditService service.IAuditService

	// Shared
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	auditPublisher := service.NewAuditPublisher(pubSub, auditTopic)
	auditService := service.NewAuditService(pubSub, auditTopic, auditLogger)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis-backed answer cache, with in-memory fallback when Redis is down
	// at boot. The service keeps running either way.
	var answerCache cache.AnswerCache
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory answer cache", err)
		answerCache = memory.NewAnswerCache()
	} else {
		answerCache = cache.NewRedisAnswerCache(rdb)
	}

	// LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.DefaultModel,
		providerBaseURL(cfg),
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.DefaultModel)

	// 3. Services
	answerTTL := time.Duration(cfg.Cache.AnswerTTLSeconds) * time.Second

	authService := service.NewAuthService(uowFactory, cfg.Auth, natsPub)
	fileService := service.NewFileService(uowFactory, cfg.Upload, sysLogger, auditPublisher, natsPub)
	queryService := service.NewQueryService(
		uowFactory,
		answerCache,
		llmProvider,
		cfg.Ai,
		answerTTL,
		sysLogger,
		auditPublisher,
		natsPub,
	)

	// 4. Middleware shared by protected routes
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret, uowFactory)

	// 5. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService),
		FileController:  controller.NewFileController(fileService, jwtMiddleware),
		QueryController: controller.NewQueryController(queryService, jwtMiddleware),

		AuditService: auditService,
		Logger:       sysLogger,
	}
}

func providerBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.OpenAIBaseURL
}
