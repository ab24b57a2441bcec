package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"genegpt-be/internal/config"
	"genegpt-be/internal/controller"
	"genegpt-be/internal/model"
	"genegpt-be/internal/pkg/logger"
	"genegpt-be/internal/repository/contract"
	"genegpt-be/internal/repository/implementation"
	"genegpt-be/internal/repository/memory"
	"genegpt-be/internal/repository/redisstore"
	"genegpt-be/internal/service"
	"genegpt-be/pkg/counsel"
	"genegpt-be/pkg/counsel/evidence"
	"genegpt-be/pkg/counsel/score"
	"genegpt-be/pkg/counsel/synthesis"
	"genegpt-be/pkg/llm"
	"genegpt-be/pkg/llm/factory"
	"genegpt-be/pkg/sources/clinvar"
	"genegpt-be/pkg/sources/genereviews"
	"genegpt-be/pkg/sources/gnomad"
	"genegpt-be/pkg/sources/ncbigene"
	"genegpt-be/pkg/sources/omim"
	"genegpt-be/pkg/sources/pubmed"

	pktNats "genegpt-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CounselorController controller.ICounselorController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Pipeline components
	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	omimClient := omim.NewClient(cfg.Keys.Omim)
	if cfg.Pipeline.Mim2GenePath != "" {
		if data, err := os.ReadFile(cfg.Pipeline.Mim2GenePath); err != nil {
			log.Printf("[WARN] Failed to read mim2gene mapping %s: %v", cfg.Pipeline.Mim2GenePath, err)
		} else {
			omimClient.LoadMimMapping(string(data))
			log.Printf("[INFO] Loaded OMIM symbol mapping from %s", cfg.Pipeline.Mim2GenePath)
		}
	}

	aggregator := &evidence.Aggregator{
		OMIM:          omimClient,
		NCBI:          ncbigene.NewClient(cfg.Keys.Ncbi),
		ClinVar:       clinvar.NewClient(cfg.Keys.Ncbi),
		PubMed:        pubmed.NewClient(cfg.Keys.Ncbi),
		GeneReviews:   genereviews.NewClient(cfg.Keys.Ncbi),
		Gnomad:        gnomad.NewClient(),
		SourceTimeout: time.Duration(cfg.Pipeline.SourceTimeoutSeconds) * time.Second,
	}

	scorer := score.NewEngine(score.DefaultConfig())
	synthesizer := synthesis.NewSynthesizer(llmProvider, llm.WithTemperature(0.2))
	pipeline := counsel.NewPipeline(aggregator, scorer, synthesizer)

	// Session Storage (memory by default, Redis when configured)
	sessionTTL := time.Duration(cfg.Pipeline.SessionTTLMinutes) * time.Minute
	var sessionRepo contract.ISessionRepository
	if cfg.Pipeline.SessionStore == "redis" {
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
		sessionRepo = redisstore.NewSessionRepository(rdb, sessionTTL)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(sessionTTL)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 3.5 Infrastructure
	// NATS (optional; turn events still flow on the in-process bus without it)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Audit trail repository is only wired when a database is configured.
	var turnRepo contract.IConsultTurnRepository
	if db != nil {
		if err := db.AutoMigrate(&model.ConsultTurn{}); err != nil {
			log.Printf("[WARN] Failed to migrate consult_turns table: %v", err)
		}
		turnRepo = implementation.NewConsultTurnRepository(db)
	}

	// Audit trail gets its own file so turn records don't drown the main log.
	auditLog := logger.NewIsolatedLogger("logs/audit.log")

	publisherService := service.NewPublisherService(cfg.Pipeline.TurnTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Pipeline.TurnTopic, turnRepo, auditLog)

	counselorService := service.NewCounselorService(
		pipeline,
		sessionRepo,
		turnRepo,
		publisherService,
		natsPub,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		CounselorController: controller.NewCounselorController(counselorService),

		ConsumerService: consumerService,
	}
}
