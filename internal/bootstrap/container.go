package bootstrap

import (
	"context"
	"log"

	"yt-refinery/internal/config"
	"yt-refinery/internal/controller"
	"yt-refinery/internal/pkg/logger"
	"yt-refinery/internal/repository/contract"
	"yt-refinery/internal/repository/memory"
	"yt-refinery/internal/repository/redisrepo"
	"yt-refinery/internal/service"
	"yt-refinery/pkg/llm/budget"
	"yt-refinery/pkg/llm/factory"
	"yt-refinery/pkg/refinery/pipeline"
	"yt-refinery/pkg/refinery/stage"
	"yt-refinery/pkg/report"
	"yt-refinery/pkg/youtube"

	pktNats "yt-refinery/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ClusterController controller.IClusterController
	VideoController   controller.IVideoController
	TaskController    controller.ITaskController
	ReportController  controller.IReportController

	// Background Services (Exposed for main.go to run)
	TaskService service.ITaskService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis-backed cluster store, in-memory fallback when unreachable
	var clusterRepo contract.ClusterRepository
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory cluster store", err)
		clusterRepo = memory.NewClusterRepository()
	} else {
		clusterRepo = redisrepo.NewClusterRepository(rdb)
	}

	// 3. Pipeline components
	llmBaseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		llmBaseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	estimator := budget.NewEstimator(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.MaxCostLimit)
	executor := stage.NewExecutor(llmProvider, estimator)
	source := youtube.NewClient()
	reportWriter := report.NewWriter(cfg.App.OutputDir)

	orchestrator := pipeline.NewOrchestrator(clusterRepo, source, executor, reportWriter, sysLogger)

	// 4. Services
	taskRepo := memory.NewTaskRepository()
	taskService := service.NewTaskService(taskRepo, pubSub, sysLogger)
	clusterService := service.NewClusterService(orchestrator, clusterRepo, taskService, natsPub, sysLogger)
	videoService := service.NewVideoService(orchestrator, taskService, natsPub, sysLogger)

	// 5. Controllers
	clusterController := controller.NewClusterController(clusterService)
	videoController := controller.NewVideoController(videoService)
	taskController := controller.NewTaskController(taskService)
	reportController := controller.NewReportController(reportWriter)

	return &Container{
		ClusterController: clusterController,
		VideoController:   videoController,
		TaskController:    taskController,
		ReportController:  reportController,
		TaskService:       taskService,
	}
}
