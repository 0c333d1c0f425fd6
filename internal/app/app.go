package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm_assistant_backend/internal/config"
	"crm_assistant_backend/internal/controller"
	"crm_assistant_backend/internal/llm"
	"crm_assistant_backend/internal/repository"
	"crm_assistant_backend/internal/service"
	"crm_assistant_backend/pkg/database"
	"crm_assistant_backend/pkg/logger"
	"crm_assistant_backend/pkg/monitoring"
	"crm_assistant_backend/pkg/security"
	"crm_assistant_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	crmChat     *repository.CrmChatRepository
	chatMessage *repository.ChatMessageRepository
	documents   *repository.DocumentRepository
}

type services struct {
	storage        *service.StorageService
	intent         *service.IntentService
	sqlgen         *service.SQLGenService
	crmQuery       *service.CrmQueryService
	crmChat        *service.CrmChatService
	chat           *service.ChatService
	questionAnswer *service.QuestionAnswerService
	files          *service.FilesService
}

type controllers struct {
	chat           *controller.ChatController
	questionAnswer *controller.QuestionAnswerController
	files          *controller.FilesController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig pushes reloaded settings to the services that accept them
// at runtime.
func (a *App) ApplyConfig(cfg *config.Config) {
	if a.services != nil && a.services.crmChat != nil {
		a.services.crmChat.UpdateAIConfig(cfg.AI)
	}
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, cfg *config.Config) *repositories {
	embedder := llm.NewEmbedder(cfg.AI.EmbeddingModel, cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.OllamaBaseURL)
	return &repositories{
		crmChat:     repository.NewCrmChatRepository(db),
		chatMessage: repository.NewChatMessageRepository(db),
		documents:   repository.NewDocumentRepository(db, embedder),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	gateway := llm.NewProviderRouter(
		llm.NewOpenAIClient(cfg.AI.BaseURL, cfg.AI.APIKey),
		llm.NewOllamaClient(cfg.AI.OllamaBaseURL),
	)

	s.intent = service.NewIntentService(gateway, cfg.AI.ClassifierModel)
	s.sqlgen = service.NewSQLGenService(gateway)
	s.crmQuery = service.NewCrmQueryService(&cfg.CRMDatabase)
	s.crmChat = service.NewCrmChatService(
		repos.crmChat,
		repos.documents,
		s.intent,
		s.sqlgen,
		s.crmQuery,
		gateway,
		cfg.AI,
	)
	s.chat = service.NewChatService(gateway, repos.chatMessage)

	allMinilmDocs := repos.documents.WithEmbedder(
		llm.NewEmbedder("all-minilm", cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.OllamaBaseURL))
	openAIDocs := repos.documents.WithEmbedder(
		llm.NewEmbedder("text-embedding-3-small", cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.OllamaBaseURL))
	s.questionAnswer = service.NewQuestionAnswerService(gateway, allMinilmDocs, openAIDocs, repos.chatMessage, cfg.AI.RetrievalK)

	s.files = service.NewFilesService(repos.documents, storage.Provider)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		chat:           controller.NewChatController(s.crmChat, s.chat),
		questionAnswer: controller.NewQuestionAnswerController(s.questionAnswer),
		files:          controller.NewFilesController(s.files, a.Config),
		health:         controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// shouldMigrate gates startup migrations: always outside release mode, in
// release only when forced with the -migrate flag.
func shouldMigrate(cfg *config.Config) bool {
	return cfg.ForceMigrate || cfg.Server.Mode != "release"
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, shouldMigrate(cfg))
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db, cfg)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("crm-assistant", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" && cfg.Storage.LocalPath != "" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, os.ModePerm)
		}
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
