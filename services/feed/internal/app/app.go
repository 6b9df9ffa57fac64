package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creatitube/pkg/ai"
	"creatitube/pkg/cache"
	"creatitube/pkg/config"
	"creatitube/pkg/kv"
	"creatitube/pkg/logger"
	"creatitube/pkg/middleware"
	feedHTTP "creatitube/services/feed/internal/controller/http"
	"creatitube/services/feed/internal/repo/persistent"
	"creatitube/services/feed/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "creatitube/services/feed/docs" // Swagger docs
)

const highlightTTL = 24 * time.Hour

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	store       kv.Store
	redisClient *redis.Client
	assistant   *ai.Assistant
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New().With("service", "feed")

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		redisClient = nil
	}

	store, err := kv.Open(cfg, redisClient)
	if err != nil {
		log.Error("Failed to open %s store: %v", cfg.StoreBackend, err)
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		store:       store,
		redisClient: redisClient,
		assistant:   newAssistant(cfg, log),
	}, nil
}

// newAssistant returns a stub assistant when no API key is configured.
func newAssistant(cfg *config.Config, log *logger.Logger) *ai.Assistant {
	client, err := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	if err != nil {
		log.Warn("Gemini disabled, serving fallback topics and highlights: %v", err)
		return ai.NewAssistant(nil, log)
	}
	breaker := ai.NewBreakerGenerator(client, ai.BreakerSettings{Name: "gemini"}, log)
	return ai.NewAssistant(breaker, log)
}

func (a *App) Run() error {
	// Initialize repositories
	feedRepo := persistent.NewFeedRepository(a.store)

	// Initialize use cases
	highlights := cache.NewTextCache(a.redisClient, "highlights", highlightTTL)
	feedUseCase := usecase.NewFeedUseCase(feedRepo, a.assistant, highlights, a.log)

	// Initialize HTTP handlers
	feedHandler := feedHTTP.NewFeedHandler(feedUseCase)

	r := gin.Default()
	r.Use(middleware.MetricsMiddleware("feed"))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.GET("/feed", feedHandler.HomeFeed)

		// Everything below may call the model.
		generative := api.Group("")
		generative.Use(middleware.RateLimitMiddleware(a.redisClient, 60, time.Minute))
		generative.POST("/topics", feedHandler.SuggestTopics)
		generative.POST("/highlights", feedHandler.Highlights)
		generative.GET("/feed/search", feedHandler.Search)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Feed service starting on port %s (model available: %t)", a.cfg.ServerPort, a.assistant.Available())
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down feed service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if err := a.store.Close(); err != nil {
		a.log.Error("Error closing store: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	a.log.Info("Feed service exited")
	return nil
}
