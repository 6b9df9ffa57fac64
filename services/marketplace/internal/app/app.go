package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creatitube/pkg/cache"
	"creatitube/pkg/config"
	"creatitube/pkg/jwt"
	"creatitube/pkg/kv"
	"creatitube/pkg/logger"
	"creatitube/pkg/middleware"
	"creatitube/pkg/queue"
	"creatitube/pkg/session"
	marketplaceHTTP "creatitube/services/marketplace/internal/controller/http"
	"creatitube/services/marketplace/internal/repo/persistent"
	"creatitube/services/marketplace/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "creatitube/services/marketplace/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	store       kv.Store
	redisClient *redis.Client
	queueClient *queue.Client
	sessions    *session.Store
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New().With("service", "marketplace")

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

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, order notifications disabled: %v", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		store:       store,
		redisClient: redisClient,
		queueClient: queueClient,
		sessions:    session.NewStore(store),
		jwtService:  jwt.NewService(cfg.JWTSecret),
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	marketplaceRepo := persistent.NewMarketplaceRepository(a.store)

	// Initialize use cases
	var publisher usecase.OrderPublisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}
	marketplaceUseCase := usecase.NewMarketplaceUseCase(marketplaceRepo, publisher, a.log)

	// Initialize HTTP handlers
	marketplaceHandler := marketplaceHTTP.NewMarketplaceHandler(marketplaceUseCase)

	r := gin.Default()
	r.Use(middleware.MetricsMiddleware("marketplace"))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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
		api.GET("/products", marketplaceHandler.ListProducts)
		api.GET("/products/:id", marketplaceHandler.GetProduct)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService, a.sessions))
		{
			protected.POST("/products", marketplaceHandler.AddProduct)
			protected.PATCH("/products/:id/quantity", marketplaceHandler.AdjustQuantity)
			protected.GET("/orders", marketplaceHandler.ListOrders)
			protected.POST("/orders", marketplaceHandler.Purchase)

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			admin.GET("/dashboard", marketplaceHandler.Dashboard)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Marketplace service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down marketplace service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if err := a.store.Close(); err != nil {
		a.log.Error("Error closing store: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	a.log.Info("Marketplace service exited")
	return nil
}
