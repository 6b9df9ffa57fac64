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
	notificationHTTP "creatitube/services/notification/internal/controller/http"
	"creatitube/services/notification/internal/repo/persistent"
	"creatitube/services/notification/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "creatitube/services/notification/docs" // Swagger docs
)

// handlerTimeout bounds the processing of one queued event.
const handlerTimeout = 10 * time.Second

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
	log := logger.New().With("service", "notification")

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
		log.Error("Failed to connect to RabbitMQ: %v", err)
		store.Close()
		return nil, err
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
	notificationRepo := persistent.NewNotificationRepository(a.store)

	// Initialize use cases
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, a.log)

	// Initialize HTTP handlers
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, a.log)

	a.log.Info("Starting notification queue processor...")
	err := a.queueClient.ConsumeOrderEvents(func(event queue.OrderPlacedEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()
		return notificationUseCase.HandleOrderPlaced(ctx, event)
	})
	if err != nil {
		a.log.Error("Error starting notification queue consumer: %v", err)
		return err
	}

	r := gin.Default()
	r.Use(middleware.MetricsMiddleware("notification"))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		pending, err := a.queueClient.GetQueueLength()
		if err != nil {
			c.JSON(503, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ok", "pending": pending})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(a.jwtService, a.sessions))
	{
		protected.GET("/notifications", notificationHandler.GetNotifications)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Notification service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down notification service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	// Closing the channel ends the consumer loop.
	if err := a.queueClient.Close(); err != nil {
		a.log.Error("Error closing RabbitMQ: %v", err)
	}

	if err := a.store.Close(); err != nil {
		a.log.Error("Error closing store: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	a.log.Info("Notification service exited")
	return nil
}
