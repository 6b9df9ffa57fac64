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
	"creatitube/pkg/session"
	authHTTP "creatitube/services/auth/internal/controller/http"
	"creatitube/services/auth/internal/repo/persistent"
	"creatitube/services/auth/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "creatitube/services/auth/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	store       kv.Store
	redisClient *redis.Client
	sessions    *session.Store
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New().With("service", "auth")

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		// Redis only backs rate limiting unless it is also the store
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
		sessions:    session.NewStore(store),
		jwtService:  jwt.NewService(cfg.JWTSecret).WithTTL(cfg.JWTTTL),
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.store)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, a.sessions, a.jwtService, a.log)

	// Initialize HTTP handlers
	authHandler := authHTTP.NewAuthHandler(authUseCase)

	r := gin.Default()
	r.Use(middleware.MetricsMiddleware("auth"))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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
		public := api.Group("")
		public.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.AuthRateLimit, a.cfg.AuthRateWindow))
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService, a.sessions))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/me", authHandler.Me)
			protected.GET("/preferences/theme", authHandler.GetTheme)
			protected.PUT("/preferences/theme", authHandler.SetTheme)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Auth service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down auth service...")
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

	a.log.Info("Auth service exited")
	return nil
}
