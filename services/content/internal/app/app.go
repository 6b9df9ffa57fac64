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
	"creatitube/pkg/models"
	"creatitube/pkg/s3"
	"creatitube/pkg/session"
	contentHTTP "creatitube/services/content/internal/controller/http"
	"creatitube/services/content/internal/repo/persistent"
	"creatitube/services/content/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "creatitube/services/content/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	store       kv.Store
	redisClient *redis.Client
	storage     usecase.MediaStorage
	sessions    *session.Store
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New().With("service", "content")

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

	app := &App{
		cfg:         cfg,
		log:         log,
		store:       store,
		redisClient: redisClient,
		sessions:    session.NewStore(store),
		jwtService:  jwt.NewService(cfg.JWTSecret),
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Warn("Object storage disabled, media uploads will fail: %v", err)
	} else {
		app.storage = s3Client
	}

	return app, nil
}

func (a *App) Run() error {
	// Initialize repositories
	contentRepo := persistent.NewContentRepository(a.store)

	// Initialize use cases
	contentUseCase := usecase.NewContentUseCase(contentRepo, a.storage, a.log)

	// Initialize HTTP handlers
	contentHandler := contentHTTP.NewContentHandler(contentUseCase)

	r := gin.Default()
	r.Use(middleware.MetricsMiddleware("content"))
	r.MaxMultipartMemory = 32 << 20

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
		api.GET("/videos", contentHandler.ListVideos)
		api.GET("/images", contentHandler.ListImages)
		api.GET("/shorts", contentHandler.ListShorts)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService, a.sessions))
		{
			protected.GET("/creations", contentHandler.ListCreations)
			protected.POST("/media", contentHandler.UploadMedia)

			collections := map[string]models.ContentKind{
				"videos": models.KindVideo,
				"images": models.KindImage,
			}
			for path, kind := range collections {
				protected.POST("/"+path, contentHandler.Create(kind))
				protected.POST("/"+path+"/:id/comments", contentHandler.AddComment(kind))
				protected.POST("/"+path+"/:id/reactions", contentHandler.React(kind))
			}
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Content service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down content service...")
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

	a.log.Info("Content service exited")
	return nil
}
