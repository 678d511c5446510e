package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cs-study-hub/notes-api/api/swagger"
	"github.com/cs-study-hub/notes-api/internal/handler"
	"github.com/cs-study-hub/notes-api/internal/middleware"
	"github.com/cs-study-hub/notes-api/internal/repository"
	"github.com/cs-study-hub/notes-api/internal/service"
	"github.com/cs-study-hub/notes-api/pkg/cache"
	"github.com/cs-study-hub/notes-api/pkg/config"
	"github.com/cs-study-hub/notes-api/pkg/database"
	"github.com/cs-study-hub/notes-api/pkg/jobs"
	"github.com/cs-study-hub/notes-api/pkg/logger"
	corsmiddleware "github.com/cs-study-hub/notes-api/pkg/middleware/cors"
	reqidmiddleware "github.com/cs-study-hub/notes-api/pkg/middleware/requestid"
	"github.com/cs-study-hub/notes-api/pkg/storage"
)

// @title CS Study Hub API
// @version 1.0.0
// @description Student note-sharing backend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	store, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare upload directory", "error", err)
	}
	logr.Sugar().Infow("upload storage ready", "dir", store.Dir())

	var cacheRepo *repository.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, notes cache disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr)

	noteSvcCfg := service.NoteServiceConfig{
		MaxFileSize: cfg.Uploads.MaxFileSize,
		CacheTTL:    cfg.Uploads.ListCacheTTL,
	}
	var noteSvc *service.NoteService
	if cacheRepo != nil {
		noteSvc = service.NewNoteService(noteRepo, store, cacheRepo, metricsSvc, validate, logr, noteSvcCfg)
	} else {
		noteSvc = service.NewNoteService(noteRepo, store, nil, metricsSvc, validate, logr, noteSvcCfg)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	noteHandler := handler.NewNoteHandler(noteSvc)
	fileHandler := handler.NewFileHandler(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Sweep.Enabled {
		sweeper := service.NewReconcilerService(noteRepo, store, logr, cfg.Sweep.GracePeriod)
		queue := jobs.NewQueue("orphan-sweep", func(ctx context.Context, job jobs.Job) error {
			_, err := sweeper.Sweep(ctx)
			return err
		}, jobs.QueueConfig{Workers: 1, MaxRetries: 3, RetryDelay: time.Minute, Logger: logr})
		queue.Start(ctx)
		defer queue.Stop()

		go func() {
			ticker := time.NewTicker(cfg.Sweep.Interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: "sweep"}); err != nil {
						logr.Sugar().Warnw("failed to enqueue sweep", "error", err)
					}
				}
			}
		}()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)
	r.POST("/upload-note", noteHandler.Upload)
	r.GET("/notes", noteHandler.List)
	r.GET("/search", noteHandler.Search)
	r.DELETE("/delete-note/:note_id", noteHandler.Delete)

	// Uploaded files are public; the mobile client links to them directly.
	r.GET("/files/:filename", fileHandler.Serve)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
