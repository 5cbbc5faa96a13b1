package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/eduops/scheduling-api/api/swagger"
	"github.com/eduops/scheduling-api/internal/handler"
	"github.com/eduops/scheduling-api/internal/middleware"
	"github.com/eduops/scheduling-api/internal/repository"
	"github.com/eduops/scheduling-api/internal/service"
	"github.com/eduops/scheduling-api/pkg/cache"
	"github.com/eduops/scheduling-api/pkg/config"
	"github.com/eduops/scheduling-api/pkg/logger"
	corsmiddleware "github.com/eduops/scheduling-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eduops/scheduling-api/pkg/middleware/requestid"
)

// @title Scheduling API
// @version 0.1.0
// @description School scheduling and teacher assignment engine
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, calendar cache disabled", "error", err)
		redisClient = nil
	}

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}

	validate := validator.New()
	directory := repository.NewDirectory()

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Calendar.CacheTTL, logr)
	rosterSvc := service.NewRosterService(directory, cacheSvc, validate, logr, cfg.Scheduler.ExpansionCount)
	bidSvc := service.NewBidService(directory, cacheSvc, metricsSvc, validate, logr)
	assignmentSvc := service.NewAssignmentService(directory, cacheSvc, metricsSvc, logr)
	transferSvc := service.NewTransferService(directory, cacheSvc, metricsSvc, validate, logr)
	calendarSvc := service.NewCalendarService(directory, cacheSvc, cfg.Calendar.CacheTTL, logr)
	exportSvc := service.NewExportService(calendarSvc, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, handler.Handlers{
		Roster:      handler.NewRosterHandler(rosterSvc),
		Bids:        handler.NewBidHandler(bidSvc),
		Assignments: handler.NewAssignmentHandler(assignmentSvc, !cfg.Scheduler.ReassignAllDefault),
		Transfers:   handler.NewTransferHandler(transferSvc),
		Calendar:    handler.NewCalendarHandler(calendarSvc, exportSvc),
		Metrics:     handler.NewMetricsHandler(metricsSvc),
	}, handler.RouterOptions{
		APIPrefix:     cfg.APIPrefix,
		EnableExports: cfg.Exports.Enabled,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
