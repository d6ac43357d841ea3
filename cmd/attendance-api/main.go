package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/charusat-labs/attendance-api/internal/handler"
	"github.com/charusat-labs/attendance-api/internal/middleware"
	"github.com/charusat-labs/attendance-api/internal/repository"
	"github.com/charusat-labs/attendance-api/internal/service"
	"github.com/charusat-labs/attendance-api/pkg/cache"
	"github.com/charusat-labs/attendance-api/pkg/config"
	"github.com/charusat-labs/attendance-api/pkg/database"
	"github.com/charusat-labs/attendance-api/pkg/logger"
	corsmiddleware "github.com/charusat-labs/attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/charusat-labs/attendance-api/pkg/middleware/requestid"
	"github.com/charusat-labs/attendance-api/pkg/qr"
)

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

	if err := run(cfg, logr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx := context.Background()

	mongoDB, err := database.NewMongo(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoDB.Close(disconnectCtx); err != nil {
			logr.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()

	var redisClient *redis.Client
	if cfg.RateLimit.RequestsPerMinute > 0 {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis not reachable, rate limiting disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	sessionRepo := repository.NewSessionRepository(mongoDB.Database)
	attendanceRepo := repository.NewAttendanceRepository(mongoDB.Database)
	if err := attendanceRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	metricsSvc := service.NewMetricsService()
	sessionSvc := service.NewSessionService(sessionRepo, qr.NewGenerator(), metricsSvc, logr)
	attendanceSvc := service.NewAttendanceService(sessionRepo, sessionRepo, attendanceRepo, cfg.Students.EmailDomain, metricsSvc, logr)
	exportSvc := service.NewExportService(attendanceRepo, metricsSvc, logr, nil, nil, nil)

	sessionHandler := handler.NewSessionHandler(sessionSvc)
	studentHandler := handler.NewStudentHandler(attendanceSvc, cfg.Uploads.MaxPhotoBytes)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc, exportSvc)
	healthHandler := handler.NewHealthHandler(
		mongoDB.Healthy,
		func(ctx context.Context) bool {
			return redisClient != nil && redisClient.Ping(ctx).Err() == nil
		},
	)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", healthHandler.Check)
	api.GET("/session/:session_id", sessionHandler.Get)

	teacher := api.Group("/teacher")
	teacher.POST("/create-session", sessionHandler.Create)
	teacher.POST("/get-attendance", attendanceHandler.List)
	teacher.POST("/download-attendance", attendanceHandler.Download)
	teacher.POST("/reset-attendance", attendanceHandler.Reset)

	student := api.Group("/student")
	student.Use(middleware.RateLimit(redisClient, cfg.RateLimit.RequestsPerMinute, logr))
	student.POST("/authenticate", studentHandler.Authenticate)
	student.POST("/submit-attendance", studentHandler.Submit)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logr.Info("server exited")
	return nil
}
