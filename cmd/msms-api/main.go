package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/AliciaPky/Astar/api/swagger"
	"github.com/AliciaPky/Astar/internal/handler"
	"github.com/AliciaPky/Astar/internal/middleware"
	"github.com/AliciaPky/Astar/internal/registry"
	"github.com/AliciaPky/Astar/internal/repository"
	"github.com/AliciaPky/Astar/internal/service"
	"github.com/AliciaPky/Astar/pkg/config"
	"github.com/AliciaPky/Astar/pkg/logger"
	corsmiddleware "github.com/AliciaPky/Astar/pkg/middleware/cors"
	reqidmiddleware "github.com/AliciaPky/Astar/pkg/middleware/requestid"
	"github.com/AliciaPky/Astar/pkg/storage"
)

// @title Music School Management API
// @version 1.0.0
// @description Registry of students, teachers, courses, lessons, payments and attendance.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	actions, err := repository.NewActionLog(cfg.Registry.ActionLogPath)
	if err != nil {
		logr.Fatal("failed to open action log", zap.Error(err))
	}
	files, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		logr.Fatal("failed to prepare exports directory", zap.Error(err))
	}
	backupPath, err := filepath.Abs(cfg.Registry.BackupPath)
	if err != nil {
		logr.Fatal("failed to resolve backup path", zap.Error(err))
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	reg := registry.New(
		repository.NewFileStore(cfg.Registry.DataPath),
		actions,
		files,
		registry.Config{
			BackupPath: backupPath,
			Bootstrap: registry.BootstrapPolicy{
				Enabled:  cfg.Registry.BootstrapAdminEnabled,
				Username: cfg.Registry.BootstrapAdminUsername,
				Password: cfg.Registry.BootstrapAdminPassword,
			},
			RequireEnrollmentForCheckIn: cfg.Registry.CheckInRequiresEnrollment,
		},
		logger.Component(logr, "registry"),
		metrics,
	)

	validate := validator.New()
	school := service.NewSchoolService(reg, validate, logger.Component(logr, "school"), metrics)
	auth := service.NewAuthService(school, validate, logger.Component(logr, "auth"), service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exports := service.NewExportService(school, files, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logger.Component(logr, "exports"))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metrics != nil {
		r.Use(middleware.Metrics(metrics))
	}

	dataDir := filepath.Dir(cfg.Registry.DataPath)
	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:        handler.NewAuthHandler(auth),
		Students:    handler.NewStudentHandler(school),
		Teachers:    handler.NewTeacherHandler(school),
		Courses:     handler.NewCourseHandler(school),
		Enrollments: handler.NewEnrollmentHandler(school),
		Instruments: handler.NewInstrumentHandler(school),
		Accounts:    handler.NewAccountHandler(school),
		Payments:    handler.NewPaymentHandler(school),
		Reports:     handler.NewReportHandler(exports, school),
		Metrics:     handler.NewMetricsHandler(metrics, func() error { return dirReady(dataDir) }),
	}, auth, middleware.Audit(logger.Component(logr, "audit")))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runExportCleanup(ctx, exports, cfg.Exports.CleanupInterval, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "data", cfg.Registry.DataPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func runExportCleanup(ctx context.Context, exports *service.ExportService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := exports.Cleanup(0); err != nil {
				logr.Warn("export cleanup failed", zap.Error(err))
			}
		}
	}
}

func dirReady(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
