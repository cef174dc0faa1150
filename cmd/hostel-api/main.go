package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/handler"
	"github.com/campushq/hostel-api/internal/repository"
	"github.com/campushq/hostel-api/internal/router"
	"github.com/campushq/hostel-api/internal/service"
	"github.com/campushq/hostel-api/internal/store"
	"github.com/campushq/hostel-api/internal/store/jsonstore"
	"github.com/campushq/hostel-api/internal/store/pgstore"
	"github.com/campushq/hostel-api/pkg/cache"
	"github.com/campushq/hostel-api/pkg/config"
	"github.com/campushq/hostel-api/pkg/database"
	"github.com/campushq/hostel-api/pkg/logger"
	"github.com/campushq/hostel-api/pkg/storage"
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

	jsonStore, err := jsonstore.New(cfg.Store.DataDir, logr)
	if err != nil {
		logr.Fatal("failed to open json store", zap.Error(err))
	}

	// The json store always backs the auxiliary collections (payments,
	// maintenance, announcements); the core collections can migrate to
	// Postgres independently.
	var coreStore store.Store = jsonStore
	if cfg.Store.Driver == config.StoreDriverPostgres {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to postgres", zap.Error(err))
		}
		coreStore = pgstore.New(db, logr)
	}
	defer coreStore.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard caching disabled", zap.Error(err))
			redisClient = nil
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	uploads, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Fatal("failed to prepare uploads directory", zap.Error(err))
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	coreStore = store.Instrument(coreStore, metrics)

	authSvc := service.NewAuthService(coreStore, validate, logr, service.AuthConfig{
		Secret:          cfg.JWT.Secret,
		Expiration:      cfg.JWT.Expiration,
		Issuer:          cfg.JWT.Issuer,
		AllowedAdminIDs: cfg.Admission.AllowedAdminIDs,
	})
	allocationSvc := service.NewAllocationService(coreStore, logr)
	assignmentSvc := service.NewAssignmentService(coreStore, logr)
	resetSvc := service.NewResetService(coreStore, logr)
	roomSvc := service.NewRoomService(coreStore, jsonStore, logr)
	applicationSvc := service.NewApplicationService(coreStore, validate, logr)
	studentSvc := service.NewStudentService(coreStore, logr)
	userSvc := service.NewUserService(coreStore, logr)
	paymentSvc := service.NewPaymentService(jsonStore, validate, logr)
	maintenanceSvc := service.NewMaintenanceService(jsonStore, uploads, cfg.Uploads.PublicBaseURL, validate, logr)
	announcementSvc := service.NewAnnouncementService(jsonStore, validate, logr)
	dashboardSvc := service.NewDashboardService(coreStore, jsonStore, jsonStore, cacheRepo, cfg.Cache.StatsTTL, metrics, logr)
	reportSvc := service.NewReportService(coreStore, logr)

	engine := router.New(router.Deps{
		Config:      cfg,
		Logger:      logr,
		AuthService: authSvc,
		Metrics:     metrics,

		Auth:          handler.NewAuthHandler(authSvc),
		Allocation:    handler.NewAllocationHandler(allocationSvc, assignmentSvc, resetSvc, dashboardSvc, metrics),
		Rooms:         handler.NewRoomHandler(roomSvc),
		Applications:  handler.NewApplicationHandler(applicationSvc),
		Students:      handler.NewStudentHandler(studentSvc),
		Users:         handler.NewUserHandler(userSvc),
		Payments:      handler.NewPaymentHandler(paymentSvc),
		Maintenance:   handler.NewMaintenanceHandler(maintenanceSvc, cfg.Uploads.MaxFileSizeBytes),
		Announcements: handler.NewAnnouncementHandler(announcementSvc),
		Dashboard:     handler.NewDashboardHandler(dashboardSvc),
		Reports:       handler.NewReportHandler(reportSvc),

		UploadsDir: uploads.BaseDir(),
		Ready: func() error {
			return coreStore.View(context.Background(), func(*store.State) error { return nil })
		},
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
