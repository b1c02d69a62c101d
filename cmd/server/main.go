package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/healthnet/scheduling/internal/config"
	"github.com/healthnet/scheduling/internal/domain/appointment"
	v1 "github.com/healthnet/scheduling/internal/handler/v1"
	"github.com/healthnet/scheduling/internal/repository"
	"github.com/healthnet/scheduling/internal/service"
	"github.com/healthnet/scheduling/pkg/auth"
	"github.com/healthnet/scheduling/pkg/database"
	"github.com/healthnet/scheduling/pkg/logger"
	"github.com/healthnet/scheduling/pkg/metrics"
	"github.com/healthnet/scheduling/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	m := metrics.NewCollector("healthnet")

	apptRepo := repository.NewAppointmentRepository(db)
	personRepo := repository.NewPersonRepository(db)
	hospitalRepo := repository.NewHospitalRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditSvc := service.NewAuditService(auditRepo, m, log)
	defer auditSvc.Shutdown()

	jwtManager := auth.NewJWTManager(cfg.JWT)
	authSvc := service.NewAuthService(userRepo, jwtManager, log)
	actorSvc := service.NewActorService(personRepo, cfg.Scheduling.NurseLookahead)

	rules := appointment.Rules{
		OpenHour:         cfg.Scheduling.OpenHour,
		CloseHour:        cfg.Scheduling.CloseHour,
		AllowedDurations: cfg.Scheduling.AllowedDurations,
	}
	scheduler := service.NewSchedulingService(apptRepo, personRepo, hospitalRepo, auditSvc, m, rules, log)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	v1.Register(router, m, jwtManager, actorSvc, authSvc, scheduler)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}
