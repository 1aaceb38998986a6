package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medipresence/presence-api/internal/config"
	"github.com/medipresence/presence-api/internal/email"
	"github.com/medipresence/presence-api/internal/handler"
	alertHandler "github.com/medipresence/presence-api/internal/handler/alert"
	auditHandler "github.com/medipresence/presence-api/internal/handler/audit"
	authHandler "github.com/medipresence/presence-api/internal/handler/auth"
	careplanHandler "github.com/medipresence/presence-api/internal/handler/careplan"
	medicationHandler "github.com/medipresence/presence-api/internal/handler/medication"
	patientHandler "github.com/medipresence/presence-api/internal/handler/patient"
	presenceHandler "github.com/medipresence/presence-api/internal/handler/presence"
	taskHandler "github.com/medipresence/presence-api/internal/handler/task"
	wsHandler "github.com/medipresence/presence-api/internal/handler/ws"
	"github.com/medipresence/presence-api/internal/middleware"
	"github.com/medipresence/presence-api/internal/monitor"
	"github.com/medipresence/presence-api/internal/repository/postgres"
	"github.com/medipresence/presence-api/internal/router"
	alertService "github.com/medipresence/presence-api/internal/service/alert"
	auditService "github.com/medipresence/presence-api/internal/service/audit"
	authService "github.com/medipresence/presence-api/internal/service/auth"
	careplanService "github.com/medipresence/presence-api/internal/service/careplan"
	medicationService "github.com/medipresence/presence-api/internal/service/medication"
	patientService "github.com/medipresence/presence-api/internal/service/patient"
	presenceService "github.com/medipresence/presence-api/internal/service/presence"
	taskService "github.com/medipresence/presence-api/internal/service/task"
	vitalService "github.com/medipresence/presence-api/internal/service/vital"
	"github.com/medipresence/presence-api/internal/ws"
	"github.com/medipresence/presence-api/pkg/auth"
	"github.com/medipresence/presence-api/pkg/logger"
	"github.com/medipresence/presence-api/pkg/messaging"
	redisbroker "github.com/medipresence/presence-api/pkg/messaging/redis"
	"github.com/medipresence/presence-api/pkg/metrics"
	"github.com/medipresence/presence-api/pkg/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	if cfg.JWT.UsingPlaceholderSecret() {
		log.Warn().Msg("JWT_SECRET not set, using built-in placeholder")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.EnsureSchema(db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	broker, err := redisbroker.NewBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	publisher := messaging.NewPublisher(broker, cfg.Redis.EventChannel)
	m := metrics.New("medipresence")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	presenceRepo := postgres.NewPresenceRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	vitalRepo := postgres.NewVitalRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)
	careplanRepo := postgres.NewCarePlanRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	shiftRepo := postgres.NewShiftRepository(db)

	// Services
	auditor := auditService.NewService(auditRepo)
	hasher := security.NewBcryptHasher(0)
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authService.NewService(userRepo, presenceRepo, shiftRepo, hasher, jwtSvc, auditor)
	presenceSvc := presenceService.NewService(presenceRepo, shiftRepo, publisher, auditor)
	patientSvc := patientService.NewService(patientRepo, userRepo, auditor)
	vitalSvc := vitalService.NewService(vitalRepo, patientRepo, auditor)
	medicationSvc := medicationService.NewService(medicationRepo, patientRepo, auditor)
	careplanSvc := careplanService.NewService(careplanRepo, patientRepo, auditor)
	taskSvc := taskService.NewService(taskRepo, userRepo, publisher, auditor)
	alertSvc := alertService.NewService(alertRepo, auditor)

	var notifier email.Notifier = email.NopNotifier{}
	if cfg.Email.Enabled {
		notifier = email.NewService(cfg.Email)
	}

	// Websocket fan-out
	hub := ws.NewHub(m)
	relay := ws.NewRelay(broker, cfg.Redis.EventChannel, hub)

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(runCtx)
	go func() {
		if err := relay.Run(runCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event relay stopped")
		}
	}()

	// Background monitors
	shiftMonitor := monitor.NewShiftMonitor(presenceRepo, alertRepo, publisher, m)
	idleMonitor := monitor.NewIdleMonitor(presenceRepo, publisher, cfg.Monitors.IdleAfter)
	doctorMonitor := monitor.NewDoctorMonitor(presenceRepo, userRepo, alertRepo, publisher, notifier, m, cfg.Monitors.OfflineAfter)

	go monitor.NewRunner(shiftMonitor, cfg.Monitors.ShiftInterval, m).Start(runCtx)
	go monitor.NewRunner(idleMonitor, cfg.Monitors.IdleInterval, m).Start(runCtx)
	go monitor.NewRunner(doctorMonitor, cfg.Monitors.DoctorInterval, m).Start(runCtx)

	// HTTP surface
	authMw := middleware.NewAuthMiddleware(jwtSvc, authSvc)
	r := router.New(authMw, router.Handlers{
		Base:       handler.NewHandler(),
		Auth:       authHandler.NewHandler(authSvc),
		Presence:   presenceHandler.NewHandler(presenceSvc),
		Patient:    patientHandler.NewHandler(patientSvc, vitalSvc),
		Medication: medicationHandler.NewHandler(medicationSvc),
		CarePlan:   careplanHandler.NewHandler(careplanSvc),
		Task:       taskHandler.NewHandler(taskSvc),
		Alert:      alertHandler.NewHandler(alertSvc),
		Audit:      auditHandler.NewHandler(auditor),
		WS:         wsHandler.NewHandler(hub),
	}, m, router.Config{
		RateLimit:  100,
		RateBurst:  200,
		CORSConfig: middleware.DefaultCORSConfig(),
	})
	r.Setup()

	// No read/write timeouts on the server itself: the websocket endpoint
	// holds connections open indefinitely.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r.Engine(),
		ReadHeaderTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
