package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	"github.com/BruksfildServices01/service-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/service-scheduler/internal/db"
	"github.com/BruksfildServices01/service-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/service-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/service-scheduler/internal/logger"
	"github.com/BruksfildServices01/service-scheduler/internal/middleware"
	"github.com/BruksfildServices01/service-scheduler/internal/payment"
	"github.com/BruksfildServices01/service-scheduler/internal/routes"
	"github.com/BruksfildServices01/service-scheduler/internal/telemetry"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.LogLevel, os.Stdout)
	if cfg.LogFormat == "console" {
		log = logger.Console(cfg.LogLevel)
	}

	if !timezone.IsValid(cfg.DefaultTimezone) {
		log.Fatal().Str("timezone", cfg.DefaultTimezone).Msg("invalid DEFAULT_TIMEZONE")
	}
	timezone.SetDefault(cfg.DefaultTimezone)

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}

	metrics := telemetry.New("scheduler")
	dispatcher := audit.NewDispatcher(audit.New(db), log)

	deps := routes.Dependencies{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Metrics: metrics,
		Audit:   dispatcher,
	}

	// ====== optional integrations ======
	if cfg.RedisEnabled() {
		client := lock.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer client.Close()
		deps.Locker = lock.NewRedisLocker(client, cfg.BookingLockTTL, log)
		log.Info().Str("addr", cfg.RedisAddr).Msg("booking lock: redis")
	}

	if cfg.ExportEnabled() {
		deps.Store = storage.NewS3Store(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		log.Info().Str("bucket", cfg.S3Bucket).Msg("dashboard export: s3")
	}

	if cfg.PaymentsEnabled() {
		gw, err := payment.NewMercadoPago(cfg.MPAccessToken, cfg.MPNotificationURL)
		if err != nil {
			log.Fatal().Err(err).Msg("mercadopago setup failed")
		}
		deps.Payments = gw
	}

	if log.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log, metrics),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := dispatcher.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("audit queue not drained")
	}

	log.Info().Msg("server stopped")
}
