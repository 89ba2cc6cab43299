package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"minar/internal/actor"
	actorhandler "minar/internal/actor/handler"
	"minar/internal/adminlink"
	adminlinkhandler "minar/internal/adminlink/handler"
	"minar/internal/badge"
	badgehandler "minar/internal/badge/handler"
	badgemetrics "minar/internal/badge/metrics"
	"minar/internal/confidence"
	confidencehandler "minar/internal/confidence/handler"
	confmetrics "minar/internal/confidence/metrics"
	"minar/internal/favourite"
	favouritehandler "minar/internal/favourite/handler"
	"minar/internal/jwttoken"
	"minar/internal/masjid"
	masjidhandler "minar/internal/masjid/handler"
	"minar/internal/platform/config"
	"minar/internal/platform/httpserver"
	"minar/internal/platform/logger"
	"minar/internal/platform/metrics"
	"minar/internal/platform/middleware"
	"minar/internal/platform/postgres"
	redisplatform "minar/internal/platform/redis"
	"minar/internal/prayertimes"
	prayertimeshandler "minar/internal/prayertimes/handler"
	"minar/internal/session"
	signaldomain "minar/internal/signal"
	signalhandler "minar/internal/signal/handler"
	"minar/internal/verification"
	verificationhandler "minar/internal/verification/handler"
	"minar/pkg/platform/audit"
	"minar/pkg/platform/middleware/metadata"
)

const auditInboxSize = 256

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure -----------------------------------------------------

	var (
		actorStore        actor.Store
		masjidStore       masjid.Store
		signalStore       signaldomain.Store
		confidenceStore   confidence.Store
		prayerStore       prayertimes.Store
		adminlinkStore    adminlink.Store
		badgeStore        badge.Store
		verificationStore verification.Store
		favouriteStore    favourite.Store
		auditSink         audit.Sink
		confidenceTx      confidence.Tx
	)

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		actorStore = actor.NewPostgresStore(db)
		masjidStore = masjid.NewPostgresStore(db)
		signalStore = signaldomain.NewPostgresStore(db)
		confidenceStore = confidence.NewPostgresStore(db)
		prayerStore = prayertimes.NewPostgresStore(db)
		adminlinkStore = adminlink.NewPostgresStore(db)
		badgeStore = badge.NewPostgresStore(db)
		verificationStore = verification.NewPostgresStore(db)
		favouriteStore = favourite.NewPostgresStore(db)
		auditSink = audit.NewPostgresStore(db)
		confidenceTx = confidence.NewPostgresTx(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		actorStore = actor.NewInMemoryStore()
		masjidStore = masjid.NewInMemoryStore()
		signalStore = signaldomain.NewInMemoryStore()
		confidenceStore = confidence.NewInMemoryStore()
		prayerStore = prayertimes.NewInMemoryStore()
		adminlinkStore = adminlink.NewInMemoryStore()
		badgeStore = badge.NewInMemoryStore()
		verificationStore = verification.NewInMemoryStore()
		favouriteStore = favourite.NewInMemoryStore()
		auditSink = audit.NewInMemoryStore()
	}

	redisClient, err := redisplatform.New(cfg.Redis)
	if err != nil {
		return err
	}
	var (
		lastSeen session.LastSeenStore
		cache    *prayertimes.Cache
	)
	if redisClient != nil {
		defer redisClient.Close()
		lastSeen = session.NewRedisLastSeenStore(redisClient.Client)
		cache = prayertimes.NewCache(redisClient.Client, config.PrayerTimeCacheTTL)
	} else {
		log.Warn("REDIS_URL not set, using in-memory last-seen store and no schedule cache")
		lastSeen = session.NewInMemoryLastSeenStore()
	}

	// --- Audit pipeline -----------------------------------------------------

	inbox := make(chan audit.Event, auditInboxSize)
	trail := audit.NewTrail(inbox, log)

	sinks := []audit.Sink{auditSink}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}

	worker := audit.NewWorker(inbox, log, sinks...)
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	// --- Services -----------------------------------------------------------

	httpMetrics := metrics.New()
	tokens := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	actorService := actor.NewService(actorStore, tokens, cfg.TokenTTL, trail, log)
	adminlinkService := adminlink.NewService(adminlinkStore, trail, log)
	confidenceService := confidence.NewService(
		confidenceStore, signalStore, adminlinkStore, lastSeen, confidenceTx,
		confmetrics.New(), trail, log)
	signalService := signaldomain.NewService(
		signalStore, confidenceProcessor{service: confidenceService},
		signaldomain.NewMetrics(), trail, log)
	masjidService := masjid.NewService(masjidStore, httpMetrics, trail, log,
		signalStore, confidenceStore, prayerStore, adminlinkStore, badgeStore, favouriteStore)
	prayerService := prayertimes.NewService(prayerStore, cache, signalService, log)
	badgeService := badge.NewService(badgeStore, masjidService, confidenceService,
		badgemetrics.New(), trail, log)
	verificationService := verification.NewService(
		verificationStore, adminlinkService, confidenceService, trail, log)
	favouriteService := favourite.NewService(favouriteStore, masjidService)

	// --- HTTP ---------------------------------------------------------------

	actorHandler := actorhandler.New(actorService, log)
	masjidHandler := masjidhandler.New(masjidService, log)
	signalHandler := signalhandler.New(signalService, log)
	confidenceHandler := confidencehandler.New(confidenceService, log)
	prayerHandler := prayertimeshandler.New(prayerService, log)
	adminlinkHandler := adminlinkhandler.New(adminlinkService, log)
	badgeHandler := badgehandler.New(badgeService, log)
	verificationHandler := verificationhandler.New(verificationService, log)
	favouriteHandler := favouritehandler.New(favouriteService, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(metadata.ClientMetadata)
	r.Use(httpMetrics.Instrument)

	r.Group(func(r chi.Router) {
		actorHandler.RegisterPublic(r)
		masjidHandler.RegisterPublic(r)
		signalHandler.RegisterPublic(r)
		confidenceHandler.RegisterPublic(r)
		prayerHandler.RegisterPublic(r)
		badgeHandler.RegisterPublic(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens, lastSeen, log))
		actorHandler.RegisterAuthenticated(r)
		masjidHandler.RegisterAuthenticated(r)
		signalHandler.RegisterAuthenticated(r)
		prayerHandler.RegisterAuthenticated(r)
		verificationHandler.RegisterAuthenticated(r)
		favouriteHandler.RegisterAuthenticated(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens, lastSeen, log))
		r.Use(middleware.RequireRole(log, string(actor.RoleStaff)))
		masjidHandler.RegisterStaff(r)
		adminlinkHandler.RegisterStaff(r)
		badgeHandler.RegisterStaff(r)
		verificationHandler.RegisterStaff(r)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := httpserver.New(cfg.Addr, r)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting minar API", "addr", cfg.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
