package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"minar/internal/adminlink"
	"minar/internal/confidence"
	confmetrics "minar/internal/confidence/metrics"
	"minar/internal/platform/config"
	"minar/internal/platform/logger"
	"minar/internal/platform/postgres"
	redisplatform "minar/internal/platform/redis"
	"minar/internal/session"
	signaldomain "minar/internal/signal"
	"minar/pkg/platform/audit"
	"minar/pkg/requestcontext"
)

// The sweeper runs the two time-based confidence rules: overdue decay and
// admin-inactivity downgrade. With -every it stays resident; without it the
// sweep runs once and exits, which suits cron.
func main() {
	every := flag.Duration("every", 0, "run continuously at this interval (default: run once)")
	flag.Parse()

	cfg := config.FromEnv()
	log := logger.New(cfg.Env)

	if err := run(cfg, log, *every); err != nil {
		log.Error("sweeper exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger, every time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := redisplatform.New(cfg.Redis)
	if err != nil {
		return err
	}
	var lastSeen session.LastSeenStore
	if redisClient != nil {
		defer redisClient.Close()
		lastSeen = session.NewRedisLastSeenStore(redisClient.Client)
	} else {
		// Without session data every verified admin looks inactive, which
		// would force masjids down on the first sweep. Refuse instead.
		return errors.New("REDIS_URL is required: the inactivity sweep reads session last-seen data")
	}

	service := confidence.NewService(
		confidence.NewPostgresStore(db),
		signaldomain.NewPostgresStore(db),
		adminlink.NewPostgresStore(db),
		lastSeen,
		confidence.NewPostgresTx(db),
		confmetrics.New(),
		audit.NopTrail(),
		log,
	)

	if every <= 0 {
		return sweep(ctx, service, log)
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		if err := sweep(ctx, service, log); err != nil {
			log.Error("sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// sweep pins a single timestamp so both rules judge the same instant, then
// runs them concurrently.
func sweep(ctx context.Context, service *confidence.Service, log *slog.Logger) error {
	started := time.Now().UTC()
	ctx = requestcontext.WithTime(ctx, started)

	var decayed, downgraded int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := service.DecayAllOverdue(gctx)
		decayed = n
		return err
	})
	g.Go(func() error {
		n, err := service.DecayInactiveAdmins(gctx)
		downgraded = n
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("sweep complete",
		"decayed", decayed,
		"downgraded_inactive", downgraded,
		"duration", time.Since(started),
	)
	return nil
}
