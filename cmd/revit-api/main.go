// Command revit-api serves the Revit marketplace HTTP API.
//
// @title                       Revit Marketplace API
// @version                     1.0
// @description                 Job posting, application and review API for the Revit marketplace.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	_ "github.com/revit/marketplace/docs"
	"github.com/revit/marketplace/internal/api"
	"github.com/revit/marketplace/internal/api/handler"
	"github.com/revit/marketplace/internal/core/ports"
	"github.com/revit/marketplace/internal/core/service"
	"github.com/revit/marketplace/internal/infrastructure/config"
	"github.com/revit/marketplace/internal/infrastructure/db/memory"
	mongodb "github.com/revit/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/revit/marketplace/internal/infrastructure/db/redis"
	"github.com/revit/marketplace/internal/infrastructure/queue"
	"github.com/revit/marketplace/pkg/logger"
)

const (
	serviceName     = "revit-api"
	shutdownTimeout = 15 * time.Second
)

// stores groups the persistence ports chosen by STORE_DRIVER.
type stores struct {
	users        ports.UserRepository
	jobs         ports.JobRepository
	applications ports.ApplicationRepository
	activity     ports.ActivityRepository
	tx           ports.Transactor
	guard        ports.ApplyGuard
	checks       map[string]handler.HealthChecker
	closers      []func(context.Context) error
}

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg); err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("revit-api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close(log)

	activitySvc := service.NewActivityService(st.jobs, st.activity, logger.Component(log, "activity"))
	dispatcher := queue.NewDispatcher(cfg.DispatcherWorkers, activitySvc, logger.Component(log, "dispatcher"))
	dispatcher.Start(ctx)

	router := api.NewRouter(api.Dependencies{
		Auth:    service.NewAuthService(st.users, cfg.JWTSecret, cfg.TokenTTL),
		Profile: service.NewProfileService(st.users, logger.Component(log, "profile")),
		Jobs:    service.NewJobService(st.jobs, st.users, dispatcher, logger.Component(log, "jobs")),
		Applications: service.NewApplicationService(
			st.jobs, st.applications, st.users, st.tx, st.guard, dispatcher, logger.Component(log, "applications"),
		),
		Activity:      activitySvc,
		JWTSecret:     cfg.JWTSecret,
		HealthChecks:  st.checks,
		Logger:        logger.Component(log, "http"),
		EnableSwagger: !cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		// In-flight requests are done; drain the activity queue.
		dispatcher.Close()
		return err
	})

	return g.Wait()
}

// close releases store clients in reverse order of opening. Failures are
// logged and do not stop the remaining closers.
func (st *stores) close(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(st.closers) - 1; i >= 0; i-- {
		if err := st.closers[i](ctx); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}
	st.closers = nil
}

// openStores connects the backends selected by cfg. On failure every client
// opened so far is closed before the error is returned.
func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (_ *stores, err error) {
	st := &stores{checks: map[string]handler.HealthChecker{}}
	defer func() {
		if err != nil {
			st.close(log)
		}
	}()

	switch cfg.StoreDriver {
	case config.StoreMemory:
		mem := memory.NewStore()
		st.users, st.jobs, st.applications, st.activity = mem.Users(), mem.Jobs(), mem.Applications(), mem.Activity()
		st.tx = mem
		log.Warn().Msg("using in-memory store; data is lost on restart")

	default:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, client.Disconnect)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return nil, err
		}
		timeout := cfg.Mongo.Timeout
		st.users = mongodb.NewUserRepository(db, timeout)
		st.jobs = mongodb.NewJobRepository(db, timeout)
		st.applications = mongodb.NewApplicationRepository(db, timeout)
		st.activity = mongodb.NewActivityRepository(db, timeout)
		st.tx = mongodb.NewTransactor(client)
		st.checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	}

	if cfg.Redis.Addr == "" {
		st.guard = memory.NewLocalGuard()
		log.Info().Msg("REDIS_ADDR not set; apply guard is process-local")
		return st, nil
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	st.closers = append(st.closers, func(context.Context) error { return rdb.Close() })
	st.guard = redisdb.NewApplyGuard(rdb, cfg.Redis.GuardTTL, logger.Component(log, "apply_guard"))
	st.checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

	return st, nil
}
