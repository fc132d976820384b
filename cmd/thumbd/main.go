package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/thumbd/config"
	"github.com/bnema/thumbd/internal/adapter/events/memory"
	"github.com/bnema/thumbd/internal/adapter/events/redisbus"
	HTTPAdapter "github.com/bnema/thumbd/internal/adapter/http"
	"github.com/bnema/thumbd/internal/adapter/http/ratelimit"
	"github.com/bnema/thumbd/internal/adapter/objectstore/localfs"
	"github.com/bnema/thumbd/internal/adapter/objectstore/s3"
	"github.com/bnema/thumbd/internal/adapter/render"
	"github.com/bnema/thumbd/internal/adapter/storage/postgres"
	"github.com/bnema/thumbd/internal/adapter/storage/sqlite"
	"github.com/bnema/thumbd/internal/infrastructure/logger"
	"github.com/bnema/thumbd/internal/port"
	"github.com/bnema/thumbd/internal/service"
)

const (
	memoryBusBuffer = 1024
	postgresConns   = 10
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("thumbd stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int("port", cfg.Port).
		Str("db", cfg.Database.Driver).
		Str("storage", cfg.Storage.Backend).
		Str("transport", cfg.Events.Transport).
		Str("sizes", cfg.Pipeline.Sizes).
		Msg("starting thumbd")

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	jobs, db, closeDB, err := openJobStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	sources, derivatives, objects, err := openObjectStores(ctx, cfg)
	if err != nil {
		return err
	}

	renderer := render.NewEngine(cfg.Preferred, cfg.Fallback, render.WithPDFBox(cfg.Sizes.Largest()))
	eventBus := service.NewEventBus()

	transport, outbound, ingress, closeTransport, err := openTransport(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeTransport()
	publishers := service.Publishers{outbound, eventBus}

	pool := service.NewWorkerPool(cfg.Pipeline.WorkerPoolSize, cfg.Pipeline.QueueCapacity, logger.Component(log, "worker-pool"))
	generator := service.NewGenerator(jobs, sources, derivatives, renderer, publishers, pool, service.GeneratorConfig{
		Sizes:       cfg.Sizes,
		MaxAttempts: cfg.Pipeline.MaxAttempts,
		StaleAfter:  cfg.Pipeline.RetryStaleAfter,
	}, log)
	orch := service.NewOrchestrator(jobs, derivatives, renderer, publishers, generator, cfg.Sizes, cfg.Storage.SignedURLTTL, log)
	sweeper := service.NewSweeper(jobs, generator, publishers, service.SweeperConfig{
		Interval:    cfg.Pipeline.SweepInterval,
		StaleAfter:  cfg.Pipeline.RetryStaleAfter,
		MaxAttempts: cfg.Pipeline.MaxAttempts,
	}, log)

	service.NewSourceEvents(orch, log).Register(transport, cfg.Events.UploadedChannel, cfg.Events.DeletedChannel)

	opts := HTTPAdapter.Options{Objects: objects, SourceEvents: ingress, DB: db}
	if cfg.RateLimit.Requests > 0 {
		opts.Limiter = ratelimit.NewLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Block)
	}
	server := HTTPAdapter.NewServer(orch, eventBus, opts, log)

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Background loops stop with bgCtx; in-flight jobs are drained by the
	// pool afterwards.
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	transportDone := make(chan struct{})
	go func() {
		defer close(transportDone)
		if err := transport.Run(bgCtx); err != nil {
			log.Error().Err(err).Msg("event transport stopped")
		}
	}()

	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sweeper.Run(bgCtx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}

	bgCancel()
	<-transportDone
	<-sweeperDone

	graceCtx, graceCancel := context.WithTimeout(context.Background(), cfg.Pipeline.ShutdownGrace)
	defer graceCancel()
	if err := pool.Shutdown(graceCtx); err != nil {
		log.Warn().Err(err).Msg("in-flight jobs abandoned, the sweeper will retry them")
	}

	log.Info().Msg("shutdown complete")
	return runErr
}

func openJobStore(ctx context.Context, cfg *config.Config) (port.JobStore, HTTPAdapter.Pinger, func(), error) {
	switch cfg.Database.Driver {
	case "postgres":
		store, err := postgres.NewStore(ctx, cfg.Database.URL, postgresConns)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return postgres.NewJobStore(store), store, func() { _ = store.Close() }, nil
	default:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return sqlite.NewJobStore(store), store, func() { _ = store.Close() }, nil
	}
}

// openObjectStores returns the source and derivative stores, plus the
// handler serving signed URLs when objects live on local disk.
func openObjectStores(ctx context.Context, cfg *config.Config) (port.ObjectStorage, port.ObjectStorage, http.Handler, error) {
	sc := cfg.Storage
	if sc.Backend == "s3" {
		client, err := s3.NewClient(s3.Options{
			Endpoint:  sc.S3Endpoint,
			AccessKey: sc.S3AccessKey,
			SecretKey: sc.S3SecretKey,
			UseSSL:    sc.S3UseSSL,
			Region:    sc.S3Region,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		sources := s3.New(client, sc.SourceBucket)
		derivatives := s3.New(client, sc.DerivativeBucket)
		for _, b := range []*s3.Store{sources, derivatives} {
			if err := b.EnsureBucket(ctx, sc.S3Region); err != nil {
				return nil, nil, nil, err
			}
		}
		return sources, derivatives, nil, nil
	}

	signer := localfs.NewSigner(sc.SigningSecret)
	baseURL := strings.TrimSuffix(sc.PublicBaseURL, "/") + strings.TrimSuffix(HTTPAdapter.ObjectsPrefix, "/")
	sources, err := localfs.New(filepath.Join(cfg.DataDir, "sources"), baseURL, signer)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open source store: %w", err)
	}
	derivatives, err := localfs.New(filepath.Join(cfg.DataDir, "derivatives"), baseURL, signer)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open derivative store: %w", err)
	}
	return sources, derivatives, derivatives.Handler(HTTPAdapter.ObjectsPrefix), nil
}

// openTransport returns the inbound subscriber, the outbound publisher and,
// for the in-process transport, the HTTP ingress for source events.
func openTransport(ctx context.Context, cfg *config.Config, log zerolog.Logger) (port.EventSubscriber, port.EventPublisher, HTTPAdapter.SourceEventHandler, func(), error) {
	if cfg.Events.Transport == "redis" {
		rdb, err := redisbus.NewClient(ctx, cfg.Events.RedisURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		closeFn := func() { _ = rdb.Close() }
		return redisbus.NewConsumer(rdb, log), redisbus.NewPublisher(rdb, cfg.Events.OutboundChannel), nil, closeFn, nil
	}

	bus := memory.New(cfg.Events.OutboundChannel, memoryBusBuffer, log)
	return bus, bus, bus.Ingress(cfg.Events.UploadedChannel, cfg.Events.DeletedChannel), func() {}, nil
}
