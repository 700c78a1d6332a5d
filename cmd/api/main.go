// Package main is the entry point for the Trip Journal API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tripjournal/internal/auth"
	"github.com/pkordes/tripjournal/internal/config"
	"github.com/pkordes/tripjournal/internal/handler"
	"github.com/pkordes/tripjournal/internal/logger"
	"github.com/pkordes/tripjournal/internal/realtime"
	"github.com/pkordes/tripjournal/internal/repo"
	"github.com/pkordes/tripjournal/internal/service"
	"github.com/pkordes/tripjournal/internal/storage"
	"github.com/pkordes/tripjournal/migrations"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet.
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("api server stopped", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	// goose drives database/sql; it gets its own short-lived connection.
	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	applied, err := migrations.Up(ctx, sqlDB)
	_ = sqlDB.Close()
	if err != nil {
		return err
	}
	log.Info("database ready", zap.Int64s("migrations_applied", applied))

	// --- Realtime ---------------------------------------------------------
	broker, closeBroker, err := newBroker(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeBroker()

	// --- Services ---------------------------------------------------------
	trips := repo.NewTripRepo(pool)
	slugs := repo.NewSlugRepo(pool)

	var presigner service.Presigner
	if cfg.S3Bucket != "" {
		s3, err := storage.NewS3(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}, log)
		if err != nil {
			return err
		}
		presigner = s3
	} else {
		log.Info("S3_BUCKET not set; media uploads disabled")
	}

	tripSvc := service.NewTripService(trips, slugs, broker, loc, log)
	srv := handler.NewServer(tripSvc, service.NewExportService(trips), service.NewMediaService(trips, presigner), log)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	router := handler.NewRouter(srv, handler.Options{
		Verifier:     verifier,
		CORSOrigins:  cfg.Origins(),
		Logger:       log,
		CheckSlugRPS: cfg.CheckSlugRPS,
		Live:         realtime.NewFeed(tripSvc, broker, verifier, cfg.Origins(), log),
		MaxBodyBytes: handler.DefaultMaxBodyBytes,
	})

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout is left unset: /trips/live holds its connection open and
	// manages its own write deadlines.
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newBroker connects to Redis when REDIS_URL is set. Without it, live
// updates only cover changes made through this process.
func newBroker(ctx context.Context, cfg config.Config, log *zap.Logger) (realtime.Broker, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set; using in-process trip events")
		return realtime.NewLocalBroker(), func() {}, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	return realtime.NewRedisBroker(client, log), func() { _ = client.Close() }, nil
}
