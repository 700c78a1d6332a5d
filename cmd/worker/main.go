// Package main runs the background jobs: currently the auto-stop of live
// trips whose end date has passed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tripjournal/internal/config"
	"github.com/pkordes/tripjournal/internal/logger"
	"github.com/pkordes/tripjournal/internal/realtime"
	"github.com/pkordes/tripjournal/internal/repo"
	"github.com/pkordes/tripjournal/internal/service"
	"github.com/pkordes/tripjournal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("worker stopped", zap.Error(err))
		os.Exit(1)
	}
	log.Info("worker stopped")
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	// Stop events only reach open feeds through Redis; without it the
	// clients pick the change up on their next snapshot.
	var events service.TripEventPublisher
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()
		events = realtime.NewRedisBroker(client, log)
	}

	job := service.NewAutoStopService(repo.NewTripRepo(pool), events, loc, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.NewAutoStop(job, cfg.AutoStopInterval, log).Run(ctx)
	})
	return g.Wait()
}
