package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_ops/internal/adapters/observability"
	redisad "hotel_ops/internal/adapters/redis"
	"hotel_ops/internal/adapters/webhook"
	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
	"hotel_ops/internal/shared"
	mysqlrepo "hotel_ops/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	log.Info().Int("workers", cfg.RolloverWorkers).Msg("rollover starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()

	var notifier domain.Notifier
	if cfg.WebhookURL != "" {
		wh, err := webhook.New(cfg.WebhookURL, cfg.WebhookRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize webhook client")
		}
		notifier = wh
	}
	events := app.NewEvents(notifier, cache)
	planning := app.NewPlanningService(repo, events)

	rep, err := app.NewRolloverService(repo, planning, cfg.RolloverWorkers).Run(ctx)
	events.Wait()
	if err != nil {
		log.Fatal().Err(err).Interface("report", rep).Msg("rollover interrupted")
	}
	log.Info().
		Int("hotels", rep.Hotels).
		Int("rolled", rep.Rolled).
		Int("skipped", rep.Skipped).
		Int("failed", rep.Failed).
		Int("copied", rep.Copied).
		Msg("rollover completed")
	if rep.Failed > 0 {
		os.Exit(1)
	}
}
