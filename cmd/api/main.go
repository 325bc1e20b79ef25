package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hotel_ops/internal/adapters/http_server"
	"hotel_ops/internal/adapters/observability"
	redisad "hotel_ops/internal/adapters/redis"
	"hotel_ops/internal/adapters/webhook"
	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
	"hotel_ops/internal/shared"
	mysqlrepo "hotel_ops/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, cache reads will miss")
	}

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
	orders := app.NewOrderService(repo, events)
	lost := app.NewLostFoundService(repo, events)
	parking := app.NewParkingService(repo, events)
	crm := app.NewCRMService(repo, events)
	h := &server.Handlers{
		Tenants:  app.NewTenantService(repo, cache, cfg.CacheTTL),
		Orders:   orders,
		Lost:     lost,
		Loyalty:  app.NewLoyaltyService(repo),
		Parking:  parking,
		CRM:      crm,
		Wiki:     app.NewWikiService(repo),
		Planning: planning,
		Dashboard: app.NewDashboardService(app.DashboardDeps{
			Orders: repo, Lost: repo, Parking: repo, Planning: repo, Leads: repo,
		}, cache, cfg.CacheTTL, events),
		Limiter: server.NewTenantLimiter(cfg.APIRPS, cfg.APIBurst),
	}

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	// let queued webhook deliveries finish
	events.Wait()
	log.Info().Msg("bye")
}
