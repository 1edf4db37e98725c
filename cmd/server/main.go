package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucasbertoncelli/sst2-sub000/internal/api"
	"github.com/lucasbertoncelli/sst2-sub000/internal/config"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/accidents"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/employees"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/equipment"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/stock"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/trainings"
	"github.com/lucasbertoncelli/sst2-sub000/internal/infra/db"
	httpx "github.com/lucasbertoncelli/sst2-sub000/internal/infra/http"
	"github.com/lucasbertoncelli/sst2-sub000/internal/infra/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	equipmentRepo := equipment.NewRepo(pool)
	employeesRepo := employees.NewRepo(pool)
	trainingsRepo := trainings.NewRepo(pool)
	accidentsRepo := accidents.NewRepo(pool)

	store := stock.NewRepo(pool)
	engine := stock.NewEngine(store, equipmentRepo)

	window := time.Duration(cfg.Alerts.ExpiryWindowDays) * 24 * time.Hour
	app := api.New(log, engine, store, equipmentRepo, employeesRepo, trainingsRepo, accidentsRepo, window)

	srv := httpx.New(cfg.HTTP.Addr, app.Router(cfg.App.Env, cfg.Metrics.Enabled))
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
