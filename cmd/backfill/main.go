package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/config"
	"github.com/fantasybrain/roster-api/internal/logic"
	"github.com/fantasybrain/roster-api/internal/worker"
)

// backfill grades decisions old enough to judge against the players'
// subsequent production. Run from cron; one invocation labels one batch.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("postgres pool", "error", err)
	}
	defer pg.Close()

	history := logic.NewHistoryService(pg, cfg.SuppressionDays, logger)
	labeler := worker.NewLabeler(history, worker.NewProductionSource(pg), logger)

	labeled, err := labeler.Run(ctx)
	if err != nil {
		sugar.Fatalw("labeling pass failed", "error", err)
	}
	sugar.Infow("labeling pass finished", "labeled", labeled)
}
