package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/cache"
	"github.com/fantasybrain/roster-api/internal/config"
	"github.com/fantasybrain/roster-api/internal/handlers"
	"github.com/fantasybrain/roster-api/internal/logic"
	"github.com/fantasybrain/roster-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("postgres pool", "error", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		sugar.Fatalw("postgres ping", "error", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("redis url", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sugar.Fatalw("redis ping", "error", err)
	}

	signalCache := cache.New(rdb, cache.TTLs{
		cache.KindTodayGames: cfg.TodayGamesTTL,
		cache.KindSchedule:   cfg.ScheduleTTL,
		cache.KindStandings:  cfg.StandingsTTL,
		cache.KindExpert:     cfg.ExpertTTL,
	}, logger)

	history := logic.NewHistoryService(pg, cfg.SuppressionDays, logger)

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:  cfg.WorkerCount,
		QueueSize:    cfg.QueueSize,
		WriteTimeout: 10 * time.Second,
		History:      history,
		Logger:       logger,
	})
	pool.Start(ctx)

	scorer := logic.NewScoringService(logger)
	recommendations := logic.NewRecommendationService(logic.OrchestratorConfig{
		Scorer:   scorer,
		Strategy: logic.NewStrategyService(scorer, cfg.WeeklyAddLimit, cfg.PlayoffStartWeek, cfg.PlayoffSeeds, logger),
		Lineup:   logic.NewLineupService(logger),
		Search:   logic.NewSearchService(scorer, logger),
		Filter:   logic.NewStrategicFilter(logger),
		History:  history,
		Writer:   pool,
		Signals:  signalCache,

		TopMoves:           cfg.TopMoves,
		MinTrainingSamples: cfg.MinTrainingSamples,
		TrainingWindowDays: cfg.TrainingWindowDays,
	}, logger)

	h := handlers.New(handlers.Config{
		WorkerPool: pool,
		Postgres:   pg,
		Redis:      rdb,
		Logger:     logger,

		Recommendations: recommendations,
		History:         history,
		WinProb:         logic.NewWinProbService(logger),
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", h.Analyze)
		r.Post("/decisions/{id}/choice", h.RecordChoice)
		r.Get("/insights/{league}", h.GetInsights)
		r.Get("/insights/{league}/similar", h.GetSimilarMatchups)
		r.Get("/insights/{league}/performance", h.GetPerformance)
		r.Post("/matchups/{league}", h.RecordMatchupResult)
		r.Post("/matchups/{league}/winprob", h.CalculateWinProb)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("server starting", "port", cfg.Port, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		sugar.Info("shutdown signal received")
	case err := <-errCh:
		sugar.Errorw("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("server shutdown", "error", err)
	}

	// Flush queued decisions before the pool goes away.
	pool.Stop()
	sugar.Info("server stopped")
}
