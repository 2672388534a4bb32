package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// DecisionQueue is the async decision writer as seen from the HTTP layer.
type DecisionQueue interface {
	QueueDepth() int
}

type Config struct {
	WorkerPool DecisionQueue
	Postgres   *pgxpool.Pool
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Recommendations logic.RecommendationService
	History         logic.HistoryService
	WinProb         logic.WinProbService
}

type Handler struct {
	pool            DecisionQueue
	pg              *pgxpool.Pool
	redis           *redis.Client
	logger          *zap.SugaredLogger
	validator       *validator.Validate
	recommendations logic.RecommendationService
	history         logic.HistoryService
	winProb         logic.WinProbService
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:            cfg.WorkerPool,
		pg:              cfg.Postgres,
		redis:           cfg.Redis,
		logger:          cfg.Logger.Sugar(),
		validator:       validator.New(),
		recommendations: cfg.Recommendations,
		history:         cfg.History,
		winProb:         cfg.WinProb,
	}
}
