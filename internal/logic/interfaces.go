package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fantasybrain/roster-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ScoringService produces per-player multi-dimensional scores. Pure and
// idempotent; no I/O.
type ScoringService interface {
	AnalyzePlayer(p models.Player, sig models.Signals) models.PlayerAnalysis
	QuickScore(p models.Player) float64
}

// StrategyService derives the full strategic context for one analysis run.
type StrategyService interface {
	BuildContext(in StrategyInput) models.StrategicContext
}

// StrategyInput carries everything the strategy analyzer reads. Now is
// injected so week-boundary behavior is deterministic in tests.
type StrategyInput struct {
	Snapshot  models.MatchupSnapshot
	MyRoster  []models.Player
	OppRoster []models.Player
	Signals   models.Signals
	MovesUsed int
	Now       time.Time
}

// LineupService suggests slot transitions. Never touches the acquisition
// budget.
type LineupService interface {
	Recommend(roster []models.Player, sig models.Signals) []models.LineupChange
}

// SearchService pairs drop candidates against add candidates.
type SearchService interface {
	FindBestMoves(roster, available []models.Player, sig models.Signals, isWeekStart bool, topN int) []models.Recommendation
}

// Predictor estimates whether a proposed swap will work out. Two
// implementations exist: the always-available rule-based predictor and an
// optional trained classifier that degrades to rules on any failure.
type Predictor interface {
	Predict(add, drop models.PlayerAnalysis, aiConfidence int, matchupWinning bool) models.Prediction
	Method() string
}

// HistoryService is the decision history store. The only shared mutable
// resource in the system; matchup upserts are keyed by (league, week,
// season) so concurrent batch runs never duplicate rows.
type HistoryService interface {
	SaveDecision(ctx context.Context, rec models.DecisionRecord) (string, error)
	SaveMatchupResult(ctx context.Context, rec models.MatchupRecord) error
	RecordUserChoice(ctx context.Context, decisionID string, choice models.UserChoice, feedback string) error

	IsSuppressed(ctx context.Context, leagueID, dropName, addName string) (bool, error)
	LabeledDecisions(ctx context.Context, leagueID string, windowDays int) ([]models.DecisionRecord, error)

	Insights(ctx context.Context, leagueID string) (models.DecisionInsights, error)
	SimilarMatchups(ctx context.Context, leagueID, opponent string, limit int) ([]models.SimilarMatchup, error)
	PerformanceSummary(ctx context.Context, leagueID string, weeks int) (models.PerformanceSummary, error)

	SaveExpertSnapshot(ctx context.Context, snap models.ExpertRankingSnapshot) error
	ExpertSnapshots(ctx context.Context, source string, date time.Time) (map[string]models.ExpertRank, error)

	UnlabeledDecisions(ctx context.Context, olderThan time.Time, limit int) ([]models.DecisionRecord, error)
	ApplyOutcome(ctx context.Context, decisionID string, addedAvg, droppedAvg float64) error
}

// DecisionWriter accepts decision rows for asynchronous persistence.
// Enqueue reports false when the write could not be accepted; callers log
// and move on, generation never blocks on the store.
type DecisionWriter interface {
	Enqueue(rec models.DecisionRecord) bool
}

// SignalStore reconciles one request's collaborator signals with a shared
// cache: supplied maps are written through, empty maps are backfilled from
// the last fresh copy.
type SignalStore interface {
	Refresh(ctx context.Context, leagueID string, sig models.Signals) models.Signals
}

// WinProbService estimates the current matchup's final outcome.
type WinProbService interface {
	Calculate(in models.WinProbInput) models.MatchupProjection
}

// RecommendationService is the single orchestration entry point.
type RecommendationService interface {
	GetDailyRecommendations(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResponse, error)
}
