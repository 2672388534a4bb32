package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fantasybrain/roster-api/internal/models"
)

// OrchestratorConfig bundles the orchestrator's collaborators and tuning
// knobs.
type OrchestratorConfig struct {
	Scorer   ScoringService
	Strategy StrategyService
	Lineup   LineupService
	Search   SearchService
	Filter   *StrategicFilter
	History  HistoryService
	Writer   DecisionWriter
	Signals  SignalStore

	TopMoves           int
	MinTrainingSamples int
	TrainingWindowDays int
	ExpertSource       string
}

type recommendationService struct {
	cfg    OrchestratorConfig
	logger *zap.SugaredLogger
}

func NewRecommendationService(cfg OrchestratorConfig, logger *zap.Logger) RecommendationService {
	if cfg.TopMoves <= 0 {
		cfg.TopMoves = 5
	}
	if cfg.ExpertSource == "" {
		cfg.ExpertSource = "consensus"
	}
	return &recommendationService{cfg: cfg, logger: logger.Sugar()}
}

// GetDailyRecommendations is the single analysis entry point. Degraded
// collaborator data narrows the output but never fails the call; the only
// error path is a cancelled context.
func (s *recommendationService) GetDailyRecommendations(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	sig := s.fillSignals(ctx, req.Snapshot.LeagueID, req.Signals)

	strategic := s.cfg.Strategy.BuildContext(StrategyInput{
		Snapshot:  req.Snapshot,
		MyRoster:  req.MyRoster,
		OppRoster: req.OppRoster,
		Signals:   sig,
		MovesUsed: req.MovesUsed,
		Now:       now,
	})

	// Search and lineup read disjoint state, so they run side by side.
	var (
		rawRecs []models.Recommendation
		lineup  []models.LineupChange
	)
	var g errgroup.Group
	g.Go(func() error {
		if strategic.Acquisitions.Remaining > 0 {
			rawRecs = s.cfg.Search.FindBestMoves(req.MyRoster, req.FreeAgents, sig,
				strategic.Acquisitions.IsWeekStart, s.cfg.TopMoves*2)
		}
		return nil
	})
	g.Go(func() error {
		lineup = s.cfg.Lineup.Recommend(req.MyRoster, sig)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered, filterNote := s.cfg.Filter.Apply(rawRecs, strategic)
	kept := s.dropSuppressed(ctx, req.Snapshot.LeagueID, filtered)
	if len(kept) > s.cfg.TopMoves {
		kept = kept[:s.cfg.TopMoves]
	}

	predictor := NewPredictor(ctx, s.cfg.History, req.Snapshot.LeagueID,
		s.cfg.MinTrainingSamples, s.cfg.TrainingWindowDays, s.logger.Desugar())

	for i := range kept {
		pred := predictor.Predict(kept[i].AddAnalysis, kept[i].DropAnalysis,
			kept[i].Confidence, strategic.Matchup.Winning)
		kept[i].Prediction = &pred
		kept[i].Explanation = ExplainRecommendation(kept[i])
		s.recordProposal(req.Snapshot, &kept[i], now)
	}

	return &models.AnalysisResponse{
		Context:          strategic,
		Recommendations:  kept,
		LineupChanges:    lineup,
		StrategicMessage: BuildStrategicMessage(strategic, filterNote),
	}, nil
}

// fillSignals runs the signals through the shared cache, then backfills a
// still-empty expert map from the latest persisted snapshot. Any store
// failure leaves the map empty and scoring falls back to neutral expert
// scores.
func (s *recommendationService) fillSignals(ctx context.Context, leagueID string, sig models.Signals) models.Signals {
	if s.cfg.Signals != nil {
		sig = s.cfg.Signals.Refresh(ctx, leagueID, sig)
	}
	if len(sig.Expert) > 0 || s.cfg.History == nil {
		return sig
	}

	today := time.Now().Truncate(24 * time.Hour)
	expert, err := s.cfg.History.ExpertSnapshots(ctx, s.cfg.ExpertSource, today)
	if err != nil {
		s.logger.Warnw("expert snapshot load failed, scoring without rankings", "error", err)
		return sig
	}
	sig.Expert = expert
	return sig
}

// dropSuppressed removes swaps the user has already rejected recently. A
// failed lookup keeps the recommendation; suppression is a courtesy, not a
// gate worth failing the run over.
func (s *recommendationService) dropSuppressed(ctx context.Context, leagueID string, recs []models.Recommendation) []models.Recommendation {
	if s.cfg.History == nil {
		return recs
	}

	kept := make([]models.Recommendation, 0, len(recs))
	for _, rec := range recs {
		suppressed, err := s.cfg.History.IsSuppressed(ctx, leagueID, rec.DropName, rec.AddName)
		if err != nil {
			s.logger.Warnw("suppression lookup failed",
				"drop", rec.DropName, "add", rec.AddName, "error", err)
			kept = append(kept, rec)
			continue
		}
		if suppressed {
			s.logger.Infow("suppressing previously rejected swap",
				"drop", rec.DropName, "add", rec.AddName)
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// recordProposal queues the surfaced recommendation for persistence and
// stamps the decision id onto the response so the user's choice can be
// recorded later.
func (s *recommendationService) recordProposal(snap models.MatchupSnapshot, rec *models.Recommendation, now time.Time) {
	if s.cfg.Writer == nil {
		return
	}

	rec.DecisionID = uuid.New().String()
	row := models.DecisionRecord{
		ID:            rec.DecisionID,
		DecisionDate:  now,
		LeagueID:      snap.LeagueID,
		ActionType:    "ADD_DROP",
		PlayerDropped: rec.DropName,
		PlayerAdded:   rec.AddName,
		AIRecommended: fmt.Sprintf("Drop %s, add %s", rec.DropName, rec.AddName),
		UserChoice:    models.ChoiceUnknown,
		AIConfidence:  rec.Confidence,
	}
	if rec.Prediction != nil {
		row.Reasoning = rec.Prediction.Reasoning
	}
	if rank, ok := expertRankPtr(rec.AddAnalysis); ok {
		row.AddExpertRank = rank
	}
	if rank, ok := expertRankPtr(rec.DropAnalysis); ok {
		row.DropExpertRank = rank
	}

	if !s.cfg.Writer.Enqueue(row) {
		s.logger.Warnw("decision write queue full, proposal not persisted",
			"decision_id", rec.DecisionID)
	}
}

// expertRankPtr recovers a representative rank from the bucketed expert
// score, skipping the unranked neutral bucket.
func expertRankPtr(a models.PlayerAnalysis) (*int, bool) {
	rank := rankFromExpertScore(a.ExpertScore)
	if rank == 0 {
		return nil, false
	}
	return &rank, true
}
