package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/logic"
)

var (
	outcomesLabeled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roster_outcomes_labeled_total",
		Help: "Total number of decisions graded by the outcome labeler",
	})

	outcomesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roster_outcomes_skipped_total",
		Help: "Total number of decisions skipped for missing production data",
	})
)

// ProductionSource supplies a player's average fantasy production over a
// date window, for grading past decisions. Implementations wrap the stats
// provider; a missing player returns ok=false rather than an error.
type ProductionSource interface {
	AverageProduction(ctx context.Context, playerName string, from, to time.Time) (avg float64, ok bool, err error)
}

// Labeler grades accepted decisions once they are old enough to judge:
// roughly a week after the swap, the added and dropped players' subsequent
// production is compared and was_good_decision written exactly once.
type Labeler struct {
	history    logic.HistoryService
	stats      ProductionSource
	gradeAfter time.Duration
	batchSize  int
	logger     *zap.SugaredLogger
}

func NewLabeler(history logic.HistoryService, stats ProductionSource, logger *zap.Logger) *Labeler {
	return &Labeler{
		history:    history,
		stats:      stats,
		gradeAfter: 7 * 24 * time.Hour,
		batchSize:  100,
		logger:     logger.Sugar(),
	}
}

// Run grades one batch of eligible decisions and returns how many were
// labeled. Intended to be called from a scheduled job.
func (l *Labeler) Run(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-l.gradeAfter)

	pending, err := l.history.UnlabeledDecisions(ctx, cutoff, l.batchSize)
	if err != nil {
		return 0, err
	}

	labeled := 0
	for _, rec := range pending {
		from := rec.DecisionDate
		to := rec.DecisionDate.Add(l.gradeAfter)

		addedAvg, addedOK, err := l.stats.AverageProduction(ctx, rec.PlayerAdded, from, to)
		if err != nil {
			l.logger.Warnw("production lookup failed",
				"player", rec.PlayerAdded, "decision_id", rec.ID, "error", err)
			continue
		}
		droppedAvg, droppedOK, err := l.stats.AverageProduction(ctx, rec.PlayerDropped, from, to)
		if err != nil {
			l.logger.Warnw("production lookup failed",
				"player", rec.PlayerDropped, "decision_id", rec.ID, "error", err)
			continue
		}
		if !addedOK || !droppedOK {
			outcomesSkipped.Inc()
			l.logger.Debugw("skipping decision with incomplete production data",
				"decision_id", rec.ID, "added_ok", addedOK, "dropped_ok", droppedOK)
			continue
		}

		if err := l.history.ApplyOutcome(ctx, rec.ID, addedAvg, droppedAvg); err != nil {
			l.logger.Errorw("outcome write failed", "decision_id", rec.ID, "error", err)
			continue
		}
		outcomesLabeled.Inc()
		labeled++
	}

	if labeled > 0 {
		l.logger.Infow("outcome labeling pass complete", "labeled", labeled, "pending", len(pending))
	}
	return labeled, nil
}
