package logic

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

// StrategicFilter prunes raw search output against the derived context.
// It only ever removes or reorders swaps; lineup changes are untouched.
type StrategicFilter struct {
	logger *zap.SugaredLogger
}

func NewStrategicFilter(logger *zap.Logger) *StrategicFilter {
	return &StrategicFilter{logger: logger.Sugar()}
}

// Apply returns the swaps worth acting on plus a message explaining the
// stance. An empty result with a message is a deliberate recommendation to
// hold, not a failure.
func (f *StrategicFilter) Apply(recs []models.Recommendation, ctx models.StrategicContext) ([]models.Recommendation, string) {
	if len(recs) == 0 {
		return []models.Recommendation{}, "No roster moves clear the impact threshold right now."
	}

	if ctx.Acquisitions.Remaining == 0 {
		return []models.Recommendation{}, "No acquisitions remaining this week. Lineup adjustments are still available."
	}

	matchup := ctx.Matchup

	// Comfortable lead late in the period: spend nothing.
	if matchup.ScoreDiff >= 4 && matchup.DaysRemaining <= 1 {
		return []models.Recommendation{}, fmt.Sprintf(
			"Winning by %d categories with %d day(s) left. Save your acquisitions for next week.",
			matchup.ScoreDiff, matchup.DaysRemaining)
	}

	// Period effectively over and trailing: pivot to next week's value.
	if matchup.DaysRemaining == 0 && !matchup.Winning {
		biased := append([]models.Recommendation(nil), recs...)
		sort.SliceStable(biased, func(i, j int) bool {
			return biased[i].AddAnalysis.ScheduleScore > biased[j].AddAnalysis.ScheduleScore
		})
		if len(biased) > 3 {
			biased = biased[:3]
		}
		return biased, "This matchup is out of reach. These moves target next week's schedule."
	}

	if ctx.Playoff.Strategy == models.StrategyPlayoffs {
		var steady []models.Recommendation
		for _, rec := range recs {
			if rec.AddAnalysis.ConsistencyScore > 60 {
				steady = append(steady, rec)
			}
		}
		if len(steady) >= 3 {
			return steady, "Playoff mode: favoring proven, consistent producers."
		}
		fallback := recs
		if len(fallback) > 3 {
			fallback = fallback[:3]
		}
		return fallback, "Playoff mode: few consistent options available, showing the top moves as-is."
	}

	if matchup.ScoreDiff >= 2 {
		var strong []models.Recommendation
		for _, rec := range recs {
			if rec.ProjectedImpact > 20 {
				strong = append(strong, rec)
			}
		}
		if strong == nil {
			strong = []models.Recommendation{}
		}
		return strong, fmt.Sprintf(
			"Leading by %d categories. Only high-impact moves are worth the roster churn.",
			matchup.ScoreDiff)
	}

	return recs, ""
}
