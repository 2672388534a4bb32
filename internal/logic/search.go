package logic

import (
	"sort"

	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

// Candidate pool bounds. At most 10x20 pairs are evaluated, which keeps
// every surfaced move explainable at the cost of global optimality.
const (
	maxDropCandidates = 10
	maxAddCandidates  = 20
	minProjectedGain  = 10.0
)

type searchService struct {
	scorer ScoringService
	logger *zap.SugaredLogger
}

func NewSearchService(scorer ScoringService, logger *zap.Logger) SearchService {
	return &searchService{scorer: scorer, logger: logger.Sugar()}
}

type scoredPlayer struct {
	player   models.Player
	analysis models.PlayerAnalysis
}

// FindBestMoves crosses the weakest rostered players against the strongest
// free agents and returns the top swaps by projected score gain. Returns an
// empty slice when nothing clears the impact floor, never an error.
func (s *searchService) FindBestMoves(roster, available []models.Player, sig models.Signals, isWeekStart bool, topN int) []models.Recommendation {
	if topN <= 0 {
		topN = 5
	}

	drops := s.dropCandidates(roster, sig, isWeekStart)
	adds := s.addCandidates(available, sig)
	if len(drops) == 0 || len(adds) == 0 {
		return []models.Recommendation{}
	}

	var recs []models.Recommendation
	for _, drop := range drops {
		for _, add := range adds {
			impact := add.analysis.TotalScore - drop.analysis.TotalScore
			if impact <= minProjectedGain {
				continue
			}
			recs = append(recs, s.buildRecommendation(drop, add, impact))
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].ProjectedImpact > recs[j].ProjectedImpact
	})
	if len(recs) > topN {
		recs = recs[:topN]
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}
	return recs
}

// dropCandidates scores every non-IR roster player and keeps the weakest.
// A player whose team plays today is never a drop candidate at week start;
// mid-week the protection only holds while their score stays at 20 or above.
func (s *searchService) dropCandidates(roster []models.Player, sig models.Signals, isWeekStart bool) []scoredPlayer {
	var scored []scoredPlayer
	for _, p := range roster {
		if p.Slot == models.SlotIR {
			continue
		}
		analysis := s.scorer.AnalyzePlayer(p, sig)

		if sig.PlaysToday(p.Team) {
			if isWeekStart {
				continue
			}
			if analysis.TotalScore >= 20 {
				continue
			}
		}

		scored = append(scored, scoredPlayer{player: p, analysis: analysis})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].analysis.TotalScore < scored[j].analysis.TotalScore
	})
	if len(scored) > maxDropCandidates {
		scored = scored[:maxDropCandidates]
	}
	return scored
}

// addCandidates scores the free-agent pool, excluding players stuck in the
// waiver claim process, and keeps the strongest.
func (s *searchService) addCandidates(available []models.Player, sig models.Signals) []scoredPlayer {
	var scored []scoredPlayer
	for _, p := range available {
		if p.Acquisition == models.AcqWaivers || p.Acquisition == models.AcqRostered {
			continue
		}
		scored = append(scored, scoredPlayer{player: p, analysis: s.scorer.AnalyzePlayer(p, sig)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].analysis.TotalScore > scored[j].analysis.TotalScore
	})
	if len(scored) > maxAddCandidates {
		scored = scored[:maxAddCandidates]
	}
	return scored
}

func (s *searchService) buildRecommendation(drop, add scoredPlayer, impact float64) models.Recommendation {
	priority := models.PriorityLow
	switch {
	case impact > 30:
		priority = models.PriorityHigh
	case impact > 15:
		priority = models.PriorityMedium
	}

	confidence := 50
	if drop.analysis.HealthScore < 50 {
		confidence += 20
	}
	if add.analysis.ScheduleScore > 70 {
		confidence += 15
	}
	if add.analysis.TrendScore > 10 {
		confidence += 15
	}
	if confidence > 100 {
		confidence = 100
	}

	dropPlayer := drop.player
	addPlayer := add.player

	return models.Recommendation{
		Priority:        priority,
		DropName:        dropPlayer.Name,
		AddName:         addPlayer.Name,
		DropPlayer:      &dropPlayer,
		AddPlayer:       &addPlayer,
		DropAnalysis:    drop.analysis,
		AddAnalysis:     add.analysis,
		ProjectedImpact: round1(impact),
		Confidence:      confidence,
	}
}
