package logic

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

type winProbService struct {
	logger *zap.SugaredLogger
}

func NewWinProbService(logger *zap.Logger) WinProbService {
	return &winProbService{logger: logger.Sugar()}
}

// Calculate projects the matchup's final category scoreboard and turns it
// into a single win probability. Counting categories project forward as
// current + sum of player averages times remaining games; ratio categories
// use current values as-is, with no volume weighting.
func (s *winProbService) Calculate(in models.WinProbInput) models.MatchupProjection {
	categories := in.Categories
	if len(categories) == 0 {
		categories = models.DefaultCategories
	}

	projectedMine := s.projectTotals(in.CurrentMine, in.RosterMine, in.RemainingMine, categories)
	projectedOpp := s.projectTotals(in.CurrentOpp, in.RosterOpp, in.RemainingOpp, categories)

	probs := make(map[string]float64, len(categories))
	wins, losses, ties := 0, 0, 0
	var factors []string

	for _, cat := range categories {
		prob := categoryProbability(cat, projectedMine[cat], projectedOpp[cat])
		probs[cat] = prob

		switch {
		case prob > 0.5:
			wins++
			if prob >= 0.8 {
				factors = append(factors, fmt.Sprintf("Strong edge in %s", cat))
			}
		case prob < 0.5:
			losses++
			if prob <= 0.2 {
				factors = append(factors, fmt.Sprintf("Clear deficit in %s", cat))
			}
		default:
			ties++
		}
	}

	winProb := overallProbability(wins, losses, len(categories))

	// A meaningful games-in-hand edge nudges the estimate.
	myGames := sumGames(in.RemainingMine)
	oppGames := sumGames(in.RemainingOpp)
	switch {
	case myGames > oppGames+2:
		winProb += 0.05
		factors = append(factors, fmt.Sprintf("Games in hand: %d vs %d remaining", myGames, oppGames))
	case oppGames > myGames+2:
		winProb -= 0.05
		factors = append(factors, fmt.Sprintf("Opponent has more games left: %d vs %d", oppGames, myGames))
	}

	winProb = clamp(winProb, 0.05, 0.95)

	return models.MatchupProjection{
		WinProbability: math.Round(winProb*100) / 100,
		PredictedScore: fmt.Sprintf("%d-%d-%d", wins, losses, ties),
		KeyFactors:     factors,
		CategoryProbs:  probs,
		ProjectedMine:  roundTotals(projectedMine),
		ProjectedOpp:   roundTotals(projectedOpp),
	}
}

func (s *winProbService) projectTotals(current map[string]float64, roster []models.Player, remaining map[string]int, categories []string) map[string]float64 {
	totals := make(map[string]float64, len(categories))
	for _, cat := range categories {
		totals[cat] = current[cat]
	}

	for _, p := range roster {
		games := remaining[p.Name]
		if games <= 0 {
			continue
		}
		line := p.Stats.Baseline()
		for _, cat := range categories {
			if models.IsPercentageCategory(cat) {
				continue
			}
			totals[cat] += line.Category(cat) * float64(games)
		}
	}
	return totals
}

// categoryProbability grades one projected category. A margin beyond 5% of
// the leading value (or 5 units off a zero lead) is a clear result, anything
// smaller is narrow. Turnovers flip: fewer wins.
func categoryProbability(cat string, mine, opp float64) float64 {
	if cat == models.CatTurnovers {
		mine, opp = opp, mine
	}

	diff := mine - opp
	if diff == 0 {
		return 0.5
	}

	leading := math.Max(mine, opp)
	threshold := leading * 0.05
	if threshold == 0 {
		threshold = 5
	}

	switch {
	case diff > threshold:
		return 0.8
	case diff > 0:
		return 0.6
	case diff < -threshold:
		return 0.2
	default:
		return 0.4
	}
}

func overallProbability(wins, losses, total int) float64 {
	margin := wins - losses
	switch {
	case wins*2 > total:
		return 0.60 + 0.05*float64(margin)
	case losses*2 > total:
		return 0.40 - 0.05*math.Abs(float64(margin))
	default:
		return 0.50
	}
}

func sumGames(remaining map[string]int) int {
	total := 0
	for _, g := range remaining {
		total += g
	}
	return total
}

func roundTotals(totals map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(totals))
	for cat, v := range totals {
		out[cat] = round1(v)
	}
	return out
}
