package logic

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

// Total-score weights. Health dominates because an OUT player produces
// nothing no matter how good the schedule looks.
const (
	weightHealth      = 0.30
	weightTrend       = 0.25
	weightSchedule    = 0.20
	weightConsistency = 0.10
	weightExpert      = 0.15
)

type scoringService struct {
	estimator *TimelineEstimator
	logger    *zap.SugaredLogger
}

func NewScoringService(logger *zap.Logger) ScoringService {
	return &scoringService{
		estimator: NewTimelineEstimator(),
		logger:    logger.Sugar(),
	}
}

// AnalyzePlayer scores one player against the current external signals.
// Pure: identical inputs always produce an identical analysis. Missing or
// malformed data for any dimension resolves to that dimension's neutral
// default and never fails the batch.
func (s *scoringService) AnalyzePlayer(p models.Player, sig models.Signals) models.PlayerAnalysis {
	health := s.healthScore(p, sig.Injuries)
	trend := s.trendScore(p, sig.Categories)
	schedule := s.scheduleScore(p, sig.Schedule)
	consistency := s.consistencyScore(p)
	expert := s.expertScore(p.Name, sig.Expert)

	replacement := s.detectInjuryReplacement(p, sig, schedule)

	total := health*weightHealth +
		(trend+100)/2*weightTrend +
		schedule*weightSchedule +
		consistency*weightConsistency +
		expert*weightExpert

	var issues, opportunities []string

	if health < 70 {
		issues = append(issues, fmt.Sprintf("Health concern: %.0f/100", health))
	}
	if trend < -20 {
		issues = append(issues, fmt.Sprintf("Declining performance: %+.0f%%", trend))
	}
	if consistency < 50 {
		issues = append(issues, fmt.Sprintf("Inconsistent: %.0f/100", consistency))
	}
	if schedule > 70 {
		opportunities = append(opportunities, fmt.Sprintf("Great schedule: %.0f/100", schedule))
	}
	if expert > 70 {
		if rank, ok := sig.Expert[p.Name]; ok && rank.Rank <= 100 {
			opportunities = append(opportunities, fmt.Sprintf("Expert rank #%d (Top 100)", rank.Rank))
		}
	}
	if replacement.IsReplacement && replacement.Replacing != "" {
		opportunities = append(opportunities, fmt.Sprintf("Injury replacement for %s", replacement.Replacing))
	}

	return models.PlayerAnalysis{
		PlayerName:       p.Name,
		HealthScore:      round1(health),
		TrendScore:       round1(trend),
		ScheduleScore:    round1(schedule),
		ConsistencyScore: round1(consistency),
		ExpertScore:      round1(expert),
		TotalScore:       round1(total),
		Issues:           issues,
		Opportunities:    opportunities,
		IsReplacement:    replacement.IsReplacement,
		Replacement:      replacement,
	}
}

// healthScore maps injury status to 0-100. When the scraped report and the
// provider snapshot disagree, the worse score wins.
func (s *scoringService) healthScore(p models.Player, injuries map[string]models.InjuryRecord) float64 {
	score := 100.0

	if rec, ok := injuries[p.Name]; ok {
		score = math.Min(score, statusScore(rec.Status))
	}
	if p.InjuryStatus != models.StatusHealthy {
		score = math.Min(score, statusScore(p.InjuryStatus))
	}

	return score
}

// statusScore is the literal health table. DAY_TO_DAY scoring above
// QUESTIONABLE is deliberate: a day-to-day tag usually means minor
// maintenance rather than a true game-time doubt.
func statusScore(status models.InjuryStatus) float64 {
	switch normalizeStatus(status) {
	case models.StatusOut, models.StatusSuspended:
		return 0
	case models.StatusDoubtful:
		return 20
	case models.StatusQuestionable:
		return 50
	case models.StatusDayToDay:
		return 60
	case models.StatusProbable:
		return 75
	default:
		return 100
	}
}

// normalizeStatus folds provider spelling variants ("SUSPENSION", "SSPD",
// "DTD") onto the canonical enum.
func normalizeStatus(status models.InjuryStatus) models.InjuryStatus {
	upper := strings.ToUpper(strings.TrimSpace(string(status)))
	switch {
	case upper == "OUT":
		return models.StatusOut
	case upper == "SSPD" || strings.Contains(upper, "SUSPEN"):
		return models.StatusSuspended
	case upper == "DOUBTFUL":
		return models.StatusDoubtful
	case upper == "QUESTIONABLE" || upper == "GTD":
		return models.StatusQuestionable
	case upper == "DAY_TO_DAY" || upper == "DTD" || upper == "DAY-TO-DAY":
		return models.StatusDayToDay
	case upper == "PROBABLE":
		return models.StatusProbable
	default:
		return models.StatusHealthy
	}
}

// trendScore measures the last-7 window against the last-15 window as a mean
// percentage change across the league's categories, turnovers inverted, plus
// a per-minute efficiency bonus. Clamped to [-100, 100]. Returns 0 when
// either window is missing.
func (s *scoringService) trendScore(p models.Player, categories []string) float64 {
	recent := p.Stats.Last7
	base := p.Stats.Last15

	if recent.IsZero() || base.IsZero() {
		return 0
	}
	if len(categories) == 0 {
		categories = models.DefaultCategories
	}

	var changes []float64
	for _, cat := range categories {
		val7 := recent.Category(cat)
		val15 := base.Category(cat)
		if val15 <= 0 {
			continue
		}
		change := (val7 - val15) / val15 * 100
		if cat == models.CatTurnovers {
			change = -change
		}
		changes = append(changes, change)
	}

	var bonus float64
	if recent.Minutes > 0 && base.Minutes > 0 {
		eff7 := recent.Points / recent.Minutes
		eff15 := base.Points / base.Minutes

		// Producing more per minute on fewer minutes is the strongest
		// breakout signal we have from box-score averages alone.
		if eff7 > eff15 && recent.Minutes < base.Minutes {
			bonus = 15
		} else if eff7 > eff15 {
			bonus = 10
		}

		if math.Abs(recent.Minutes-base.Minutes)*2 < 20 {
			bonus += 5
		}
	}

	if len(changes) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range changes {
		sum += c
	}
	return clamp(sum/float64(len(changes))+bonus, -100, 100)
}

// scheduleScore rewards a heavy upcoming slate and soft opponents.
// Four or more games in the next seven days maxes the volume component.
func (s *scoringService) scheduleScore(p models.Player, schedule map[string]models.TeamSchedule) float64 {
	team, ok := schedule[p.Team]
	if !ok {
		return 50 // no schedule data, assume average
	}

	gamesScore := math.Min(100, float64(team.GamesNext7)/4*100)
	return math.Min(100, gamesScore+float64(team.FavorableMatchups)*10)
}

// consistencyScore is a crude volume bucket on last-15 scoring, not a
// variance measure. Kept as-is until game-log level data is available;
// any replacement must preserve the 0-100 contract.
func (s *scoringService) consistencyScore(p models.Player) float64 {
	last15 := p.Stats.Last15
	if last15.IsZero() {
		return 50
	}

	switch pts := last15.Points; {
	case pts >= 20:
		return 80
	case pts >= 15:
		return 70
	case pts >= 10:
		return 60
	default:
		return 50
	}
}

// expertScore buckets the external consensus rank. Neutral 50 with no data.
func (s *scoringService) expertScore(name string, expert map[string]models.ExpertRank) float64 {
	rank, ok := expert[name]
	if !ok {
		return 50
	}

	switch {
	case rank.Rank <= 50:
		return 100
	case rank.Rank <= 100:
		return 85
	case rank.Rank <= 150:
		return 70
	case rank.Rank <= 200:
		return 55
	default:
		return 40
	}
}

// detectInjuryReplacement flags low-profile players whose value looks
// temporarily inflated: a strong schedule spike combined with either no
// established expert ranking or a clear minutes spike. When possible the
// flag is attributed to an OUT teammate via the timeline estimator;
// otherwise it is still reported as a generic minutes spike.
func (s *scoringService) detectInjuryReplacement(p models.Player, sig models.Signals, scheduleScore float64) models.ReplacementInfo {
	var info models.ReplacementInfo

	if scheduleScore <= 80 {
		return info
	}

	lowProfile := true
	if rank, ok := sig.Expert[p.Name]; ok && rank.Rank <= 150 {
		lowProfile = false
	}

	minutesSpike := false
	seasonMin := p.Stats.Baseline().Minutes
	if seasonMin > 0 && p.Stats.Last7.Minutes > seasonMin*1.3 {
		minutesSpike = true
	}

	if !lowProfile && !minutesSpike {
		return info
	}

	team := strings.ToUpper(p.Team)
	if team != "" {
		for injuredName, rec := range sig.Injuries {
			if injuredName == p.Name {
				continue
			}
			if !teamsMatch(team, rec.Team) || normalizeStatus(rec.Status) != models.StatusOut {
				continue
			}

			est := s.estimator.EstimateReturn(models.StatusOut, rec.InjuryType)
			return models.ReplacementInfo{
				IsReplacement:   true,
				Replacing:       injuredName,
				InjuryType:      rec.InjuryType,
				EstimatedReturn: est.Description,
				TimelineMessage: s.estimator.TimelineMessage(models.StatusOut, rec.InjuryType, injuredName),
			}
		}
	}

	if minutesSpike {
		info.IsReplacement = true
		info.TimelineMessage = fmt.Sprintf("%s is seeing elevated minutes recently - possible temporary opportunity", p.Name)
	}

	return info
}

// teamsMatch handles abbreviation vs full-name comparisons (DEN vs Denver).
func teamsMatch(a, b string) bool {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// QuickScore is the cheap fantasy-point approximation used for today's power
// balance. Prefers the last-7 window, falling back to the baseline line.
func (s *scoringService) QuickScore(p models.Player) float64 {
	line := p.Stats.Last7
	if line.IsZero() {
		line = p.Stats.Baseline()
	}
	if line.IsZero() {
		return 0
	}

	return line.Points +
		line.Rebounds*1.2 +
		line.Assists*1.5 +
		line.Steals*2 +
		line.Blocks*2
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
