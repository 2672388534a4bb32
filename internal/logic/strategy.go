package logic

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

type strategyService struct {
	scorer           ScoringService
	weeklyLimit      int
	playoffStartWeek int
	playoffSeeds     int
	logger           *zap.SugaredLogger
}

func NewStrategyService(scorer ScoringService, weeklyLimit, playoffStartWeek, playoffSeeds int, logger *zap.Logger) StrategyService {
	return &strategyService{
		scorer:           scorer,
		weeklyLimit:      weeklyLimit,
		playoffStartWeek: playoffStartWeek,
		playoffSeeds:     playoffSeeds,
		logger:           logger.Sugar(),
	}
}

// BuildContext derives the full strategic picture for one analysis run.
// Any panic from malformed snapshot data fails open to an aggressive
// context with one day remaining so lineup and search can still run.
func (s *strategyService) BuildContext(in StrategyInput) (out models.StrategicContext) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("strategic context computation failed, using fallback", "panic", r)
			out = fallbackContext(s.weeklyLimit, in.MovesUsed)
		}
	}()

	playoff := s.playoffContext(in.Snapshot)
	matchup := s.matchupState(in.Snapshot, in.Now)
	budget := s.acquisitionBudget(in.Snapshot, in.MovesUsed, in.Now)
	today := s.todayBalance(in.MyRoster, in.OppRoster, in.Signals)

	return models.StrategicContext{
		Playoff:      playoff,
		Matchup:      matchup,
		Acquisitions: budget,
		Today:        today,
	}
}

func fallbackContext(weeklyLimit, used int) models.StrategicContext {
	remaining := weeklyLimit - used
	if remaining < 0 {
		remaining = 0
	}
	return models.StrategicContext{
		Playoff: models.PlayoffContext{Strategy: models.StrategyWinNow},
		Matchup: models.MatchupState{
			DaysRemaining:  1,
			CanWin:         true,
			Recommendation: models.PostureAggressive,
		},
		Acquisitions: models.AcquisitionBudget{
			Used:        used,
			Remaining:   remaining,
			WeeklyLimit: weeklyLimit,
			CanAfford:   remaining > 0,
		},
		Today: models.TodayBalance{Advantage: models.AdvantageTied},
	}
}

func (s *strategyService) playoffContext(snap models.MatchupSnapshot) models.PlayoffContext {
	weeksLeft := s.playoffStartWeek - snap.CurrentWeek
	if weeksLeft < 0 {
		weeksLeft = 0
	}

	strategy := models.StrategyWinNow
	switch {
	case snap.CurrentWeek >= s.playoffStartWeek:
		strategy = models.StrategyPlayoffs
	case snap.Standing > 0 && snap.Standing <= s.playoffSeeds && weeksLeft <= 2:
		strategy = models.StrategyBuildPlayoff
	}

	return models.PlayoffContext{
		Strategy:        strategy,
		WeeksToPlayoffs: weeksLeft,
		Standing:        snap.Standing,
		PlayoffBound:    snap.Standing > 0 && snap.Standing <= s.playoffSeeds,
		CurrentWeek:     snap.CurrentWeek,
	}
}

func (s *strategyService) matchupState(snap models.MatchupSnapshot, now time.Time) models.MatchupState {
	diff := snap.MyWins - snap.OppWins
	days := daysLeftInPeriod(now)
	winning := diff > 0

	// Still mathematically alive: the deficit can be covered by tied
	// categories plus one flip per remaining day.
	canWin := winning || -diff <= snap.TiedCats+days

	posture := models.PostureAggressive
	switch {
	case days == 0:
		posture = models.PosturePunt
	case diff >= 3:
		posture = models.PostureConservative
	}

	return models.MatchupState{
		Winning:        winning,
		CatsAhead:      snap.MyWins,
		CatsBehind:     snap.OppWins,
		CatsTied:       snap.TiedCats,
		ScoreDiff:      diff,
		DaysRemaining:  days,
		CanWin:         canWin,
		Recommendation: posture,
	}
}

// daysLeftInPeriod counts whole days from now to the end of the scoring
// period, assuming Monday-through-Sunday matchup weeks.
func daysLeftInPeriod(now time.Time) int {
	weekday := (int(now.Weekday()) + 6) % 7 // Monday = 0
	return 6 - weekday
}

// acquisitionBudget computes the weekly allowance. The reset heuristic has
// no authoritative source: a fresh period is assumed on the first day of the
// matchup week, or when both category-win counters sit at zero.
func (s *strategyService) acquisitionBudget(snap models.MatchupSnapshot, used int, now time.Time) models.AcquisitionBudget {
	isWeekStart := (int(now.Weekday())+6)%7 == 0 ||
		(snap.MyWins == 0 && snap.OppWins == 0)

	if isWeekStart {
		used = 0
	}

	remaining := s.weeklyLimit - used
	if remaining < 0 {
		remaining = 0
	}

	var warning string
	switch {
	case remaining == 0:
		warning = "No acquisitions remaining this week"
	case remaining <= 2:
		warning = fmt.Sprintf("Only %d acquisition(s) left this week", remaining)
	}

	return models.AcquisitionBudget{
		Used:        used,
		Remaining:   remaining,
		WeeklyLimit: s.weeklyLimit,
		CanAfford:   remaining > 0,
		IsWeekStart: isWeekStart,
		Warning:     warning,
	}
}

// todayBalance sums the cheap fantasy-point approximation over non-OUT
// players whose team plays today, for both rosters.
func (s *strategyService) todayBalance(mine, opp []models.Player, sig models.Signals) models.TodayBalance {
	myCount, myPower := s.sideToday(mine, sig)
	oppCount, oppPower := s.sideToday(opp, sig)

	diff := myPower - oppPower
	advantage := models.AdvantageTied
	switch {
	case oppPower > 0 && myPower > oppPower*1.1:
		advantage = models.AdvantageMe
	case myPower > 0 && oppPower > myPower*1.1:
		advantage = models.AdvantageOpp
	case myPower > 0 && oppPower == 0:
		advantage = models.AdvantageMe
	case oppPower > 0 && myPower == 0:
		advantage = models.AdvantageOpp
	}

	return models.TodayBalance{
		MyPlayersToday:  myCount,
		OppPlayersToday: oppCount,
		MyPower:         round1(myPower),
		OppPower:        round1(oppPower),
		PowerDiff:       round1(diff),
		Advantage:       advantage,
	}
}

func (s *strategyService) sideToday(roster []models.Player, sig models.Signals) (int, float64) {
	count := 0
	power := 0.0
	for _, p := range roster {
		if !sig.PlaysToday(p.Team) {
			continue
		}
		if status := normalizeStatus(p.InjuryStatus); status == models.StatusOut || status == models.StatusSuspended {
			continue
		}
		count++
		power += s.scorer.QuickScore(p)
	}
	return count, power
}

// CompareRosterStrength sizes up both rosters by expert consensus: top-50
// players count triple, top-100 single. Near-equal totals fall back to the
// average rank of ranked players, with a 10-rank dead zone.
func CompareRosterStrength(mine, opp []models.Player, expert map[string]models.ExpertRank) models.Advantage {
	myScore, myAvg := rosterRankScore(mine, expert)
	oppScore, oppAvg := rosterRankScore(opp, expert)

	switch {
	case myScore > oppScore+1:
		return models.AdvantageMe
	case oppScore > myScore+1:
		return models.AdvantageOpp
	}

	// Lower average rank is stronger.
	switch {
	case myAvg > 0 && oppAvg > 0 && myAvg < oppAvg-10:
		return models.AdvantageMe
	case myAvg > 0 && oppAvg > 0 && oppAvg < myAvg-10:
		return models.AdvantageOpp
	}
	return models.AdvantageTied
}

func rosterRankScore(roster []models.Player, expert map[string]models.ExpertRank) (score int, avgRank float64) {
	ranked := 0
	sum := 0
	for _, p := range roster {
		rank, ok := expert[p.Name]
		if !ok || rank.Rank <= 0 {
			continue
		}
		ranked++
		sum += rank.Rank
		switch {
		case rank.Rank <= 50:
			score += 3
		case rank.Rank <= 100:
			score++
		}
	}
	if ranked > 0 {
		avgRank = float64(sum) / float64(ranked)
	}
	return score, avgRank
}
