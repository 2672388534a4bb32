package logic

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

type lineupService struct {
	logger *zap.SugaredLogger
}

func NewLineupService(logger *zap.Logger) LineupService {
	return &lineupService{logger: logger.Sugar()}
}

// Recommend walks the roster and proposes slot transitions. Free of
// acquisition cost, so every justified move is surfaced. Moves come back
// ordered by priority, HIGH first.
func (s *lineupService) Recommend(roster []models.Player, sig models.Signals) []models.LineupChange {
	var changes []models.LineupChange

	for _, p := range roster {
		status := s.resolveStatus(p, sig.Injuries)
		playsToday := sig.PlaysToday(p.Team)

		if change, ok := s.evaluate(p, status, playsToday); ok {
			changes = append(changes, change)
		}
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return priorityRank(changes[i].Priority) < priorityRank(changes[j].Priority)
	})
	return changes
}

// resolveStatus prefers the scraped injury report over the roster slot tag,
// taking the worse of the two when both exist.
func (s *lineupService) resolveStatus(p models.Player, injuries map[string]models.InjuryRecord) models.InjuryStatus {
	status := normalizeStatus(p.InjuryStatus)
	if rec, ok := injuries[p.Name]; ok {
		reported := normalizeStatus(rec.Status)
		if statusScore(reported) < statusScore(status) {
			status = reported
		}
	}
	return status
}

func (s *lineupService) evaluate(p models.Player, status models.InjuryStatus, playsToday bool) (models.LineupChange, bool) {
	switch p.Slot {
	case models.SlotIR:
		// Promote off IR only on an explicit positive signal. Absence of
		// injury data is not evidence of health.
		positive := status == models.StatusQuestionable ||
			status == models.StatusProbable ||
			status == models.StatusDayToDay ||
			explicitlyActive(p)
		if positive {
			reason := fmt.Sprintf("%s is %s and eligible to return from IR", p.Name, status)
			if explicitlyActive(p) {
				reason = fmt.Sprintf("%s is listed active and eligible to return from IR", p.Name)
			}
			return models.LineupChange{
				Type:         models.ChangeIRToActive,
				Priority:     models.PriorityHigh,
				PlayerName:   p.Name,
				Reason:       reason,
				InjuryStatus: status,
				PlaysToday:   playsToday,
			}, true
		}

	case models.SlotBench:
		if playsToday && status != models.StatusOut && status != models.StatusSuspended {
			return models.LineupChange{
				Type:         models.ChangeActivate,
				Priority:     models.PriorityMedium,
				PlayerName:   p.Name,
				Reason:       fmt.Sprintf("%s plays today and is available", p.Name),
				InjuryStatus: status,
				PlaysToday:   true,
			}, true
		}

	case models.SlotActive:
		if status == models.StatusOut {
			return models.LineupChange{
				Type:         models.ChangeActiveToIR,
				Priority:     models.PriorityHigh,
				PlayerName:   p.Name,
				Reason:       fmt.Sprintf("%s is OUT and can be stashed on IR", p.Name),
				InjuryStatus: status,
				PlaysToday:   playsToday,
			}, true
		}
		if status == models.StatusSuspended {
			// Suspensions are not IR eligible.
			return models.LineupChange{
				Type:         models.ChangeBench,
				Priority:     models.PriorityHigh,
				PlayerName:   p.Name,
				Reason:       fmt.Sprintf("%s is suspended and should be benched", p.Name),
				InjuryStatus: status,
				PlaysToday:   playsToday,
			}, true
		}
	}

	return models.LineupChange{}, false
}

// explicitlyActive reports an affirmative ACTIVE tag on the roster slot,
// as opposed to an absent or unknown status.
func explicitlyActive(p models.Player) bool {
	upper := strings.ToUpper(strings.TrimSpace(string(p.InjuryStatus)))
	return upper == "ACTIVE"
}

func priorityRank(p models.Priority) int {
	switch p {
	case models.PriorityHigh:
		return 0
	case models.PriorityMedium:
		return 1
	default:
		return 2
	}
}
