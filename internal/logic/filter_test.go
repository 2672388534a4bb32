package logic

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

func rec(drop, add string, impact, addConsistency, addSchedule float64) models.Recommendation {
	return models.Recommendation{
		DropName:        drop,
		AddName:         add,
		ProjectedImpact: impact,
		AddAnalysis: models.PlayerAnalysis{
			PlayerName:       add,
			ConsistencyScore: addConsistency,
			ScheduleScore:    addSchedule,
		},
	}
}

func baseContext() models.StrategicContext {
	return models.StrategicContext{
		Playoff: models.PlayoffContext{Strategy: models.StrategyWinNow},
		Matchup: models.MatchupState{
			Winning:        false,
			ScoreDiff:      -1,
			DaysRemaining:  4,
			CanWin:         true,
			Recommendation: models.PostureAggressive,
		},
		Acquisitions: models.AcquisitionBudget{Remaining: 5, WeeklyLimit: 7, CanAfford: true},
	}
}

func TestFilterZeroBudgetSuppressesAllSwaps(t *testing.T) {
	f := NewStrategicFilter(zap.NewNop())

	ctx := baseContext()
	ctx.Acquisitions.Remaining = 0
	ctx.Acquisitions.CanAfford = false

	recs := []models.Recommendation{rec("A", "B", 55, 80, 90)}
	got, msg := f.Apply(recs, ctx)

	if len(got) != 0 {
		t.Errorf("got %d swaps, want 0 with zero budget regardless of impact", len(got))
	}
	if !strings.Contains(msg, "No acquisitions") {
		t.Errorf("message = %q, want budget explanation", msg)
	}
}

// Winning by 5 with one day left: hold the budget.
func TestFilterSaveBudgetWhenWinningLate(t *testing.T) {
	f := NewStrategicFilter(zap.NewNop())

	ctx := baseContext()
	ctx.Matchup.Winning = true
	ctx.Matchup.ScoreDiff = 5
	ctx.Matchup.DaysRemaining = 1

	got, msg := f.Apply([]models.Recommendation{rec("A", "B", 40, 70, 80)}, ctx)

	if len(got) != 0 {
		t.Errorf("got %d swaps, want 0 when winning big late", len(got))
	}
	if !strings.Contains(msg, "Save") {
		t.Errorf("message = %q, want a budget-saving note", msg)
	}
}

func TestFilterLastDayLosingBiasesNextWeek(t *testing.T) {
	f := NewStrategicFilter(zap.NewNop())

	ctx := baseContext()
	ctx.Matchup.DaysRemaining = 0
	ctx.Matchup.Winning = false

	recs := []models.Recommendation{
		rec("A", "Light Slate", 50, 70, 30),
		rec("B", "Heavy Slate", 25, 70, 95),
		rec("C", "Medium Slate", 35, 70, 60),
		rec("D", "Another", 30, 70, 50),
	}

	got, msg := f.Apply(recs, ctx)
	if len(got) != 3 {
		t.Fatalf("got %d swaps, want top 3", len(got))
	}
	if got[0].AddName != "Heavy Slate" {
		t.Errorf("first swap = %q, want the best upcoming schedule first", got[0].AddName)
	}
	if !strings.Contains(msg, "next week") {
		t.Errorf("message = %q, want a next-week note", msg)
	}
}

func TestFilterPlayoffsConsistencyGate(t *testing.T) {
	f := NewStrategicFilter(zap.NewNop())

	ctx := baseContext()
	ctx.Playoff.Strategy = models.StrategyPlayoffs

	recs := []models.Recommendation{
		rec("A", "Steady One", 40, 80, 50),
		rec("B", "Steady Two", 35, 70, 50),
		rec("C", "Steady Three", 30, 65, 50),
		rec("D", "Boom Bust", 60, 50, 50),
	}

	got, _ := f.Apply(recs, ctx)
	if len(got) != 3 {
		t.Fatalf("got %d swaps, want the 3 consistent ones", len(got))
	}
	for _, r := range got {
		if r.AddAnalysis.ConsistencyScore <= 60 {
			t.Errorf("inconsistent add %q survived playoff gate", r.AddName)
		}
	}
}

func TestFilterPlayoffsFallbackWhenFewConsistent(t *testing.T) {
	f := NewStrategicFilter(zap.NewNop())

	ctx := baseContext()
	ctx.Playoff.Strategy = models.StrategyPlayoffs

	recs := []models.Recommendation{
		rec("A", "Boom One", 60, 50, 50),
		rec("B", "Boom Two", 50, 50, 50),
		rec("C", "Steady", 40, 80, 50),
		rec("D", "Boom Three", 30, 50, 50),
	}

	got, msg := f.Apply(recs, ctx)
	if len(got) != 3 {
		t.Fatalf("got %d swaps, want unfiltered top 3 fallback", len(got))
	}
	if got[0].AddName != "Boom One" {
		t.Errorf("fallback should preserve impact order, got %q first", got[0].AddName)
	}
	if !strings.Contains(msg, "few consistent") {
		t.Errorf("message = %q, want fallback explanation", msg)
	}
}

func TestFilterComfortableLeadRaisesImpactBar(t *testing.T) {
	f := NewStrategicFilter(zap.NewNop())

	ctx := baseContext()
	ctx.Matchup.Winning = true
	ctx.Matchup.ScoreDiff = 2
	ctx.Matchup.DaysRemaining = 4

	recs := []models.Recommendation{
		rec("A", "Big Gain", 35, 70, 50),
		rec("B", "Small Gain", 15, 70, 50),
	}

	got, _ := f.Apply(recs, ctx)
	if len(got) != 1 || got[0].AddName != "Big Gain" {
		t.Errorf("got %v, want only the impact>20 move while leading", got)
	}
}

func TestFilterPassThroughWhenTrailingMidweek(t *testing.T) {
	f := NewStrategicFilter(zap.NewNop())

	recs := []models.Recommendation{
		rec("A", "B", 15, 70, 50),
		rec("C", "D", 12, 70, 50),
	}

	got, msg := f.Apply(recs, baseContext())
	if len(got) != 2 {
		t.Errorf("got %d swaps, want all through while trailing midweek", len(got))
	}
	if msg != "" {
		t.Errorf("message = %q, want empty", msg)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	f := NewStrategicFilter(zap.NewNop())

	got, msg := f.Apply(nil, baseContext())
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
	if msg == "" {
		t.Error("want an explanatory message for no candidates")
	}
}
