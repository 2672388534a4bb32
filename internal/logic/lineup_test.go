package logic

import (
	"testing"

	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

func newTestLineup() LineupService {
	return NewLineupService(zap.NewNop())
}

func TestLineupIRPromotion(t *testing.T) {
	svc := newTestLineup()

	tests := []struct {
		name   string
		status models.InjuryStatus
		want   bool
	}{
		{"questionable ready", models.StatusQuestionable, true},
		{"probable ready", models.StatusProbable, true},
		{"day to day ready", models.StatusDayToDay, true},
		{"explicitly active", "ACTIVE", true},
		{"still out", models.StatusOut, false},
		{"no information", models.StatusHealthy, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := []models.Player{
				{Name: "Stash", Team: "DEN", Slot: models.SlotIR, InjuryStatus: tt.status},
			}
			changes := svc.Recommend(roster, models.Signals{})

			got := len(changes) == 1 && changes[0].Type == models.ChangeIRToActive
			if got != tt.want {
				t.Errorf("IR promotion = %v, want %v (changes=%v)", got, tt.want, changes)
			}
		})
	}
}

func TestLineupBenchActivation(t *testing.T) {
	svc := newTestLineup()

	sig := models.Signals{TodayGames: map[string]bool{"DEN": true}}
	roster := []models.Player{
		{Name: "Plays", Team: "DEN", Slot: models.SlotBench},
		{Name: "Idle", Team: "MIA", Slot: models.SlotBench},
		{Name: "Hurt", Team: "DEN", Slot: models.SlotBench, InjuryStatus: models.StatusOut},
	}

	changes := svc.Recommend(roster, sig)
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1: %v", len(changes), changes)
	}
	if changes[0].PlayerName != "Plays" || changes[0].Type != models.ChangeActivate {
		t.Errorf("unexpected change: %+v", changes[0])
	}
	if !changes[0].PlaysToday {
		t.Error("PlaysToday should be true for an activation")
	}
}

func TestLineupActiveDemotions(t *testing.T) {
	svc := newTestLineup()

	roster := []models.Player{
		{Name: "Injured", Team: "DEN", Slot: models.SlotActive, InjuryStatus: models.StatusOut},
		{Name: "Banned", Team: "DEN", Slot: models.SlotActive, InjuryStatus: models.StatusSuspended},
		{Name: "Resting", Team: "MIA", Slot: models.SlotActive}, // not playing today is not enough
	}

	changes := svc.Recommend(roster, models.Signals{})
	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2: %v", len(changes), changes)
	}

	byName := map[string]models.LineupChange{}
	for _, c := range changes {
		byName[c.PlayerName] = c
	}
	if byName["Injured"].Type != models.ChangeActiveToIR {
		t.Errorf("OUT player: got %s, want %s", byName["Injured"].Type, models.ChangeActiveToIR)
	}
	if byName["Banned"].Type != models.ChangeBench {
		t.Errorf("suspended player: got %s, want %s (suspensions are not IR eligible)", byName["Banned"].Type, models.ChangeBench)
	}
}

func TestLineupUsesWorseReportedStatus(t *testing.T) {
	svc := newTestLineup()

	// Roster slot says nothing, scraped report says OUT.
	roster := []models.Player{
		{Name: "Late Scratch", Team: "DEN", Slot: models.SlotActive},
	}
	sig := models.Signals{
		Injuries: map[string]models.InjuryRecord{
			"Late Scratch": {Status: models.StatusOut, Team: "DEN"},
		},
	}

	changes := svc.Recommend(roster, sig)
	if len(changes) != 1 || changes[0].Type != models.ChangeActiveToIR {
		t.Fatalf("expected an IR move driven by the injury report, got %v", changes)
	}
}

func TestLineupPriorityOrdering(t *testing.T) {
	svc := newTestLineup()

	sig := models.Signals{TodayGames: map[string]bool{"DEN": true}}
	roster := []models.Player{
		{Name: "Bench Guy", Team: "DEN", Slot: models.SlotBench},
		{Name: "Out Guy", Team: "DEN", Slot: models.SlotActive, InjuryStatus: models.StatusOut},
	}

	changes := svc.Recommend(roster, sig)
	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}
	if changes[0].Priority != models.PriorityHigh {
		t.Errorf("first change priority = %s, want HIGH first", changes[0].Priority)
	}
}
