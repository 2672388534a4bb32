package worker

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

type mockProduction struct {
	averages map[string]float64
}

func (m *mockProduction) AverageProduction(ctx context.Context, playerName string, from, to time.Time) (float64, bool, error) {
	avg, ok := m.averages[playerName]
	return avg, ok, nil
}

func TestLabelerGradesOldDecisions(t *testing.T) {
	store := &mockDecisionStore{
		saved: []models.DecisionRecord{
			{ID: "old", DecisionDate: time.Now().Add(-10 * 24 * time.Hour), PlayerAdded: "Good Add", PlayerDropped: "Bad Drop"},
			{ID: "fresh", DecisionDate: time.Now().Add(-2 * 24 * time.Hour), PlayerAdded: "A", PlayerDropped: "B"},
		},
	}
	stats := &mockProduction{averages: map[string]float64{
		"Good Add": 28.5,
		"Bad Drop": 14.0,
	}}

	labeler := NewLabeler(store, stats, zap.NewNop())
	labeled, err := labeler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if labeled != 1 {
		t.Errorf("labeled %d decisions, want 1 (only the week-old row)", labeled)
	}
	if impact, ok := store.outcomes["old"]; !ok || impact != 14.5 {
		t.Errorf("outcomes[old] = %v (ok=%v), want impact 14.5", impact, ok)
	}
	if _, ok := store.outcomes["fresh"]; ok {
		t.Error("two-day-old decision should not be graded yet")
	}
}

func TestLabelerSkipsMissingProduction(t *testing.T) {
	store := &mockDecisionStore{
		saved: []models.DecisionRecord{
			{ID: "gone", DecisionDate: time.Now().Add(-10 * 24 * time.Hour), PlayerAdded: "Waived Guy", PlayerDropped: "Bad Drop"},
		},
	}
	stats := &mockProduction{averages: map[string]float64{"Bad Drop": 14.0}}

	labeler := NewLabeler(store, stats, zap.NewNop())
	labeled, err := labeler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if labeled != 0 {
		t.Errorf("labeled %d, want 0 when the added player has no data", labeled)
	}
	if len(store.outcomes) != 0 {
		t.Error("no outcome should be written on incomplete data")
	}
}
