package logic

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

func newTestHistory(pg PgPool) HistoryService {
	return NewHistoryService(pg, 30, zap.NewNop())
}

func TestSaveDecisionGeneratesIDAndJoinsMatchup(t *testing.T) {
	var insertArgs []any
	pg := &MockPgPool{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &MockPgRow{Values: []any{int64(42)}}
		},
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			insertArgs = args
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}

	svc := newTestHistory(pg)
	id, err := svc.SaveDecision(context.Background(), models.DecisionRecord{
		LeagueID:      "league-1",
		ActionType:    "ADD_DROP",
		PlayerDropped: "Old Guy",
		PlayerAdded:   "New Guy",
		AIConfidence:  80,
	})
	if err != nil {
		t.Fatalf("SaveDecision: %v", err)
	}
	if id == "" {
		t.Error("expected a generated decision id")
	}

	// matchup_id is the 4th insert arg.
	matchupID, ok := insertArgs[3].(*int64)
	if !ok || matchupID == nil || *matchupID != 42 {
		t.Errorf("matchup join arg = %v, want *int64(42)", insertArgs[3])
	}
}

func TestSaveDecisionWithoutMatchup(t *testing.T) {
	var insertArgs []any
	pg := &MockPgPool{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &MockPgRow{Error: pgx.ErrNoRows}
		},
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			insertArgs = args
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}

	svc := newTestHistory(pg)
	if _, err := svc.SaveDecision(context.Background(), models.DecisionRecord{LeagueID: "league-1"}); err != nil {
		t.Fatalf("SaveDecision should tolerate a missing matchup: %v", err)
	}
	if ptr, _ := insertArgs[3].(*int64); ptr != nil {
		t.Errorf("matchup_id = %v, want nil without a matchup", *ptr)
	}
}

func TestSaveMatchupResultUpserts(t *testing.T) {
	pg := &MockPgPool{}
	svc := newTestHistory(pg)

	err := svc.SaveMatchupResult(context.Background(), models.MatchupRecord{
		LeagueID: "league-1", Week: 10, Season: 2026,
		FinalScoreMe: 5, FinalScoreOpp: 4, Won: true,
		StrategyUsed: models.StrategyWinNow, DateCompleted: time.Now(),
	})
	if err != nil {
		t.Fatalf("SaveMatchupResult: %v", err)
	}
	if len(pg.ExecCalls) != 1 || !strings.Contains(pg.ExecCalls[0], "ON CONFLICT (league_id, week_number, season_year)") {
		t.Errorf("expected an upsert on the natural key, got %v", pg.ExecCalls)
	}
}

func TestRecordUserChoiceUnknownID(t *testing.T) {
	pg := &MockPgPool{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}
	svc := newTestHistory(pg)

	err := svc.RecordUserChoice(context.Background(), "missing", models.ChoiceAccepted, "")
	if err == nil {
		t.Error("expected an error for an unknown decision id")
	}
}

func TestIsSuppressedExactPair(t *testing.T) {
	calls := 0
	pg := &MockPgPool{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			calls++
			if calls == 1 {
				return &MockPgRow{Values: []any{1}} // exact pair rejected once
			}
			return &MockPgRow{Values: []any{0}}
		},
	}
	svc := newTestHistory(pg)

	suppressed, err := svc.IsSuppressed(context.Background(), "league-1", "X", "Y")
	if err != nil {
		t.Fatalf("IsSuppressed: %v", err)
	}
	if !suppressed {
		t.Error("exact rejected pair should be suppressed")
	}
}

func TestIsSuppressedRepeatedDrop(t *testing.T) {
	calls := 0
	pg := &MockPgPool{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			calls++
			if calls == 1 {
				return &MockPgRow{Values: []any{0}} // no exact pair
			}
			return &MockPgRow{Values: []any{3}} // drop rejected three times
		},
	}
	svc := newTestHistory(pg)

	suppressed, err := svc.IsSuppressed(context.Background(), "league-1", "X", "Z")
	if err != nil {
		t.Fatalf("IsSuppressed: %v", err)
	}
	if !suppressed {
		t.Error("thrice-rejected drop should suppress any pairing")
	}
}

func TestIsSuppressedCleanSlate(t *testing.T) {
	pg := &MockPgPool{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &MockPgRow{Values: []any{0}}
		},
	}
	svc := newTestHistory(pg)

	suppressed, err := svc.IsSuppressed(context.Background(), "league-1", "X", "Z")
	if err != nil {
		t.Fatalf("IsSuppressed: %v", err)
	}
	if suppressed {
		t.Error("pair with no rejection history should not be suppressed")
	}
}

func TestLabeledDecisionsScan(t *testing.T) {
	now := time.Now()
	pg := &MockPgPool{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &MockPgRows{Rows: [][]any{
				{"id-1", now, 80, 40, 180, true},
				{"id-2", now, 55, 150, 60, false},
			}}, nil
		},
	}
	svc := newTestHistory(pg)

	recs, err := svc.LabeledDecisions(context.Background(), "league-1", 60)
	if err != nil {
		t.Fatalf("LabeledDecisions: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].WasGoodDecision == nil || !*recs[0].WasGoodDecision {
		t.Error("first record should be labeled good")
	}
	if recs[0].AddExpertRank == nil || *recs[0].AddExpertRank != 40 {
		t.Errorf("AddExpertRank = %v, want 40", recs[0].AddExpertRank)
	}
}

func TestInsightsRates(t *testing.T) {
	calls := 0
	pg := &MockPgPool{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			calls++
			if calls == 1 {
				// total, accepted, rejected, good, labeled
				return &MockPgRow{Values: []any{10, 6, 4, 5, 8}}
			}
			// accepted good, accepted labeled
			return &MockPgRow{Values: []any{4, 5}}
		},
	}
	svc := newTestHistory(pg)

	insights, err := svc.Insights(context.Background(), "league-1")
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if !insights.DataAvailable {
		t.Error("DataAvailable should be true with decisions present")
	}
	if insights.AcceptanceRate != 0.6 {
		t.Errorf("AcceptanceRate = %v, want 0.6", insights.AcceptanceRate)
	}
	if insights.OverallSuccess != 0.625 {
		t.Errorf("OverallSuccess = %v, want 0.625", insights.OverallSuccess)
	}
	if insights.AIAccuracy != 0.8 {
		t.Errorf("AIAccuracy = %v, want 0.8", insights.AIAccuracy)
	}
}

func TestApplyOutcomeOnlyOnce(t *testing.T) {
	var seenSQL string
	pg := &MockPgPool{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			seenSQL = sql
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}
	svc := newTestHistory(pg)

	// Zero rows affected (already labeled) is not an error.
	if err := svc.ApplyOutcome(context.Background(), "id-1", 22.5, 14.0); err != nil {
		t.Fatalf("ApplyOutcome: %v", err)
	}
	if !strings.Contains(seenSQL, "was_good_decision IS NULL") {
		t.Error("update must guard against overwriting an existing label")
	}
}

func TestSaveExpertSnapshotImmutable(t *testing.T) {
	pg := &MockPgPool{}
	svc := newTestHistory(pg)

	err := svc.SaveExpertSnapshot(context.Background(), models.ExpertRankingSnapshot{
		PlayerName: "Nikola Jokic", Source: "consensus",
		RankingDate: time.Now(), OverallRank: 1,
	})
	if err != nil {
		t.Fatalf("SaveExpertSnapshot: %v", err)
	}
	if !strings.Contains(pg.ExecCalls[0], "DO NOTHING") {
		t.Error("snapshot insert must keep the first value on conflict")
	}
}
