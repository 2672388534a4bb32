package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fantasybrain/roster-api/internal/models"
)

type MockPgPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	ExecCalls []string
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockPgRows{}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockPgRow{Error: pgx.ErrNoRows}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.ExecCalls = append(m.ExecCalls, sql)
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

// MockPgRow feeds canned values into a single-row Scan.
type MockPgRow struct {
	Values []any
	Error  error
}

func (r *MockPgRow) Scan(dest ...any) error {
	if r.Error != nil {
		return r.Error
	}
	for i, v := range r.Values {
		if i >= len(dest) {
			break
		}
		assign(dest[i], v)
	}
	return nil
}

// MockPgRows replays a fixed grid of rows.
type MockPgRows struct {
	Rows [][]any
	curr int
}

func (r *MockPgRows) Close()                                       {}
func (r *MockPgRows) Err() error                                   { return nil }
func (r *MockPgRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *MockPgRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *MockPgRows) Next() bool {
	r.curr++
	return r.curr <= len(r.Rows)
}
func (r *MockPgRows) Scan(dest ...any) error {
	row := r.Rows[r.curr-1]
	for i, v := range row {
		if i >= len(dest) {
			break
		}
		assign(dest[i], v)
	}
	return nil
}
func (r *MockPgRows) Values() ([]any, error) { return nil, nil }
func (r *MockPgRows) RawValues() [][]byte    { return nil }
func (r *MockPgRows) Conn() *pgx.Conn        { return nil }

func assign(dest, v any) {
	switch ptr := dest.(type) {
	case *string:
		if s, ok := v.(string); ok {
			*ptr = s
		}
	case *int:
		if n, ok := v.(int); ok {
			*ptr = n
		}
	case *int64:
		if n, ok := v.(int64); ok {
			*ptr = n
		}
	case *float64:
		if f, ok := v.(float64); ok {
			*ptr = f
		}
	case *bool:
		if b, ok := v.(bool); ok {
			*ptr = b
		}
	case *time.Time:
		if ts, ok := v.(time.Time); ok {
			*ptr = ts
		}
	case **int:
		if n, ok := v.(int); ok {
			*ptr = &n
		}
	case **bool:
		if b, ok := v.(bool); ok {
			*ptr = &b
		}
	case **float64:
		if f, ok := v.(float64); ok {
			*ptr = &f
		}
	case *models.UserChoice:
		if s, ok := v.(string); ok {
			*ptr = models.UserChoice(s)
		}
	case *models.PlayoffStrategy:
		if s, ok := v.(string); ok {
			*ptr = models.PlayoffStrategy(s)
		}
	}
}

// mockHistory is an in-memory HistoryService for predictor and orchestrator
// tests.
type mockHistory struct {
	labeled    []models.DecisionRecord
	labeledErr error

	saved      []models.DecisionRecord
	saveErr    error
	choices    map[string]models.UserChoice
	suppressed map[string]bool // keyed "drop|add"
}

func (m *mockHistory) SaveDecision(ctx context.Context, rec models.DecisionRecord) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	if rec.ID == "" {
		rec.ID = "generated-id"
	}
	m.saved = append(m.saved, rec)
	return rec.ID, nil
}

func (m *mockHistory) SaveMatchupResult(ctx context.Context, rec models.MatchupRecord) error {
	return nil
}

func (m *mockHistory) RecordUserChoice(ctx context.Context, decisionID string, choice models.UserChoice, feedback string) error {
	if m.choices == nil {
		m.choices = map[string]models.UserChoice{}
	}
	m.choices[decisionID] = choice
	return nil
}

func (m *mockHistory) IsSuppressed(ctx context.Context, leagueID, dropName, addName string) (bool, error) {
	return m.suppressed[dropName+"|"+addName], nil
}

func (m *mockHistory) LabeledDecisions(ctx context.Context, leagueID string, windowDays int) ([]models.DecisionRecord, error) {
	return m.labeled, m.labeledErr
}

func (m *mockHistory) Insights(ctx context.Context, leagueID string) (models.DecisionInsights, error) {
	return models.DecisionInsights{}, nil
}

func (m *mockHistory) SimilarMatchups(ctx context.Context, leagueID, opponent string, limit int) ([]models.SimilarMatchup, error) {
	return nil, nil
}

func (m *mockHistory) PerformanceSummary(ctx context.Context, leagueID string, weeks int) (models.PerformanceSummary, error) {
	return models.PerformanceSummary{}, nil
}

func (m *mockHistory) SaveExpertSnapshot(ctx context.Context, snap models.ExpertRankingSnapshot) error {
	return nil
}

func (m *mockHistory) ExpertSnapshots(ctx context.Context, source string, date time.Time) (map[string]models.ExpertRank, error) {
	return nil, nil
}

func (m *mockHistory) UnlabeledDecisions(ctx context.Context, olderThan time.Time, limit int) ([]models.DecisionRecord, error) {
	return nil, nil
}

func (m *mockHistory) ApplyOutcome(ctx context.Context, decisionID string, addedAvg, droppedAvg float64) error {
	return nil
}
