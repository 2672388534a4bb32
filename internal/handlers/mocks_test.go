package handlers

import (
	"context"
	"time"

	"github.com/fantasybrain/roster-api/internal/models"
)

// MockRecommendationService
type MockRecommendationService struct {
	GetDailyRecommendationsFunc func(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResponse, error)
}

func (m *MockRecommendationService) GetDailyRecommendations(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResponse, error) {
	if m.GetDailyRecommendationsFunc != nil {
		return m.GetDailyRecommendationsFunc(ctx, req)
	}
	return &models.AnalysisResponse{}, nil
}

// MockWinProbService
type MockWinProbService struct {
	CalculateFunc func(in models.WinProbInput) models.MatchupProjection
}

func (m *MockWinProbService) Calculate(in models.WinProbInput) models.MatchupProjection {
	if m.CalculateFunc != nil {
		return m.CalculateFunc(in)
	}
	return models.MatchupProjection{}
}

// MockHistoryService
type MockHistoryService struct {
	SaveDecisionFunc       func(ctx context.Context, rec models.DecisionRecord) (string, error)
	SaveMatchupResultFunc  func(ctx context.Context, rec models.MatchupRecord) error
	RecordUserChoiceFunc   func(ctx context.Context, decisionID string, choice models.UserChoice, feedback string) error
	InsightsFunc           func(ctx context.Context, leagueID string) (models.DecisionInsights, error)
	SimilarMatchupsFunc    func(ctx context.Context, leagueID, opponent string, limit int) ([]models.SimilarMatchup, error)
	PerformanceSummaryFunc func(ctx context.Context, leagueID string, weeks int) (models.PerformanceSummary, error)
}

func (m *MockHistoryService) SaveDecision(ctx context.Context, rec models.DecisionRecord) (string, error) {
	if m.SaveDecisionFunc != nil {
		return m.SaveDecisionFunc(ctx, rec)
	}
	return "mock-id", nil
}

func (m *MockHistoryService) SaveMatchupResult(ctx context.Context, rec models.MatchupRecord) error {
	if m.SaveMatchupResultFunc != nil {
		return m.SaveMatchupResultFunc(ctx, rec)
	}
	return nil
}

func (m *MockHistoryService) RecordUserChoice(ctx context.Context, decisionID string, choice models.UserChoice, feedback string) error {
	if m.RecordUserChoiceFunc != nil {
		return m.RecordUserChoiceFunc(ctx, decisionID, choice, feedback)
	}
	return nil
}

func (m *MockHistoryService) IsSuppressed(ctx context.Context, leagueID, dropName, addName string) (bool, error) {
	return false, nil
}

func (m *MockHistoryService) LabeledDecisions(ctx context.Context, leagueID string, windowDays int) ([]models.DecisionRecord, error) {
	return nil, nil
}

func (m *MockHistoryService) Insights(ctx context.Context, leagueID string) (models.DecisionInsights, error) {
	if m.InsightsFunc != nil {
		return m.InsightsFunc(ctx, leagueID)
	}
	return models.DecisionInsights{}, nil
}

func (m *MockHistoryService) SimilarMatchups(ctx context.Context, leagueID, opponent string, limit int) ([]models.SimilarMatchup, error) {
	if m.SimilarMatchupsFunc != nil {
		return m.SimilarMatchupsFunc(ctx, leagueID, opponent, limit)
	}
	return nil, nil
}

func (m *MockHistoryService) PerformanceSummary(ctx context.Context, leagueID string, weeks int) (models.PerformanceSummary, error) {
	if m.PerformanceSummaryFunc != nil {
		return m.PerformanceSummaryFunc(ctx, leagueID, weeks)
	}
	return models.PerformanceSummary{}, nil
}

func (m *MockHistoryService) SaveExpertSnapshot(ctx context.Context, snap models.ExpertRankingSnapshot) error {
	return nil
}

func (m *MockHistoryService) ExpertSnapshots(ctx context.Context, source string, date time.Time) (map[string]models.ExpertRank, error) {
	return nil, nil
}

func (m *MockHistoryService) UnlabeledDecisions(ctx context.Context, olderThan time.Time, limit int) ([]models.DecisionRecord, error) {
	return nil, nil
}

func (m *MockHistoryService) ApplyOutcome(ctx context.Context, decisionID string, addedAvg, droppedAvg float64) error {
	return nil
}
