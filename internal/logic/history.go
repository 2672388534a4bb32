package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

// ErrDecisionNotFound is returned when a decision id has no stored row.
var ErrDecisionNotFound = errors.New("decision not found")

type historyService struct {
	pg              PgPool
	suppressionDays int
	logger          *zap.SugaredLogger
}

func NewHistoryService(pg PgPool, suppressionDays int, logger *zap.Logger) HistoryService {
	return &historyService{
		pg:              pg,
		suppressionDays: suppressionDays,
		logger:          logger.Sugar(),
	}
}

// SaveDecision appends one decision row and returns its id. The row is
// joined best-effort to the league's most recent matchup; a missing matchup
// leaves the column null rather than failing the save.
func (s *historyService) SaveDecision(ctx context.Context, rec models.DecisionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.DecisionDate.IsZero() {
		rec.DecisionDate = time.Now()
	}

	if rec.MatchupID == nil {
		var matchupID int64
		err := s.pg.QueryRow(ctx, `
			SELECT id FROM matchup_history
			WHERE league_id = $1
			ORDER BY season_year DESC, week_number DESC
			LIMIT 1
		`, rec.LeagueID).Scan(&matchupID)
		if err == nil {
			rec.MatchupID = &matchupID
		} else if err != pgx.ErrNoRows {
			s.logger.Warnw("matchup lookup failed, saving decision without join",
				"league_id", rec.LeagueID, "error", err)
		}
	}

	_, err := s.pg.Exec(ctx, `
		INSERT INTO decisions_enhanced (
			id, decision_date, league_id, matchup_id, action_type,
			player_dropped, player_added, ai_recommendation, user_choice,
			ai_confidence, reasoning, add_expert_rank, drop_expert_rank,
			user_feedback
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, rec.ID, rec.DecisionDate, rec.LeagueID, rec.MatchupID, rec.ActionType,
		rec.PlayerDropped, rec.PlayerAdded, rec.AIRecommended, rec.UserChoice,
		rec.AIConfidence, rec.Reasoning, rec.AddExpertRank, rec.DropExpertRank,
		rec.UserFeedback)
	if err != nil {
		return "", fmt.Errorf("save decision: %w", err)
	}
	return rec.ID, nil
}

// SaveMatchupResult upserts the completed week keyed by league, week and
// season. Concurrent batch runs land on the same row instead of duplicating.
func (s *historyService) SaveMatchupResult(ctx context.Context, rec models.MatchupRecord) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO matchup_history (
			league_id, league_name, week_number, season_year,
			my_team_name, opponent_team_name, final_score_me, final_score_opp,
			tied_cats, won, strategy_used, date_completed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (league_id, week_number, season_year) DO UPDATE SET
			final_score_me = EXCLUDED.final_score_me,
			final_score_opp = EXCLUDED.final_score_opp,
			tied_cats = EXCLUDED.tied_cats,
			won = EXCLUDED.won,
			strategy_used = EXCLUDED.strategy_used,
			date_completed = EXCLUDED.date_completed
	`, rec.LeagueID, rec.LeagueName, rec.Week, rec.Season,
		rec.MyTeamName, rec.OppTeamName, rec.FinalScoreMe, rec.FinalScoreOpp,
		rec.TiedCats, rec.Won, rec.StrategyUsed, rec.DateCompleted)
	if err != nil {
		return fmt.Errorf("save matchup result: %w", err)
	}
	return nil
}

func (s *historyService) RecordUserChoice(ctx context.Context, decisionID string, choice models.UserChoice, feedback string) error {
	tag, err := s.pg.Exec(ctx, `
		UPDATE decisions_enhanced
		SET user_choice = $2, user_feedback = $3
		WHERE id = $1
	`, decisionID, choice, feedback)
	if err != nil {
		return fmt.Errorf("record user choice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("decision %s: %w", decisionID, ErrDecisionNotFound)
	}
	return nil
}

// IsSuppressed checks the two rejection patterns: the exact pair was turned
// down recently, or the user has repeatedly refused to drop this player.
func (s *historyService) IsSuppressed(ctx context.Context, leagueID, dropName, addName string) (bool, error) {
	var exactCount int
	err := s.pg.QueryRow(ctx, `
		SELECT COUNT(*) FROM decisions_enhanced
		WHERE league_id = $1 AND player_dropped = $2 AND player_added = $3
		  AND user_choice = 'REJECTED'
		  AND decision_date > NOW() - make_interval(days => $4)
	`, leagueID, dropName, addName, s.suppressionDays).Scan(&exactCount)
	if err != nil {
		return false, fmt.Errorf("suppression lookup: %w", err)
	}
	if exactCount > 0 {
		return true, nil
	}

	var dropRejections int
	err = s.pg.QueryRow(ctx, `
		SELECT COUNT(*) FROM decisions_enhanced
		WHERE league_id = $1 AND player_dropped = $2
		  AND user_choice = 'REJECTED'
		  AND decision_date > NOW() - make_interval(days => $3)
	`, leagueID, dropName, s.suppressionDays).Scan(&dropRejections)
	if err != nil {
		return false, fmt.Errorf("suppression lookup: %w", err)
	}
	return dropRejections >= 3, nil
}

// LabeledDecisions returns outcome-labeled rows from the trailing window,
// the classifier's training set.
func (s *historyService) LabeledDecisions(ctx context.Context, leagueID string, windowDays int) ([]models.DecisionRecord, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, decision_date, ai_confidence, add_expert_rank,
		       drop_expert_rank, was_good_decision
		FROM decisions_enhanced
		WHERE league_id = $1
		  AND was_good_decision IS NOT NULL
		  AND decision_date > NOW() - make_interval(days => $2)
		ORDER BY decision_date DESC
	`, leagueID, windowDays)
	if err != nil {
		return nil, fmt.Errorf("labeled decisions: %w", err)
	}
	defer rows.Close()

	var out []models.DecisionRecord
	for rows.Next() {
		var rec models.DecisionRecord
		rec.LeagueID = leagueID
		if err := rows.Scan(&rec.ID, &rec.DecisionDate, &rec.AIConfidence,
			&rec.AddExpertRank, &rec.DropExpertRank, &rec.WasGoodDecision); err != nil {
			return nil, fmt.Errorf("scan labeled decision: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Insights summarizes recommendation quality over the whole retained
// history. DataAvailable is false until any decisions exist.
func (s *historyService) Insights(ctx context.Context, leagueID string) (models.DecisionInsights, error) {
	var insights models.DecisionInsights

	var good, labeled int
	err := s.pg.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE user_choice = 'ACCEPTED'),
		       COUNT(*) FILTER (WHERE user_choice = 'REJECTED'),
		       COUNT(*) FILTER (WHERE was_good_decision = TRUE),
		       COUNT(*) FILTER (WHERE was_good_decision IS NOT NULL)
		FROM decisions_enhanced
		WHERE league_id = $1
	`, leagueID).Scan(&insights.TotalDecisions, &insights.Accepted,
		&insights.Rejected, &good, &labeled)
	if err != nil {
		return insights, fmt.Errorf("insights: %w", err)
	}

	insights.DataAvailable = insights.TotalDecisions > 0
	if insights.TotalDecisions > 0 {
		insights.AcceptanceRate = float64(insights.Accepted) / float64(insights.TotalDecisions)
	}
	if labeled > 0 {
		insights.OverallSuccess = float64(good) / float64(labeled)
	}

	// AI accuracy: how often accepted recommendations were graded good.
	var acceptedGood, acceptedLabeled int
	err = s.pg.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE was_good_decision = TRUE),
		       COUNT(*) FILTER (WHERE was_good_decision IS NOT NULL)
		FROM decisions_enhanced
		WHERE league_id = $1 AND user_choice = 'ACCEPTED'
	`, leagueID).Scan(&acceptedGood, &acceptedLabeled)
	if err != nil {
		return insights, fmt.Errorf("insights: %w", err)
	}
	if acceptedLabeled > 0 {
		insights.AIAccuracy = float64(acceptedGood) / float64(acceptedLabeled)
	}

	return insights, nil
}

// SimilarMatchups lists past completed weeks against the same opponent.
func (s *historyService) SimilarMatchups(ctx context.Context, leagueID, opponent string, limit int) ([]models.SimilarMatchup, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.pg.Query(ctx, `
		SELECT week_number, season_year, final_score_me, final_score_opp,
		       tied_cats, won, strategy_used, date_completed
		FROM matchup_history
		WHERE league_id = $1 AND opponent_team_name = $2
		ORDER BY date_completed DESC
		LIMIT $3
	`, leagueID, opponent, limit)
	if err != nil {
		return nil, fmt.Errorf("similar matchups: %w", err)
	}
	defer rows.Close()

	var out []models.SimilarMatchup
	for rows.Next() {
		var m models.SimilarMatchup
		var me, opp, tied int
		if err := rows.Scan(&m.Week, &m.Season, &me, &opp, &tied,
			&m.Won, &m.Strategy, &m.Date); err != nil {
			return nil, fmt.Errorf("scan similar matchup: %w", err)
		}
		m.Score = fmt.Sprintf("%d-%d-%d", me, opp, tied)
		out = append(out, m)
	}
	return out, rows.Err()
}

// PerformanceSummary aggregates the last few completed weeks.
func (s *historyService) PerformanceSummary(ctx context.Context, leagueID string, weeks int) (models.PerformanceSummary, error) {
	if weeks <= 0 {
		weeks = 5
	}

	rows, err := s.pg.Query(ctx, `
		SELECT week_number, final_score_me, final_score_opp, won
		FROM matchup_history
		WHERE league_id = $1
		ORDER BY season_year DESC, week_number DESC
		LIMIT $2
	`, leagueID, weeks)
	if err != nil {
		return models.PerformanceSummary{}, fmt.Errorf("performance summary: %w", err)
	}
	defer rows.Close()

	var summary models.PerformanceSummary
	bestDiff, worstDiff := -1000, 1000
	var totalDiff int

	for rows.Next() {
		var week, me, opp int
		var won bool
		if err := rows.Scan(&week, &me, &opp, &won); err != nil {
			return summary, fmt.Errorf("scan performance row: %w", err)
		}
		summary.WeeksTracked++
		if won {
			summary.Wins++
		} else {
			summary.Losses++
		}
		diff := me - opp
		totalDiff += diff
		if diff > bestDiff {
			bestDiff = diff
			summary.BestWeek = fmt.Sprintf("Week %d (%d-%d)", week, me, opp)
		}
		if diff < worstDiff {
			worstDiff = diff
			summary.WorstWeek = fmt.Sprintf("Week %d (%d-%d)", week, me, opp)
		}
	}
	if err := rows.Err(); err != nil {
		return summary, err
	}

	if summary.WeeksTracked > 0 {
		summary.WinRate = float64(summary.Wins) / float64(summary.WeeksTracked)
		summary.AvgScoreDiff = float64(totalDiff) / float64(summary.WeeksTracked)
	}
	return summary, nil
}

// SaveExpertSnapshot writes one ranking row. Conflicting writes for the same
// (player, source, date) keep the first value; snapshots are immutable.
func (s *historyService) SaveExpertSnapshot(ctx context.Context, snap models.ExpertRankingSnapshot) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO expert_rankings (
			player_name, source, ranking_date, overall_rank, start_sit_rating
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_name, source, ranking_date) DO NOTHING
	`, snap.PlayerName, snap.Source, snap.RankingDate, snap.OverallRank, snap.StartSitGrade)
	if err != nil {
		return fmt.Errorf("save expert snapshot: %w", err)
	}
	return nil
}

func (s *historyService) ExpertSnapshots(ctx context.Context, source string, date time.Time) (map[string]models.ExpertRank, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT player_name, overall_rank, start_sit_rating
		FROM expert_rankings
		WHERE source = $1 AND ranking_date = $2
	`, source, date)
	if err != nil {
		return nil, fmt.Errorf("expert snapshots: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.ExpertRank)
	for rows.Next() {
		var name string
		var rank models.ExpertRank
		if err := rows.Scan(&name, &rank.Rank, &rank.StartSitGrade); err != nil {
			return nil, fmt.Errorf("scan expert snapshot: %w", err)
		}
		out[name] = rank
	}
	return out, rows.Err()
}

// UnlabeledDecisions lists accepted decisions old enough to grade but not
// yet graded, for the backfill job.
func (s *historyService) UnlabeledDecisions(ctx context.Context, olderThan time.Time, limit int) ([]models.DecisionRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pg.Query(ctx, `
		SELECT id, decision_date, league_id, player_dropped, player_added
		FROM decisions_enhanced
		WHERE was_good_decision IS NULL
		  AND user_choice = 'ACCEPTED'
		  AND decision_date < $1
		ORDER BY decision_date ASC
		LIMIT $2
	`, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("unlabeled decisions: %w", err)
	}
	defer rows.Close()

	var out []models.DecisionRecord
	for rows.Next() {
		var rec models.DecisionRecord
		if err := rows.Scan(&rec.ID, &rec.DecisionDate, &rec.LeagueID,
			&rec.PlayerDropped, &rec.PlayerAdded); err != nil {
			return nil, fmt.Errorf("scan unlabeled decision: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ApplyOutcome grades one decision. The WHERE clause keeps an already
// graded row untouched so the label is written exactly once.
func (s *historyService) ApplyOutcome(ctx context.Context, decisionID string, addedAvg, droppedAvg float64) error {
	impact := addedAvg - droppedAvg
	good := impact > 0

	tag, err := s.pg.Exec(ctx, `
		UPDATE decisions_enhanced
		SET added_player_avg_7d = $2,
		    dropped_player_avg_7d = $3,
		    impact_score = $4,
		    was_good_decision = $5
		WHERE id = $1 AND was_good_decision IS NULL
	`, decisionID, addedAvg, droppedAvg, impact, good)
	if err != nil {
		return fmt.Errorf("apply outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		s.logger.Debugw("outcome already applied or decision missing", "decision_id", decisionID)
	}
	return nil
}
