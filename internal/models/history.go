package models

import "time"

// UserChoice records what the user actually did with a recommendation.
type UserChoice string

const (
	ChoiceAccepted UserChoice = "ACCEPTED"
	ChoiceRejected UserChoice = "REJECTED"
	ChoiceUnknown  UserChoice = "UNKNOWN"
)

// DecisionRecord is an append-only row in decisions_enhanced. The outcome
// columns (AddedAvg7d, DroppedAvg7d, ImpactScore, WasGoodDecision) are
// backfilled once by the labeling job roughly seven days after the decision
// and never silently overwritten afterwards.
type DecisionRecord struct {
	ID             string     `json:"id"`
	DecisionDate   time.Time  `json:"decision_date"`
	LeagueID       string     `json:"league_id"`
	MatchupID      *int64     `json:"matchup_id,omitempty"`
	ActionType     string     `json:"action_type"`
	PlayerDropped  string     `json:"player_dropped"`
	PlayerAdded    string     `json:"player_added"`
	AIRecommended  string     `json:"ai_recommendation"`
	UserChoice     UserChoice `json:"user_choice"`
	AIConfidence   int        `json:"ai_confidence"`
	Reasoning      string     `json:"reasoning"`
	AddExpertRank  *int       `json:"add_expert_rank,omitempty"`
	DropExpertRank *int       `json:"drop_expert_rank,omitempty"`

	AddedAvg7d      *float64 `json:"added_avg_7d,omitempty"`
	DroppedAvg7d    *float64 `json:"dropped_avg_7d,omitempty"`
	ImpactScore     *float64 `json:"impact_score,omitempty"`
	WasGoodDecision *bool    `json:"was_good_decision,omitempty"`
	UserFeedback    string   `json:"user_feedback,omitempty"`
}

// MatchupRecord is one completed (or in-progress) head-to-head week,
// unique per (league, week, season).
type MatchupRecord struct {
	ID            int64           `json:"id"`
	LeagueID      string          `json:"league_id"`
	LeagueName    string          `json:"league_name"`
	Week          int             `json:"week_number"`
	Season        int             `json:"season_year"`
	MyTeamName    string          `json:"my_team_name"`
	OppTeamName   string          `json:"opponent_team_name"`
	FinalScoreMe  int             `json:"final_score_me"`
	FinalScoreOpp int             `json:"final_score_opp"`
	TiedCats      int             `json:"tied_cats"`
	Won           bool            `json:"won"`
	StrategyUsed  PlayoffStrategy `json:"strategy_used"`
	DateCompleted time.Time       `json:"date_completed"`
}

// ExpertRankingSnapshot is a cached expert consensus row, immutable once
// saved for a given (player, source, date).
type ExpertRankingSnapshot struct {
	PlayerName    string    `json:"player_name"`
	Source        string    `json:"source"`
	RankingDate   time.Time `json:"ranking_date"`
	OverallRank   int       `json:"overall_rank"`
	StartSitGrade string    `json:"start_sit_rating"`
}

// DecisionInsights summarizes how well past recommendations held up.
type DecisionInsights struct {
	AIAccuracy     float64 `json:"ai_accuracy"`
	OverallSuccess float64 `json:"overall_success_rate"`
	TotalDecisions int     `json:"total_decisions"`
	Accepted       int     `json:"accepted"`
	Rejected       int     `json:"rejected"`
	AcceptanceRate float64 `json:"acceptance_rate"`
	DataAvailable  bool    `json:"data_available"`
}

// SimilarMatchup is one historical result against the same opponent.
type SimilarMatchup struct {
	Week     int             `json:"week"`
	Season   int             `json:"season"`
	Score    string          `json:"score"`
	Won      bool            `json:"won"`
	Strategy PlayoffStrategy `json:"strategy"`
	Date     time.Time       `json:"date"`
}

// PerformanceSummary aggregates the last few completed weeks.
type PerformanceSummary struct {
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"win_rate"`
	AvgScoreDiff float64 `json:"avg_score_diff"`
	BestWeek     string  `json:"best_week,omitempty"`
	WorstWeek    string  `json:"worst_week,omitempty"`
	WeeksTracked int     `json:"weeks_tracked"`
}
