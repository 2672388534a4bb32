package models

// MatchupProjection is the win-probability estimator's output.
type MatchupProjection struct {
	WinProbability float64            `json:"win_probability"`
	PredictedScore string             `json:"predicted_score"` // "W-L-T"
	KeyFactors     []string           `json:"key_factors"`
	CategoryProbs  map[string]float64 `json:"category_probs"`
	ProjectedMine  map[string]float64 `json:"projected_totals_me"`
	ProjectedOpp   map[string]float64 `json:"projected_totals_opp"`
}

// WinProbInput carries everything the estimator needs for one matchup.
// Remaining games are per player name.
type WinProbInput struct {
	CurrentMine   map[string]float64 `json:"current_totals_me"`
	CurrentOpp    map[string]float64 `json:"current_totals_opp"`
	RemainingMine map[string]int     `json:"remaining_games_me"`
	RemainingOpp  map[string]int     `json:"remaining_games_opp"`
	RosterMine    []Player           `json:"roster_me"`
	RosterOpp     []Player           `json:"roster_opp"`
	Categories    []string           `json:"categories"`
}
