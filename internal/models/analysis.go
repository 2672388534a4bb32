package models

// ReplacementInfo describes why a player was flagged as a temporary
// injury-replacement opportunity.
type ReplacementInfo struct {
	IsReplacement   bool   `json:"is_replacement"`
	Replacing       string `json:"replacing,omitempty"`
	InjuryType      string `json:"injury_type,omitempty"`
	EstimatedReturn string `json:"estimated_return,omitempty"`
	TimelineMessage string `json:"timeline_message,omitempty"`
}

// PlayerAnalysis is the multi-dimensional score produced by the scorer.
// Derived per run, never persisted. All sub-scores are 0-100 except trend,
// which is -100..+100 before total-score normalization.
type PlayerAnalysis struct {
	PlayerName       string          `json:"player_name"`
	HealthScore      float64         `json:"health_score"`
	TrendScore       float64         `json:"trend_score"`
	ScheduleScore    float64         `json:"schedule_score"`
	ConsistencyScore float64         `json:"consistency_score"`
	ExpertScore      float64         `json:"expert_score"`
	TotalScore       float64         `json:"total_score"`
	Issues           []string        `json:"issues"`
	Opportunities    []string        `json:"opportunities"`
	IsReplacement    bool            `json:"is_injury_replacement"`
	Replacement      ReplacementInfo `json:"replacement_info"`
}
