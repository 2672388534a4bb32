package models

// Priority buckets a recommendation by projected impact.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Recommendation is one proposed add/drop swap. Transient; persisted only
// once the user records a choice.
type Recommendation struct {
	DecisionID      string         `json:"decision_id,omitempty"`
	Priority        Priority       `json:"priority"`
	DropName        string         `json:"drop_name"`
	AddName         string         `json:"add_name"`
	DropPlayer      *Player        `json:"drop_player,omitempty"`
	AddPlayer       *Player        `json:"add_player,omitempty"`
	DropAnalysis    PlayerAnalysis `json:"drop_analysis"`
	AddAnalysis     PlayerAnalysis `json:"add_analysis"`
	ProjectedImpact float64        `json:"projected_impact"`
	Confidence      int            `json:"confidence"`
	Prediction      *Prediction    `json:"prediction,omitempty"`
	Explanation     string         `json:"explanation,omitempty"`
}

// LineupChangeType is a roster slot transition.
type LineupChangeType string

const (
	ChangeIRToActive LineupChangeType = "IR_TO_ACTIVE"
	ChangeActivate   LineupChangeType = "ACTIVATE"
	ChangeBench      LineupChangeType = "BENCH"
	ChangeActiveToIR LineupChangeType = "ACTIVE_TO_IR"
)

// LineupChange is one suggested slot move. Lineup moves never consume
// acquisition budget.
type LineupChange struct {
	Type         LineupChangeType `json:"type"`
	Priority     Priority         `json:"priority"`
	PlayerName   string           `json:"player_name"`
	Reason       string           `json:"reason"`
	InjuryStatus InjuryStatus     `json:"injury_status"`
	PlaysToday   bool             `json:"plays_today"`
}

// Prediction is the learning engine's verdict on a proposed swap.
type Prediction struct {
	PredictedSuccess float64 `json:"predicted_success"`
	Confidence       float64 `json:"confidence"`
	Reasoning        string  `json:"reasoning"`
	Method           string  `json:"method"` // "rule_based" or "classifier"
}

// AnalysisResponse is the single orchestration entry point's output.
type AnalysisResponse struct {
	Context          StrategicContext `json:"context"`
	Recommendations  []Recommendation `json:"recommendations"`
	LineupChanges    []LineupChange   `json:"lineup_changes"`
	StrategicMessage string           `json:"strategic_message"`
}
