package models

import "time"

// AnalysisRequest is the full input to one recommendation run: the roster
// and matchup snapshot from the provider plus the collaborator signals.
// MovesUsed is the caller's best-known weekly acquisition count; the
// strategy analyzer may reset it when it detects a fresh scoring period.
type AnalysisRequest struct {
	Snapshot   MatchupSnapshot `json:"snapshot" validate:"required"`
	MyRoster   []Player        `json:"my_roster" validate:"required,dive"`
	OppRoster  []Player        `json:"opp_roster"`
	FreeAgents []Player        `json:"free_agents"`
	Signals    Signals         `json:"signals"`
	MovesUsed  int             `json:"moves_used"`
	Now        time.Time       `json:"-"`
}

// ChoiceRequest records what the user did with a stored decision.
type ChoiceRequest struct {
	Choice   UserChoice `json:"choice" validate:"required,oneof=ACCEPTED REJECTED UNKNOWN"`
	Feedback string     `json:"feedback"`
}
