package models

// InjuryStatus is the health designation attached to a player, either by the
// fantasy provider or by the injury-report collaborator.
type InjuryStatus string

const (
	StatusHealthy      InjuryStatus = ""
	StatusProbable     InjuryStatus = "PROBABLE"
	StatusDayToDay     InjuryStatus = "DAY_TO_DAY"
	StatusQuestionable InjuryStatus = "QUESTIONABLE"
	StatusDoubtful     InjuryStatus = "DOUBTFUL"
	StatusOut          InjuryStatus = "OUT"
	StatusSuspended    InjuryStatus = "SUSPENDED"
)

// LineupSlot is where a player currently sits on a fantasy roster.
type LineupSlot string

const (
	SlotActive LineupSlot = "ACTIVE"
	SlotBench  LineupSlot = "BENCH"
	SlotIR     LineupSlot = "IR"
)

// AcquisitionState distinguishes immediately-acquirable free agents from
// players stuck in a waiver claim window or already rostered.
type AcquisitionState string

const (
	AcqFreeAgent AcquisitionState = "FREE_AGENT"
	AcqWaivers   AcquisitionState = "WAIVERS"
	AcqRostered  AcquisitionState = "ROSTERED"
)

// StatLine holds per-game averages for one sampling window.
type StatLine struct {
	Points     float64 `json:"pts"`
	Rebounds   float64 `json:"reb"`
	Assists    float64 `json:"ast"`
	Steals     float64 `json:"stl"`
	Blocks     float64 `json:"blk"`
	ThreesMade float64 `json:"3ptm"`
	FGPct      float64 `json:"fg_pct"`
	FTPct      float64 `json:"ft_pct"`
	Turnovers  float64 `json:"to"`
	Minutes    float64 `json:"min"`
	Games      int     `json:"games"`
}

// IsZero reports whether no stats were recorded for the window.
func (s StatLine) IsZero() bool {
	return s.Games == 0 && s.Points == 0 && s.Minutes == 0 &&
		s.Rebounds == 0 && s.Assists == 0
}

// Category returns the value of a named scoring category.
func (s StatLine) Category(cat string) float64 {
	switch cat {
	case CatPoints:
		return s.Points
	case CatRebounds:
		return s.Rebounds
	case CatAssists:
		return s.Assists
	case CatSteals:
		return s.Steals
	case CatBlocks:
		return s.Blocks
	case CatThrees:
		return s.ThreesMade
	case CatFGPct:
		return s.FGPct
	case CatFTPct:
		return s.FTPct
	case CatTurnovers:
		return s.Turnovers
	default:
		return 0
	}
}

// Head-to-head category names as they appear in league settings.
const (
	CatPoints    = "PTS"
	CatRebounds  = "REB"
	CatAssists   = "AST"
	CatSteals    = "STL"
	CatBlocks    = "BLK"
	CatThrees    = "3PTM"
	CatFGPct     = "FG%"
	CatFTPct     = "FT%"
	CatTurnovers = "TO"
)

// DefaultCategories is the standard nine-category league setup.
var DefaultCategories = []string{
	CatPoints, CatRebounds, CatAssists, CatSteals, CatBlocks,
	CatThrees, CatFGPct, CatFTPct, CatTurnovers,
}

// IsPercentageCategory reports whether a category is a ratio rather than a
// counting stat. Ratio categories cannot be projected by games-remaining
// multiplication.
func IsPercentageCategory(cat string) bool {
	return cat == CatFGPct || cat == CatFTPct
}

// PlayerStats bundles the sampling windows the provider exposes. Any window
// may be empty for players with short track records.
type PlayerStats struct {
	SeasonTotal StatLine `json:"season_total"`
	Projected   StatLine `json:"projected"`
	Last7       StatLine `json:"last_7"`
	Last15      StatLine `json:"last_15"`
	Last30      StatLine `json:"last_30"`
}

// Baseline resolves the reference stat line used wherever a single
// representative window is needed, resolved once at ingestion instead of
// re-deriving fallback chains throughout scoring.
// Fallback order: season total, then projection, then last 15.
func (p PlayerStats) Baseline() StatLine {
	if !p.SeasonTotal.IsZero() {
		return p.SeasonTotal
	}
	if !p.Projected.IsZero() {
		return p.Projected
	}
	return p.Last15
}

// Player is the roster/pool snapshot supplied fresh on each analysis run.
// Read-only to the core.
type Player struct {
	ID           int              `json:"id"`
	Name         string           `json:"name" validate:"required"`
	Team         string           `json:"team"`
	Slot         LineupSlot       `json:"slot"`
	InjuryStatus InjuryStatus     `json:"injury_status"`
	Acquisition  AcquisitionState `json:"acquisition"`
	Stats        PlayerStats      `json:"stats"`
}
