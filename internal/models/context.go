package models

// PlayoffStrategy drives how aggressively the filter treats candidates.
type PlayoffStrategy string

const (
	StrategyWinNow       PlayoffStrategy = "WIN_NOW"
	StrategyBuildPlayoff PlayoffStrategy = "BUILD_PLAYOFF"
	StrategyPlayoffs     PlayoffStrategy = "PLAYOFFS"
)

// MatchupPosture is the recommended intensity for the current matchup.
type MatchupPosture string

const (
	PostureAggressive   MatchupPosture = "AGGRESSIVE"
	PostureConservative MatchupPosture = "CONSERVATIVE"
	PosturePunt         MatchupPosture = "PUNT"
)

// Advantage says which side holds today's power edge.
type Advantage string

const (
	AdvantageMe   Advantage = "ME"
	AdvantageOpp  Advantage = "OPP"
	AdvantageTied Advantage = "TIED"
)

// PlayoffContext is the seasonal posture.
type PlayoffContext struct {
	Strategy        PlayoffStrategy `json:"strategy"`
	WeeksToPlayoffs int             `json:"weeks_to_playoffs"`
	Standing        int             `json:"current_standing"`
	PlayoffBound    bool            `json:"playoff_bound"`
	CurrentWeek     int             `json:"current_week"`
}

// MatchupState is the in-week scoreboard posture.
type MatchupState struct {
	Winning        bool           `json:"winning"`
	CatsAhead      int            `json:"categories_ahead"`
	CatsBehind     int            `json:"categories_behind"`
	CatsTied       int            `json:"categories_tied"`
	ScoreDiff      int            `json:"score_diff"`
	DaysRemaining  int            `json:"days_remaining"`
	CanWin         bool           `json:"can_win"`
	Recommendation MatchupPosture `json:"recommendation"`
}

// AcquisitionBudget tracks the weekly transaction allowance.
type AcquisitionBudget struct {
	Used        int    `json:"moves_used"`
	Remaining   int    `json:"moves_remaining"`
	WeeklyLimit int    `json:"weekly_limit"`
	CanAfford   bool   `json:"can_afford"`
	IsWeekStart bool   `json:"is_week_start"`
	Warning     string `json:"warning,omitempty"`
}

// TodayBalance compares both rosters' firepower for today's games only.
type TodayBalance struct {
	MyPlayersToday  int       `json:"my_players_today"`
	OppPlayersToday int       `json:"opp_players_today"`
	MyPower         float64   `json:"my_power_today"`
	OppPower        float64   `json:"opp_power_today"`
	PowerDiff       float64   `json:"power_diff"`
	Advantage       Advantage `json:"advantage"`
}

// StrategicContext is the full derived decision context for one analysis run.
type StrategicContext struct {
	Playoff      PlayoffContext    `json:"playoff"`
	Matchup      MatchupState      `json:"matchup"`
	Acquisitions AcquisitionBudget `json:"acquisitions"`
	Today        TodayBalance      `json:"today"`
}
