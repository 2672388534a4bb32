package models

// InjuryRecord is one entry from the injury-report collaborator. The scraper
// returns clean structured records; raw HTML never reaches this core.
type InjuryRecord struct {
	Status     InjuryStatus `json:"status"`
	Team       string       `json:"team"`
	InjuryType string       `json:"injury_type"`
}

// TeamSchedule describes a pro team's upcoming slate.
type TeamSchedule struct {
	GamesNext7        int `json:"games_next_7"`
	FavorableMatchups int `json:"favorable_matchups"`
}

// ExpertRank is one player's consensus ranking from the expert-data
// collaborator, cached for 24h.
type ExpertRank struct {
	Rank          int    `json:"rank"`
	StartSitGrade string `json:"start_sit_rating"`
}

// Signals bundles every external input the scorer consumes. All maps may be
// empty; scoring degrades to documented neutral defaults.
type Signals struct {
	Injuries   map[string]InjuryRecord `json:"injuries"`
	Schedule   map[string]TeamSchedule `json:"schedule"`
	Expert     map[string]ExpertRank   `json:"expert"`
	TodayGames map[string]bool         `json:"today_games"`
	Categories []string                `json:"categories"`
}

// PlaysToday reports whether a pro team has a game today.
func (s Signals) PlaysToday(team string) bool {
	return s.TodayGames[team]
}

// MatchupSnapshot is the current head-to-head category scoreboard from the
// provider collaborator.
type MatchupSnapshot struct {
	LeagueID    string `json:"league_id"`
	LeagueName  string `json:"league_name"`
	Week        int    `json:"week"`
	Season      int    `json:"season"`
	MyTeamName  string `json:"my_team_name"`
	OppTeamName string `json:"opp_team_name"`
	MyWins      int    `json:"my_wins"`
	OppWins     int    `json:"opp_wins"`
	TiedCats    int    `json:"tied_cats"`
	IsHome      bool   `json:"is_home"`
	CurrentWeek int    `json:"current_week"`
	Standing    int    `json:"standing"`
}
