package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/fantasybrain/roster-api/internal/models"
)

// seeder posts a canned analysis request against a running instance, as a
// quick end-to-end smoke check after deploys.
func main() {
	apiURL := flag.String("url", "http://localhost:8080/api/v1/analyze", "analyze endpoint")
	league := flag.String("league", "smoke-league", "league id to analyze under")
	flag.Parse()

	req := models.AnalysisRequest{
		Snapshot: models.MatchupSnapshot{
			LeagueID:    *league,
			LeagueName:  "Smoke Test League",
			Week:        10,
			Season:      time.Now().Year(),
			CurrentWeek: 10,
			MyTeamName:  "Seeders",
			OppTeamName: "Opponents",
			MyWins:      3,
			OppWins:     4,
			TiedCats:    1,
			Standing:    5,
		},
		MyRoster: []models.Player{
			{Name: "Steady Starter", Team: "BOS", Slot: models.SlotActive,
				Stats: models.PlayerStats{
					Last7:  models.StatLine{Points: 32, Minutes: 33, Games: 3},
					Last15: models.StatLine{Points: 30, Minutes: 32, Games: 7},
				}},
			{Name: "Fading Veteran", Team: "MIA", Slot: models.SlotActive,
				Stats: models.PlayerStats{
					Last7:  models.StatLine{Points: 9, Minutes: 18, Games: 3},
					Last15: models.StatLine{Points: 16, Minutes: 27, Games: 7},
				}},
			{Name: "Hurt Forward", Team: "DEN", Slot: models.SlotActive,
				InjuryStatus: models.StatusOut},
		},
		FreeAgents: []models.Player{
			{Name: "Hot Pickup", Team: "BOS",
				Stats: models.PlayerStats{
					Last7:  models.StatLine{Points: 24, Minutes: 31, Games: 4},
					Last15: models.StatLine{Points: 17, Minutes: 24, Games: 8},
				}},
		},
		Signals: models.Signals{
			Schedule: map[string]models.TeamSchedule{
				"BOS": {GamesNext7: 4, FavorableMatchups: 2},
				"MIA": {GamesNext7: 2},
				"DEN": {GamesNext7: 3, FavorableMatchups: 1},
			},
			TodayGames: map[string]bool{"BOS": true, "MIA": true},
			Expert: map[string]models.ExpertRank{
				"Steady Starter": {Rank: 28},
				"Hot Pickup":     {Rank: 85},
				"Fading Veteran": {Rank: 240},
			},
		},
		MovesUsed: 2,
	}

	payload, err := json.Marshal(req)
	if err != nil {
		log.Fatalf("marshal request: %v", err)
	}

	httpReq, err := http.NewRequest("POST", *apiURL, bytes.NewBuffer(payload))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		log.Fatalf("send request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Response: %s\n", string(body))

	if resp.StatusCode == http.StatusOK {
		fmt.Println("analyze round trip OK")
	} else {
		fmt.Println("analyze round trip FAILED")
	}
}
