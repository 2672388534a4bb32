package logic

import (
	"fmt"
	"strings"

	"github.com/fantasybrain/roster-api/internal/models"
)

// ExplainRecommendation renders one swap as markdown for chat surfaces.
func ExplainRecommendation(rec models.Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### %s Drop %s, Add %s\n\n", priorityBadge(rec.Priority), rec.DropName, rec.AddName)
	fmt.Fprintf(&b, "**Projected impact:** %+.1f points | **Confidence:** %d%%\n\n", rec.ProjectedImpact, rec.Confidence)

	fmt.Fprintf(&b, "**%s** (score %.1f)\n", rec.DropName, rec.DropAnalysis.TotalScore)
	writeScoreLine(&b, rec.DropAnalysis)
	for _, issue := range rec.DropAnalysis.Issues {
		fmt.Fprintf(&b, "- %s\n", issue)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "**%s** (score %.1f)\n", rec.AddName, rec.AddAnalysis.TotalScore)
	writeScoreLine(&b, rec.AddAnalysis)
	for _, opp := range rec.AddAnalysis.Opportunities {
		fmt.Fprintf(&b, "- %s\n", opp)
	}

	if rec.AddAnalysis.IsReplacement && rec.AddAnalysis.Replacement.TimelineMessage != "" {
		fmt.Fprintf(&b, "\n> %s\n", rec.AddAnalysis.Replacement.TimelineMessage)
	}

	if rec.Prediction != nil {
		fmt.Fprintf(&b, "\n**Outlook:** %.0f%% chance this works out. %s\n",
			rec.Prediction.PredictedSuccess*100, rec.Prediction.Reasoning)
	}

	return b.String()
}

func writeScoreLine(b *strings.Builder, a models.PlayerAnalysis) {
	fmt.Fprintf(b, "Health %.0f | Trend %+.0f | Schedule %.0f | Consistency %.0f | Expert %.0f\n",
		a.HealthScore, a.TrendScore, a.ScheduleScore, a.ConsistencyScore, a.ExpertScore)
}

func priorityBadge(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "🔴"
	case models.PriorityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

// BuildStrategicMessage summarizes the derived context in one short
// paragraph, prepended to the recommendation list.
func BuildStrategicMessage(ctx models.StrategicContext, filterNote string) string {
	var parts []string

	m := ctx.Matchup
	switch {
	case m.DaysRemaining == 0:
		parts = append(parts, fmt.Sprintf("Final day of the matchup (%d-%d-%d).",
			m.CatsAhead, m.CatsBehind, m.CatsTied))
	case m.Winning:
		parts = append(parts, fmt.Sprintf("Leading %d-%d-%d with %d day(s) left.",
			m.CatsAhead, m.CatsBehind, m.CatsTied, m.DaysRemaining))
	case m.ScoreDiff == 0:
		parts = append(parts, fmt.Sprintf("Tied %d-%d-%d with %d day(s) left.",
			m.CatsAhead, m.CatsBehind, m.CatsTied, m.DaysRemaining))
	default:
		parts = append(parts, fmt.Sprintf("Trailing %d-%d-%d with %d day(s) left.",
			m.CatsAhead, m.CatsBehind, m.CatsTied, m.DaysRemaining))
	}

	if !m.CanWin {
		parts = append(parts, "This week looks out of reach; positioning for the next matchup.")
	}

	switch ctx.Playoff.Strategy {
	case models.StrategyPlayoffs:
		parts = append(parts, "Playoff week: every category counts.")
	case models.StrategyBuildPlayoff:
		parts = append(parts, fmt.Sprintf("Playoffs start in %d week(s); building the postseason roster.",
			ctx.Playoff.WeeksToPlayoffs))
	}

	if today := ctx.Today; today.Advantage == models.AdvantageOpp {
		parts = append(parts, fmt.Sprintf("Opponent has the stronger slate today (%d vs %d players).",
			today.OppPlayersToday, today.MyPlayersToday))
	}

	if w := ctx.Acquisitions.Warning; w != "" {
		parts = append(parts, w+".")
	}
	if filterNote != "" {
		parts = append(parts, filterNote)
	}

	return strings.Join(parts, " ")
}
