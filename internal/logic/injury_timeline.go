package logic

import (
	"fmt"
	"strings"

	"github.com/fantasybrain/roster-api/internal/models"
)

// TimelineEstimate is an expected recovery window for one injury.
type TimelineEstimate struct {
	MinDays     int
	MaxDays     int
	Description string
	Confidence  string // "high", "medium", "low"
	Severity    float64
}

// injuryTimeline is one entry in the recovery table.
type injuryTimeline struct {
	minDays int
	maxDays int
	desc    string
}

// Typical NBA recovery windows in days, keyed by injury-type keyword.
// Keys are matched as substrings of the report text, longest key first, so
// "high ankle sprain" wins over "ankle".
var injuryTimelines = map[string]injuryTimeline{
	"bone bruise":         {7, 14, "1-2 weeks"},
	"bone contusion":      {7, 14, "1-2 weeks"},
	"fracture":            {21, 60, "3-8 weeks"},
	"high ankle sprain":   {14, 42, "2-6 weeks"},
	"ankle sprain":        {7, 21, "1-3 weeks"},
	"ankle":               {7, 21, "1-3 weeks"},
	"knee soreness":       {3, 10, "3-10 days"},
	"knee":                {14, 42, "2-6 weeks"},
	"mcl":                 {21, 42, "3-6 weeks"},
	"acl":                 {180, 365, "season (6-12 months)"},
	"meniscus":            {28, 84, "4-12 weeks"},
	"patellar tendinitis": {14, 42, "2-6 weeks"},
	"hamstring":           {14, 28, "2-4 weeks"},
	"quad":                {14, 28, "2-4 weeks"},
	"calf":                {10, 21, "10 days - 3 weeks"},
	"groin":               {14, 28, "2-4 weeks"},
	"strain":              {7, 21, "1-3 weeks"},
	"back":                {7, 28, "1-4 weeks"},
	"shoulder":            {14, 42, "2-6 weeks"},
	"hand":                {7, 21, "1-3 weeks"},
	"wrist":               {14, 42, "2-6 weeks"},
	"finger":              {7, 21, "1-3 weeks"},
	"thumb":               {21, 42, "3-6 weeks"},
	"plantar fasciitis":   {14, 90, "2 weeks - 3 months"},
	"foot":                {14, 42, "2-6 weeks"},
	"toe":                 {7, 21, "1-3 weeks"},
	"concussion":          {7, 21, "1-3 weeks"},
	"illness":             {3, 7, "3-7 days"},
	"covid":               {7, 14, "1-2 weeks"},
	"rest":                {1, 7, "1-7 days"},
	"suspension":          {1, 7, "1-7 days"},
}

var statusSeverity = map[models.InjuryStatus]float64{
	models.StatusOut:          1.0,
	models.StatusDoubtful:     0.8,
	models.StatusQuestionable: 0.5,
	models.StatusDayToDay:     0.3,
	models.StatusProbable:     0.1,
}

// TimelineEstimator maps injury report text to an expected absence window.
type TimelineEstimator struct{}

func NewTimelineEstimator() *TimelineEstimator {
	return &TimelineEstimator{}
}

// EstimateReturn estimates how long a player will be unavailable. Unknown
// injury text falls back to a generic 1-2 week window with low confidence.
func (e *TimelineEstimator) EstimateReturn(status models.InjuryStatus, injuryText string) TimelineEstimate {
	est := TimelineEstimate{
		MinDays:     7,
		MaxDays:     14,
		Description: "1-2 weeks",
		Confidence:  "low",
		Severity:    0.5,
	}

	if sev, ok := statusSeverity[status]; ok {
		est.Severity = sev
	}

	if injuryText != "" {
		lower := strings.ToLower(injuryText)
		if tl, ok := matchTimeline(lower); ok {
			est.MinDays = tl.minDays
			est.MaxDays = tl.maxDays
			est.Description = tl.desc
			est.Confidence = "high"
		}
	}

	// Day-to-day designations mean short-term regardless of injury type.
	if status == models.StatusDayToDay && est.MaxDays > 14 {
		est.MaxDays = 14
		est.Description = fmt.Sprintf("%d-14 days", est.MinDays)
		est.Confidence = "medium"
	}

	// OUT with no recognized injury text: at least a week.
	if status == models.StatusOut && est.Confidence == "low" {
		est.MinDays = 7
		est.Description = "1+ weeks"
	}

	return est
}

// matchTimeline finds the longest keyword contained in the report text.
func matchTimeline(lower string) (injuryTimeline, bool) {
	var bestKey string
	var best injuryTimeline
	for key, tl := range injuryTimelines {
		if strings.Contains(lower, key) && len(key) > len(bestKey) {
			bestKey = key
			best = tl
		}
	}
	return best, bestKey != ""
}

// IsLongTerm reports whether an injury is expected to last beyond four weeks.
func (e *TimelineEstimator) IsLongTerm(status models.InjuryStatus, injuryText string) bool {
	return e.EstimateReturn(status, injuryText).MinDays > 28
}

// TimelineMessage renders a one-line human-readable return estimate.
func (e *TimelineEstimator) TimelineMessage(status models.InjuryStatus, injuryText, playerName string) string {
	est := e.EstimateReturn(status, injuryText)

	var msg string
	if playerName != "" {
		msg = fmt.Sprintf("%s expected back in %s", playerName, est.Description)
	} else {
		msg = fmt.Sprintf("estimated return: %s", est.Description)
	}
	if injuryText != "" {
		msg += fmt.Sprintf(" (%s)", injuryText)
	}
	return msg
}
