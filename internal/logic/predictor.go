package logic

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/models"
)

const (
	methodRuleBased  = "rule_based"
	methodClassifier = "classifier"
)

// NewPredictor selects the best available predictor for a league. With
// enough labeled history a classifier is trained; on thin data or any
// training failure the rule-based predictor is returned instead.
func NewPredictor(ctx context.Context, history HistoryService, leagueID string, minSamples, windowDays int, logger *zap.Logger) Predictor {
	sugar := logger.Sugar()
	rules := NewRuleBasedPredictor()

	if history == nil {
		return rules
	}

	labeled, err := history.LabeledDecisions(ctx, leagueID, windowDays)
	if err != nil {
		sugar.Warnw("labeled decision load failed, using rule-based predictor", "error", err)
		return rules
	}
	if len(labeled) < minSamples {
		sugar.Infow("not enough labeled decisions for a classifier",
			"league_id", leagueID, "samples", len(labeled), "required", minSamples)
		return rules
	}

	clf, err := TrainClassifier(labeled, rules)
	if err != nil {
		sugar.Warnw("classifier training failed, using rule-based predictor", "error", err)
		return rules
	}
	sugar.Infow("trained decision classifier",
		"league_id", leagueID, "samples", len(labeled), "accuracy", clf.TrainingAccuracy)
	return clf
}

// RuleBasedPredictor grades a swap with a step function of the score gap.
// Always available; needs no history.
type RuleBasedPredictor struct{}

func NewRuleBasedPredictor() *RuleBasedPredictor {
	return &RuleBasedPredictor{}
}

func (r *RuleBasedPredictor) Method() string { return methodRuleBased }

func (r *RuleBasedPredictor) Predict(add, drop models.PlayerAnalysis, aiConfidence int, matchupWinning bool) models.Prediction {
	diff := add.TotalScore - drop.TotalScore

	var success float64
	switch {
	case diff > 30:
		success = 0.85
	case diff > 20:
		success = 0.75
	case diff > 10:
		success = 0.65
	case diff > 0:
		success = 0.55
	default:
		success = 0.40
	}

	confidence := math.Min(0.95, (float64(aiConfidence)/100+math.Abs(diff)/50)/2)

	return models.Prediction{
		PredictedSuccess: success,
		Confidence:       round2(confidence),
		Reasoning:        predictionReasoning(add, drop, diff),
		Method:           methodRuleBased,
	}
}

func predictionReasoning(add, drop models.PlayerAnalysis, diff float64) string {
	var parts []string
	if diff > 20 {
		parts = append(parts, fmt.Sprintf("%s holds a %.0f-point score advantage over %s", add.PlayerName, diff, drop.PlayerName))
	} else if diff > 0 {
		parts = append(parts, fmt.Sprintf("%s edges out %s by %.0f points", add.PlayerName, drop.PlayerName, diff))
	} else {
		parts = append(parts, fmt.Sprintf("%s does not clearly outscore %s", add.PlayerName, drop.PlayerName))
	}
	if drop.HealthScore < 50 {
		parts = append(parts, fmt.Sprintf("%s carries real injury risk", drop.PlayerName))
	}
	if add.ExpertScore >= 70 {
		parts = append(parts, "the pickup is expert-backed")
	}
	return strings.Join(parts, "; ")
}

// TrainedClassifierPredictor is a logistic model over decision features:
// recorded confidence and the inverted expert ranks of both sides. Trained
// per league from labeled history.
type TrainedClassifierPredictor struct {
	weights          [4]float64 // bias, confidence, add rank inv, drop rank inv
	TrainingAccuracy float64
	fallback         *RuleBasedPredictor
}

func (c *TrainedClassifierPredictor) Method() string { return methodClassifier }

// TrainClassifier fits the model by gradient descent on the labeled set.
// Errors when the labels are degenerate (all one class), since such a model
// predicts nothing useful.
func TrainClassifier(labeled []models.DecisionRecord, fallback *RuleBasedPredictor) (*TrainedClassifierPredictor, error) {
	var features [][3]float64
	var labels []float64
	positives := 0

	for _, rec := range labeled {
		if rec.WasGoodDecision == nil {
			continue
		}
		label := 0.0
		if *rec.WasGoodDecision {
			label = 1.0
			positives++
		}
		features = append(features, [3]float64{
			float64(rec.AIConfidence) / 100,
			invertedRank(rec.AddExpertRank),
			invertedRank(rec.DropExpertRank),
		})
		labels = append(labels, label)
	}

	n := len(labels)
	if n == 0 {
		return nil, fmt.Errorf("no usable labeled samples")
	}
	if positives == 0 || positives == n {
		return nil, fmt.Errorf("degenerate labels: %d/%d positive", positives, n)
	}

	clf := &TrainedClassifierPredictor{fallback: fallback}

	const (
		epochs       = 500
		learningRate = 0.1
	)
	for epoch := 0; epoch < epochs; epoch++ {
		var grad [4]float64
		for i, feat := range features {
			p := clf.probability(feat)
			err := p - labels[i]
			grad[0] += err
			grad[1] += err * feat[0]
			grad[2] += err * feat[1]
			grad[3] += err * feat[2]
		}
		for j := range clf.weights {
			clf.weights[j] -= learningRate * grad[j] / float64(n)
		}
	}

	correct := 0
	for i, feat := range features {
		p := clf.probability(feat)
		if (p >= 0.5) == (labels[i] >= 0.5) {
			correct++
		}
	}
	clf.TrainingAccuracy = round2(float64(correct) / float64(n))

	return clf, nil
}

func (c *TrainedClassifierPredictor) probability(feat [3]float64) float64 {
	z := c.weights[0] + c.weights[1]*feat[0] + c.weights[2]*feat[1] + c.weights[3]*feat[2]
	return 1 / (1 + math.Exp(-z))
}

func (c *TrainedClassifierPredictor) Predict(add, drop models.PlayerAnalysis, aiConfidence int, matchupWinning bool) models.Prediction {
	addRank := rankFromExpertScore(add.ExpertScore)
	dropRank := rankFromExpertScore(drop.ExpertScore)

	p := c.probability([3]float64{
		float64(aiConfidence) / 100,
		invertedRank(&addRank),
		invertedRank(&dropRank),
	})
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return c.fallback.Predict(add, drop, aiConfidence, matchupWinning)
	}

	diff := add.TotalScore - drop.TotalScore
	return models.Prediction{
		PredictedSuccess: round2(p),
		Confidence:       round2(math.Abs(p-0.5) * 2),
		Reasoning: fmt.Sprintf("Model trained on past choices (%.0f%% training accuracy): %s",
			c.TrainingAccuracy*100, predictionReasoning(add, drop, diff)),
		Method: methodClassifier,
	}
}

// invertedRank maps an expert rank to a higher-is-better feature in [0, 1].
// Missing ranks sit mid-scale.
func invertedRank(rank *int) float64 {
	if rank == nil || *rank <= 0 {
		return 0.5
	}
	v := (200 - float64(*rank)) / 200
	return clamp(v, 0, 1)
}

// rankFromExpertScore recovers a representative rank from the bucketed
// expert score for players whose raw rank is no longer at hand.
func rankFromExpertScore(score float64) int {
	switch {
	case score >= 100:
		return 25
	case score >= 85:
		return 75
	case score >= 70:
		return 125
	case score >= 55:
		return 175
	case score >= 50:
		return 0 // unranked
	default:
		return 250
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
