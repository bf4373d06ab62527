// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

// PredictionQueueName is the durable queue prediction events are routed to.
const PredictionQueueName = "prediction.completed"

// PredictionCompletedEvent is published after an assessment is rendered.
// It carries the outcome only; the submitted measurements never leave
// the request.
type PredictionCompletedEvent struct {
	Label                 int     `json:"label"`
	ProbabilityNoDiabetes float64 `json:"probability_no_diabetes"`
	ProbabilityDiabetes   float64 `json:"probability_diabetes"`
	RiskLevel             string  `json:"risk_level"`
	RiskFactorCount       int     `json:"risk_factor_count"`
	ProtectiveFactorCount int     `json:"protective_factor_count"`
	ModelVersion          string  `json:"model_version"`
	Source                string  `json:"source"`
	CompletedAt           string  `json:"completed_at"`
}

// NewPredictionCompletedEvent summarizes an assessment.  source names
// the surface that produced it ("form" or "api").
func NewPredictionCompletedEvent(a *model.Assessment, source string) PredictionCompletedEvent {
	at := a.AssessedAt
	if at.IsZero() {
		at = time.Now()
	}
	return PredictionCompletedEvent{
		Label:                 a.Prediction.Label,
		ProbabilityNoDiabetes: a.Prediction.HealthyProbability(),
		ProbabilityDiabetes:   a.Prediction.DiabetesProbability(),
		RiskLevel:             string(a.RiskLevel),
		RiskFactorCount:       len(a.RiskFactors),
		ProtectiveFactorCount: len(a.ProtectiveFactors),
		ModelVersion:          a.ModelVersion,
		Source:                source,
		CompletedAt:           at.UTC().Format(time.RFC3339),
	}
}
