package model

import "time"

// Class labels produced by the classifier.
const (
	LabelNoDiabetes = 0
	LabelDiabetes   = 1
)

// Prediction is the raw classifier output: a binary label and the
// probability of each class.  Probabilities[LabelNoDiabetes] and
// Probabilities[LabelDiabetes] always sum to one.
type Prediction struct {
	Label         int        `json:"label"`
	Probabilities [2]float64 `json:"probabilities"`
}

// Positive reports whether the prediction is the diabetes class.
func (p Prediction) Positive() bool { return p.Label == LabelDiabetes }

// DiabetesProbability returns P(diabetes).
func (p Prediction) DiabetesProbability() float64 { return p.Probabilities[LabelDiabetes] }

// HealthyProbability returns P(no diabetes).
func (p Prediction) HealthyProbability() float64 { return p.Probabilities[LabelNoDiabetes] }

// RiskLevel buckets the diabetes probability for display.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

// Factor is one line of the risk explanation, e.g. a high glucose reading.
type Factor struct {
	Icon   string `json:"icon"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Assessment bundles everything the result page shows for one
// observation.
type Assessment struct {
	Observation       Observation `json:"observation"`
	Prediction        Prediction  `json:"prediction"`
	RiskLevel         RiskLevel   `json:"risk_level"`
	RiskFactors       []Factor    `json:"risk_factors"`
	ProtectiveFactors []Factor    `json:"protective_factors"`
	Recommendations   []Factor    `json:"recommendations"`
	Explanation       string      `json:"explanation"`
	ModelVersion      string      `json:"model_version"`
	AssessedAt        time.Time   `json:"assessed_at"`
}
