// Package classifier wraps the pre-trained diabetes model.  Callers treat
// the model as a black box: a feature vector goes in, a label and two
// class probabilities come out.
package classifier

import "github.com/iliyamo/diabetes-risk-predictor/internal/model"

// Classifier is a loaded, immutable model.  Implementations must be safe
// for concurrent use.
type Classifier interface {
	// Predict classifies one feature vector in model.Observation feature
	// order.
	Predict(features []float64) (model.Prediction, error)
	// Version identifies the artifact the classifier was loaded from.
	Version() string
}
