package classifier

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

func TestDefaultLoads(t *testing.T) {
	clf, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "pima-logreg@1.0.0", clf.Version())
}

func TestPredictProbabilitiesSumToOne(t *testing.T) {
	clf, err := Default()
	require.NoError(t, err)

	// Walk every field across its valid range while the others stay at
	// their defaults.
	for i, f := range model.ObservationFields {
		for _, frac := range []float64{0, 0.25, 0.5, 0.75, 1} {
			x := defaults()
			x[i] = f.Min + frac*(f.Max-f.Min)
			p, err := clf.Predict(x)
			require.NoError(t, err)

			assert.InDelta(t, 1.0, p.Probabilities[0]+p.Probabilities[1], 1e-12, "field %s", f.Key)
			assert.GreaterOrEqual(t, p.Probabilities[0], 0.0)
			assert.GreaterOrEqual(t, p.Probabilities[1], 0.0)
			if p.Probabilities[1] > p.Probabilities[0] {
				assert.Equal(t, model.LabelDiabetes, p.Label, "field %s", f.Key)
			} else {
				assert.Equal(t, model.LabelNoDiabetes, p.Label, "field %s", f.Key)
			}
		}
	}
}

func TestPredictSeparatesProfiles(t *testing.T) {
	clf, err := Default()
	require.NoError(t, err)

	high := model.Observation{Pregnancies: 5, Glucose: 200, BloodPressure: 80, SkinThickness: 30, Insulin: 150, BMI: 45, DiabetesPedigree: 1.5, Age: 60}
	p, err := clf.Predict(high.Features())
	require.NoError(t, err)
	assert.True(t, p.Positive())
	assert.Greater(t, p.DiabetesProbability(), 0.9)

	low := model.Observation{Pregnancies: 0, Glucose: 85, BloodPressure: 70, SkinThickness: 20, Insulin: 50, BMI: 22, DiabetesPedigree: 0.2, Age: 25}
	p, err = clf.Predict(low.Features())
	require.NoError(t, err)
	assert.False(t, p.Positive())
	assert.Less(t, p.DiabetesProbability(), 0.1)
}

func TestPredictRejectsBadInput(t *testing.T) {
	clf, err := Default()
	require.NoError(t, err)

	_, err = clf.Predict([]float64{1, 2, 3})
	assert.True(t, errors.Is(err, ErrFeatureCount))

	x := defaults()
	x[1] = math.NaN()
	_, err = clf.Predict(x)
	assert.True(t, errors.Is(err, ErrNonFinite))

	x[1] = math.Inf(1)
	_, err = clf.Predict(x)
	assert.True(t, errors.Is(err, ErrNonFinite))
}

func TestPredictDoesNotMutateInput(t *testing.T) {
	clf, err := Default()
	require.NoError(t, err)
	x := defaults()
	orig := append([]float64(nil), x...)
	_, err = clf.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, orig, x)
}

func TestZeroScoreIsNegative(t *testing.T) {
	a := validArtifact()
	a.Coefficients = make([]float64, 8)
	a.Intercept = 0
	clf, err := New(a)
	require.NoError(t, err)

	p, err := clf.Predict(defaults())
	require.NoError(t, err)
	assert.Equal(t, [2]float64{0.5, 0.5}, p.Probabilities)
	assert.Equal(t, model.LabelNoDiabetes, p.Label)
}

func TestNewRejectsInvalidArtifacts(t *testing.T) {
	cases := map[string]func(a *Artifact){
		"short features": func(a *Artifact) { a.Features = a.Features[:7] },
		"short mean":     func(a *Artifact) { a.Scaler.Mean = a.Scaler.Mean[:7] },
		"short coef":     func(a *Artifact) { a.Coefficients = a.Coefficients[:3] },
		"zero scale":     func(a *Artifact) { a.Scaler.Scale[2] = 0 },
		"nan intercept":  func(a *Artifact) { a.Intercept = math.NaN() },
		"inf coef":       func(a *Artifact) { a.Coefficients[0] = math.Inf(-1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			a := validArtifact()
			mutate(&a)
			_, err := New(a)
			assert.True(t, errors.Is(err, ErrInvalidArtifact), "got %v", err)
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("name: x\nweights: [1]\n"))
	assert.True(t, errors.Is(err, ErrInvalidArtifact))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, defaultArtifact, 0o644))

	clf, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pima-logreg@1.0.0", clf.Version())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func defaults() []float64 {
	x := make([]float64, len(model.ObservationFields))
	for i, f := range model.ObservationFields {
		x[i] = f.Default
	}
	return x
}

func validArtifact() Artifact {
	return Artifact{
		Name:         "test",
		Features:     []string{"a", "b", "c", "d", "e", "f", "g", "h"},
		Scaler:       Scaler{Mean: make([]float64, 8), Scale: []float64{1, 1, 1, 1, 1, 1, 1, 1}},
		Coefficients: []float64{1, 1, 1, 1, 1, 1, 1, 1},
		Intercept:    0.1,
	}
}
