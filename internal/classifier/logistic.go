package classifier

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

//go:embed default_model.yaml
var defaultArtifact []byte

// Artifact is the on-disk form of a standardized logistic regression:
// inputs are scaled as (x-mean)/scale before the linear score is taken.
type Artifact struct {
	Name         string    `yaml:"name"`
	Version      string    `yaml:"version"`
	Features     []string  `yaml:"features"`
	Scaler       Scaler    `yaml:"scaler"`
	Coefficients []float64 `yaml:"coefficients"`
	Intercept    float64   `yaml:"intercept"`
}

// Scaler holds the per-feature standardization parameters.
type Scaler struct {
	Mean  []float64 `yaml:"mean"`
	Scale []float64 `yaml:"scale"`
}

// Logistic is a Classifier backed by an Artifact.
type Logistic struct {
	name    string
	version string
	mean    *mat.VecDense
	scale   *mat.VecDense
	coef    *mat.VecDense
	bias    float64
	n       int
}

// Load decodes and checks an artifact from r.
func Load(r io.Reader) (*Logistic, error) {
	var a Artifact
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidArtifact, err)
	}
	return New(a)
}

// LoadFile reads an artifact from path.
func LoadFile(path string) (*Logistic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the artifact compiled into the binary.
func Default() (*Logistic, error) {
	return Load(bytes.NewReader(defaultArtifact))
}

// New builds a classifier from an already decoded artifact.
func New(a Artifact) (*Logistic, error) {
	n := len(a.Features)
	if n != model.FeatureCount {
		return nil, fmt.Errorf("%w: want %d features, got %d", ErrInvalidArtifact, model.FeatureCount, n)
	}
	if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n || len(a.Coefficients) != n {
		return nil, fmt.Errorf("%w: scaler and coefficients must have %d entries", ErrInvalidArtifact, n)
	}
	for i := 0; i < n; i++ {
		if a.Scaler.Scale[i] == 0 || !finite(a.Scaler.Scale[i]) {
			return nil, fmt.Errorf("%w: scale for %q must be finite and non-zero", ErrInvalidArtifact, a.Features[i])
		}
		if !finite(a.Scaler.Mean[i]) || !finite(a.Coefficients[i]) {
			return nil, fmt.Errorf("%w: non-finite parameter for %q", ErrInvalidArtifact, a.Features[i])
		}
	}
	if !finite(a.Intercept) {
		return nil, fmt.Errorf("%w: non-finite intercept", ErrInvalidArtifact)
	}
	version := a.Version
	if version == "" {
		version = "unversioned"
	}
	return &Logistic{
		name:    a.Name,
		version: version,
		mean:    mat.NewVecDense(n, append([]float64(nil), a.Scaler.Mean...)),
		scale:   mat.NewVecDense(n, append([]float64(nil), a.Scaler.Scale...)),
		coef:    mat.NewVecDense(n, append([]float64(nil), a.Coefficients...)),
		bias:    a.Intercept,
		n:       n,
	}, nil
}

// Version returns "name@version".
func (l *Logistic) Version() string {
	if l.name == "" {
		return l.version
	}
	return l.name + "@" + l.version
}

// Predict implements Classifier.
func (l *Logistic) Predict(features []float64) (model.Prediction, error) {
	if len(features) != l.n {
		return model.Prediction{}, fmt.Errorf("%w: want %d, got %d", ErrFeatureCount, l.n, len(features))
	}
	for _, v := range features {
		if !finite(v) {
			return model.Prediction{}, ErrNonFinite
		}
	}
	x := mat.NewVecDense(l.n, append([]float64(nil), features...))
	x.SubVec(x, l.mean)
	x.DivElemVec(x, l.scale)
	z := mat.Dot(x, l.coef) + l.bias

	p1 := sigmoid(z)
	p0 := 1 - p1
	label := model.LabelNoDiabetes
	if p1 > p0 {
		label = model.LabelDiabetes
	}
	return model.Prediction{Label: label, Probabilities: [2]float64{p0, p1}}, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
