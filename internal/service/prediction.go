// Package service holds the request-scoped workflows behind the handlers.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/diabetes-risk-predictor/internal/analysis"
	"github.com/iliyamo/diabetes-risk-predictor/internal/classifier"
	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
	q "github.com/iliyamo/diabetes-risk-predictor/internal/queue"
)

// PredictionCache is the subset of cache.Predictions the service uses.
type PredictionCache interface {
	Get(ctx context.Context, modelVersion string, o model.Observation) (model.Prediction, bool, error)
	Set(ctx context.Context, modelVersion string, o model.Observation, p model.Prediction) error
}

// PredictionService classifies one observation and builds its assessment.
type PredictionService interface {
	Assess(ctx context.Context, o model.Observation, source string) (*model.Assessment, error)
}

type predictionService struct {
	clf   classifier.Classifier
	cache PredictionCache
	pub   EventPublisher
	log   *zap.Logger
	now   func() time.Time
}

// NewPredictionService wires the classifier with its optional helpers;
// cache and pub may be nil.
func NewPredictionService(clf classifier.Classifier, cache PredictionCache, pub EventPublisher, log *zap.Logger) PredictionService {
	if clf == nil {
		panic("nil classifier passed to NewPredictionService")
	}
	return &predictionService{clf: clf, cache: cache, pub: pub, log: log, now: time.Now}
}

func (s *predictionService) Assess(ctx context.Context, o model.Observation, source string) (*model.Assessment, error) {
	version := s.clf.Version()

	p, hit := s.cached(ctx, version, o)
	if !hit {
		var err error
		p, err = s.clf.Predict(o.Features())
		if err != nil {
			return nil, fmt.Errorf("predict: %w", err)
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, version, o, p); err != nil {
				s.log.Warn("prediction cache write failed", zap.Error(err))
			}
		}
	}

	a := analysis.Assess(o, p)
	a.ModelVersion = version
	a.AssessedAt = s.now().UTC()

	s.publish(ctx, &a, source)

	s.log.Info("assessment completed",
		zap.Int("label", p.Label),
		zap.Float64("p_diabetes", p.DiabetesProbability()),
		zap.String("risk_level", string(a.RiskLevel)),
		zap.String("source", source),
		zap.Bool("cached", hit),
	)
	return &a, nil
}

func (s *predictionService) cached(ctx context.Context, version string, o model.Observation) (model.Prediction, bool) {
	if s.cache == nil {
		return model.Prediction{}, false
	}
	p, ok, err := s.cache.Get(ctx, version, o)
	if err != nil {
		s.log.Warn("prediction cache read failed", zap.Error(err))
		return model.Prediction{}, false
	}
	if ok {
		s.log.Debug("prediction cache hit", zap.String("model", version))
	}
	return p, ok
}

func (s *predictionService) publish(ctx context.Context, a *model.Assessment, source string) {
	if s.pub == nil {
		return
	}
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.pub.PublishPredictionCompleted(pctx, q.NewPredictionCompletedEvent(a, source)); err != nil {
		s.log.Warn("prediction event not published", zap.Error(err))
	}
}
