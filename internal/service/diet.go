package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/diabetes-risk-predictor/internal/diet"
	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

// DietService builds diet and workout plans.
type DietService interface {
	Plan(ctx context.Context, r model.DietRequest) model.DietPlan
}

type dietService struct {
	gen     diet.Generator
	timeout time.Duration
	log     *zap.Logger
}

// NewDietService returns a service backed by gen.  With a nil generator
// every plan is made of the built-in suggestions.
func NewDietService(gen diet.Generator, timeout time.Duration, log *zap.Logger) DietService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &dietService{gen: gen, timeout: timeout, log: log}
}

// Plan never fails: generation errors degrade to the default lists.
func (s *dietService) Plan(ctx context.Context, r model.DietRequest) model.DietPlan {
	if s.gen == nil {
		return diet.WithDefaults(model.DietPlan{})
	}
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.gen.Generate(gctx, diet.Prompt(r))
	if err != nil {
		s.log.Warn("diet plan generation failed, using defaults", zap.Error(err))
		return diet.WithDefaults(model.DietPlan{})
	}
	plan := diet.Parse(text)
	s.log.Debug("diet plan parsed",
		zap.Bool("generated", plan.Generated),
		zap.Int("restaurants", len(plan.Restaurants)),
		zap.Int("breakfast", len(plan.Breakfast)),
		zap.Int("dinner", len(plan.Dinner)),
		zap.Int("workouts", len(plan.Workouts)),
	)
	return plan
}
