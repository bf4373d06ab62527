package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
	"github.com/iliyamo/diabetes-risk-predictor/internal/service"
	"github.com/iliyamo/diabetes-risk-predictor/internal/validation"
)

// PredictHandler serves the assessment form, its result page and the
// JSON API twin of both.
type PredictHandler struct {
	svc service.PredictionService
	log *zap.Logger
}

// NewPredictHandler constructs a PredictHandler and panics if the service is nil.
func NewPredictHandler(svc service.PredictionService, log *zap.Logger) *PredictHandler {
	if svc == nil {
		panic("nil service passed to NewPredictHandler")
	}
	return &PredictHandler{svc: svc, log: log}
}

// Form renders the empty assessment form.
func (h *PredictHandler) Form(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", newFormPage(nil, nil, ""))
}

// Submit validates the posted form and renders either the form again,
// with a message next to every invalid field, or the result page.
func (h *PredictHandler) Submit(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return c.Render(http.StatusBadRequest, "index.html", newFormPage(nil, nil, "The form could not be read. Please try again."))
	}

	in, errs := validation.ParseObservationForm(values)
	if err := c.Validate(&in); err != nil {
		msgs, ok := validation.Messages(err)
		if !ok {
			return err
		}
		for k, v := range msgs {
			errs.Add(k, v)
		}
	}
	if len(errs) > 0 {
		return c.Render(http.StatusUnprocessableEntity, "index.html",
			newFormPage(values, errs, "Please correct the highlighted fields."))
	}

	a, err := h.svc.Assess(c.Request().Context(), in.Observation(), "form")
	if err != nil {
		h.log.Error("assessment failed", zap.Error(err))
		return c.Render(http.StatusInternalServerError, "index.html",
			newFormPage(values, nil, "The model could not process these values. Please try again."))
	}
	return c.Render(http.StatusOK, "result.html", newResultPage(a))
}

// Predict is the JSON API: it accepts the eight measurements and returns
// the full assessment.
func (h *PredictHandler) Predict(c echo.Context) error {
	var in model.ObservationInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&in); err != nil {
		msgs, ok := validation.Messages(err)
		if !ok {
			return err
		}
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation_failed", "fields": msgs})
	}

	a, err := h.svc.Assess(c.Request().Context(), in.Observation(), "api")
	if err != nil {
		h.log.Error("assessment failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "prediction failed"})
	}
	return c.JSON(http.StatusOK, a)
}
