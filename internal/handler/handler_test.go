package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/diabetes-risk-predictor/internal/analysis"
	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
	"github.com/iliyamo/diabetes-risk-predictor/internal/validation"
	"github.com/iliyamo/diabetes-risk-predictor/internal/view"
)

type stubPredictions struct {
	err    error
	calls  int
	got    model.Observation
	source string
}

func (s *stubPredictions) Assess(_ context.Context, o model.Observation, source string) (*model.Assessment, error) {
	s.calls++
	s.got, s.source = o, source
	if s.err != nil {
		return nil, s.err
	}
	a := analysis.Assess(o, model.Prediction{Label: model.LabelDiabetes, Probabilities: [2]float64{0.2, 0.8}})
	a.ModelVersion = "stub@1"
	return &a, nil
}

type stubPlans struct {
	got model.DietRequest
}

func (s *stubPlans) Plan(_ context.Context, r model.DietRequest) model.DietPlan {
	s.got = r
	return model.DietPlan{
		Restaurants: []string{"Green Bowl"},
		Breakfast:   []string{"Oats with berries"},
		Dinner:      []string{"Grilled paneer"},
		Workouts:    []string{"Brisk walking"},
		Generated:   true,
	}
}

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := view.New()
	require.NoError(t, err)
	e := echo.New()
	e.Renderer = r
	e.Validator = validation.New()
	return e
}

func validValues() url.Values {
	return url.Values{
		"pregnancies":       {"6"},
		"glucose":           {"160"},
		"blood_pressure":    {"95"},
		"skin_thickness":    {"40"},
		"insulin":           {"250"},
		"bmi":               {"33.5"},
		"diabetes_pedigree": {"1.2"},
		"age":               {"50"},
	}
}

func postForm(e *echo.Echo, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestFormShowsDefaults(t *testing.T) {
	e := newEcho(t)
	h := NewPredictHandler(&stubPredictions{}, zap.NewNop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, h.Form(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, f := range model.ObservationFields {
		assert.Contains(t, body, `name="`+f.Key+`"`)
	}
	assert.Contains(t, body, `value="120"`)
	assert.NotContains(t, body, `<div class="field-error">`)
}

func TestSubmitValidForm(t *testing.T) {
	e := newEcho(t)
	svc := &stubPredictions{}
	h := NewPredictHandler(svc, zap.NewNop())

	c, rec := postForm(e, validValues())
	require.NoError(t, h.Submit(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "form", svc.source)
	assert.Equal(t, 160.0, svc.got.Glucose)
	assert.Equal(t, 50, svc.got.Age)
	body := rec.Body.String()
	assert.Contains(t, body, "HIGH RISK DETECTED")
	assert.Contains(t, body, "80.0%")
	assert.Contains(t, body, "20.0%")
}

func TestSubmitInvalidFormKeepsValues(t *testing.T) {
	e := newEcho(t)
	svc := &stubPredictions{}
	h := NewPredictHandler(svc, zap.NewNop())

	form := validValues()
	form.Set("glucose", "abc")
	form.Set("bmi", "75")
	form.Del("age")

	c, rec := postForm(e, form)
	require.NoError(t, h.Submit(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, svc.calls)
	body := rec.Body.String()
	assert.Contains(t, body, "Glucose must be a number")
	assert.Contains(t, body, "BMI must be at most 70")
	assert.Contains(t, body, "Age is required")
	assert.Contains(t, body, `value="abc"`)
	assert.Contains(t, body, "Please correct the highlighted fields.")
}

func TestSubmitServiceFailure(t *testing.T) {
	e := newEcho(t)
	h := NewPredictHandler(&stubPredictions{err: errors.New("boom")}, zap.NewNop())

	c, rec := postForm(e, validValues())
	require.NoError(t, h.Submit(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not process these values")
}

func TestPredictAPI(t *testing.T) {
	e := newEcho(t)
	svc := &stubPredictions{}
	h := NewPredictHandler(svc, zap.NewNop())

	c, rec := postJSON(e, `{"pregnancies":6,"glucose":160,"blood_pressure":95,"skin_thickness":40,"insulin":250,"bmi":33.5,"diabetes_pedigree":1.2,"age":50}`)
	require.NoError(t, h.Predict(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "api", svc.source)

	var got model.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, model.LabelDiabetes, got.Prediction.Label)
	assert.InDelta(t, 1.0, got.Prediction.Probabilities[0]+got.Prediction.Probabilities[1], 1e-12)
	assert.Equal(t, model.RiskHigh, got.RiskLevel)
}

func TestPredictAPIRejectsBadInput(t *testing.T) {
	e := newEcho(t)
	svc := &stubPredictions{}
	h := NewPredictHandler(svc, zap.NewNop())

	c, rec := postJSON(e, `{"glucose":`)
	require.NoError(t, h.Predict(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = postJSON(e, `{"pregnancies":0,"glucose":400,"blood_pressure":80,"skin_thickness":20,"insulin":85,"bmi":25,"diabetes_pedigree":0.5}`)
	require.NoError(t, h.Predict(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_failed", body.Error)
	assert.Equal(t, map[string]string{"glucose": "must be at most 300", "age": "is required"}, body.Fields)
	assert.Zero(t, svc.calls)
}

func TestPredictAPIServiceFailure(t *testing.T) {
	e := newEcho(t)
	h := NewPredictHandler(&stubPredictions{err: errors.New("boom")}, zap.NewNop())

	c, rec := postJSON(e, `{"pregnancies":1,"glucose":100,"blood_pressure":80,"skin_thickness":20,"insulin":85,"bmi":25,"diabetes_pedigree":0.5,"age":30}`)
	require.NoError(t, h.Predict(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResultPageCapsRecommendations(t *testing.T) {
	a := analysis.Assess(model.Observation{Age: 30}, model.Prediction{Label: model.LabelDiabetes, Probabilities: [2]float64{0.4, 0.6}})
	require.Greater(t, len(a.Recommendations), maxRecommendations)
	assert.Len(t, newResultPage(&a).Recommendations, maxRecommendations)
}

func dietValues() url.Values {
	return url.Values{
		"age":           {"35"},
		"gender":        {"Female"},
		"weight":        {"62"},
		"height":        {"1.65"},
		"veg_or_nonveg": {"veg"},
		"region":        {"Kerala"},
		"foodtype":      {"South Indian"},
	}
}

func TestDietForm(t *testing.T) {
	e := newEcho(t)
	h := NewDietHandler(&stubPlans{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/recommend", nil), rec)
	require.NoError(t, h.Form(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="region"`)
}

func TestDietSubmit(t *testing.T) {
	e := newEcho(t)
	svc := &stubPlans{}
	h := NewDietHandler(svc)

	c, rec := postForm(e, dietValues())
	require.NoError(t, h.Submit(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "female", svc.got.Gender)
	assert.Equal(t, "None", svc.got.Disease)
	assert.Equal(t, "None", svc.got.Allergics)
	assert.Contains(t, rec.Body.String(), "Grilled paneer")
}

func TestDietSubmitInvalid(t *testing.T) {
	e := newEcho(t)
	h := NewDietHandler(&stubPlans{})

	form := dietValues()
	form.Set("weight", "heavy")
	form.Del("region")

	c, rec := postForm(e, form)
	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "must be a number")
	assert.Contains(t, body, "is required")
}

func TestDietPlanAPI(t *testing.T) {
	e := newEcho(t)
	h := NewDietHandler(&stubPlans{})

	c, rec := postJSON(e, `{"age":35,"gender":"male","weight":70,"height":1.75,"veg_or_nonveg":"non-veg","region":"Goa","foodtype":"Seafood"}`)
	require.NoError(t, h.Plan(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var plan model.DietPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Equal(t, []string{"Brisk walking"}, plan.Workouts)

	c, rec = postJSON(e, `{"age":35,"gender":"robot","weight":70,"height":1.75,"veg_or_nonveg":"veg","region":"Goa","foodtype":"Seafood"}`)
	require.NoError(t, h.Plan(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
