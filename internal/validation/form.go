package validation

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

// ParseObservationForm reads the eight measurements from submitted form
// values.  Blank fields stay nil so the validator reports them as
// required; values that are not numbers are reported here.
func ParseObservationForm(values url.Values) (model.ObservationInput, FieldErrors) {
	var in model.ObservationInput
	errs := FieldErrors{}

	ints := map[string]**int{
		"pregnancies": &in.Pregnancies,
		"age":         &in.Age,
	}
	floats := map[string]**float64{
		"glucose":           &in.Glucose,
		"blood_pressure":    &in.BloodPressure,
		"skin_thickness":    &in.SkinThickness,
		"insulin":           &in.Insulin,
		"bmi":               &in.BMI,
		"diabetes_pedigree": &in.DiabetesPedigree,
	}

	for _, f := range model.ObservationFields {
		raw := strings.TrimSpace(values.Get(f.Key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			errs.Add(f.Key, "must be a number")
			continue
		}
		if dst, ok := ints[f.Key]; ok {
			if v != math.Trunc(v) {
				errs.Add(f.Key, "must be a whole number")
				continue
			}
			// Out-of-range values are reported here because converting a
			// float beyond the int range has no defined result.
			switch {
			case v > f.Max:
				errs.Add(f.Key, "must be at most "+strconv.FormatFloat(f.Max, 'f', -1, 64))
				continue
			case v < f.Min:
				errs.Add(f.Key, "must be at least "+strconv.FormatFloat(f.Min, 'f', -1, 64))
				continue
			}
			n := int(v)
			*dst = &n
			continue
		}
		if dst, ok := floats[f.Key]; ok {
			*dst = &v
		}
	}
	return in, errs
}
