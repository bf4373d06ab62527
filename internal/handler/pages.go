package handler

import (
	"net/url"
	"strconv"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
	"github.com/iliyamo/diabetes-risk-predictor/internal/validation"
)

// maxRecommendations is how many recommendations the result page lists.
const maxRecommendations = 8

// groupOrder is the column order of the assessment form.
var groupOrder = []string{"Personal Info", "Blood Tests", "Physical Measurements"}

type formField struct {
	model.FieldSpec
	Value string
	Error string
}

type formGroup struct {
	Name   string
	Fields []formField
}

type formPage struct {
	Title  string
	Banner string
	Groups []formGroup
}

type resultPage struct {
	Title           string
	Assessment      *model.Assessment
	Recommendations []model.Factor
}

type dietFormPage struct {
	Title     string
	Banner    string
	Form      dietFormValues
	Errors    validation.FieldErrors
	Genders   []string
	DietTypes []string
}

type dietResultPage struct {
	Title string
	Plan  model.DietPlan
}

// newFormPage lays the fields out in their groups.  With nil values the
// defaults are shown; otherwise the submitted text is echoed back so the
// user can fix it in place.
func newFormPage(values url.Values, errs validation.FieldErrors, banner string) formPage {
	byGroup := map[string][]formField{}
	for _, spec := range model.ObservationFields {
		v := strconv.FormatFloat(spec.Default, 'f', -1, 64)
		if values != nil {
			v = values.Get(spec.Key)
		}
		byGroup[spec.Group] = append(byGroup[spec.Group], formField{FieldSpec: spec, Value: v, Error: errs[spec.Key]})
	}
	page := formPage{Title: "Diabetes Risk Predictor", Banner: banner}
	for _, g := range groupOrder {
		page.Groups = append(page.Groups, formGroup{Name: g, Fields: byGroup[g]})
	}
	return page
}

func newResultPage(a *model.Assessment) resultPage {
	recs := a.Recommendations
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return resultPage{Title: "Your Diabetes Risk Assessment", Assessment: a, Recommendations: recs}
}
