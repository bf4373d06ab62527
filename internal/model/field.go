package model

// FieldSpec describes one form input.  The same table drives the HTML
// form, the form parser and the inline error labels, so the order here
// is the order the fields are shown in.
type FieldSpec struct {
	Key     string  // form and JSON key
	Label   string  // human readable label
	Unit    string  // unit shown next to the label; empty when unitless
	Help    string  // short hint rendered under the input
	Group   string  // fieldset the input is rendered in
	Min     float64 // inclusive lower bound
	Max     float64 // inclusive upper bound
	Step    float64 // HTML step attribute
	Default float64 // value pre-filled on an empty form
	Integer bool    // whether the field only accepts whole numbers
}

// ObservationFields lists the eight measurements in feature order.
var ObservationFields = []FieldSpec{
	{Key: "pregnancies", Label: "Pregnancies", Help: "Number of times pregnant (0 for males)", Group: "Personal Info", Min: 0, Max: 20, Step: 1, Default: 0, Integer: true},
	{Key: "glucose", Label: "Glucose", Unit: "mg/dL", Help: "Plasma glucose concentration", Group: "Blood Tests", Min: 0, Max: 300, Step: 1, Default: 120},
	{Key: "blood_pressure", Label: "Blood Pressure", Unit: "mmHg", Help: "Diastolic blood pressure", Group: "Physical Measurements", Min: 0, Max: 200, Step: 1, Default: 80},
	{Key: "skin_thickness", Label: "Skin Thickness", Unit: "mm", Help: "Triceps skin fold thickness", Group: "Physical Measurements", Min: 0, Max: 100, Step: 1, Default: 20},
	{Key: "insulin", Label: "Insulin", Unit: "μU/mL", Help: "2-Hour serum insulin level", Group: "Blood Tests", Min: 0, Max: 1000, Step: 1, Default: 85},
	{Key: "bmi", Label: "BMI", Unit: "kg/m²", Help: "Body mass index (weight in kg/(height in m)²)", Group: "Personal Info", Min: 10, Max: 70, Step: 0.1, Default: 25},
	{Key: "diabetes_pedigree", Label: "Diabetes Pedigree", Help: "Genetic predisposition factor", Group: "Blood Tests", Min: 0, Max: 3, Step: 0.01, Default: 0.5},
	{Key: "age", Label: "Age", Unit: "years", Help: "Age in years", Group: "Personal Info", Min: 18, Max: 120, Step: 1, Default: 30, Integer: true},
}

// FieldByKey looks up a spec by its form key.
func FieldByKey(key string) (FieldSpec, bool) {
	for _, f := range ObservationFields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}
