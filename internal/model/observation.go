package model

// Observation is one set of health measurements submitted through the
// form or the JSON API.  It lives for a single request: it is built from
// validated input, handed to the classifier and discarded once the
// result has been rendered.
//
// Glucose is plasma glucose in mg/dL, BloodPressure is diastolic pressure
// in mmHg, SkinThickness is the triceps skin fold in mm and Insulin is the
// 2-hour serum insulin in μU/mL.  DiabetesPedigree is a unitless genetic
// predisposition score.
type Observation struct {
	Pregnancies      int     `json:"pregnancies"`
	Glucose          float64 `json:"glucose"`
	BloodPressure    float64 `json:"blood_pressure"`
	SkinThickness    float64 `json:"skin_thickness"`
	Insulin          float64 `json:"insulin"`
	BMI              float64 `json:"bmi"`
	DiabetesPedigree float64 `json:"diabetes_pedigree"`
	Age              int     `json:"age"`
}

// FeatureCount is the arity of the vector produced by Features.
const FeatureCount = 8

// Features returns the observation as a model input vector in the
// canonical feature order.
func (o Observation) Features() []float64 {
	return []float64{
		float64(o.Pregnancies),
		o.Glucose,
		o.BloodPressure,
		o.SkinThickness,
		o.Insulin,
		o.BMI,
		o.DiabetesPedigree,
		float64(o.Age),
	}
}

// ObservationInput is the unvalidated form of an Observation.  Pointers
// distinguish a missing field from an explicit zero so that "required"
// can be enforced for every measurement.
type ObservationInput struct {
	Pregnancies      *int     `json:"pregnancies" validate:"required,gte=0,lte=20"`
	Glucose          *float64 `json:"glucose" validate:"required,gte=0,lte=300"`
	BloodPressure    *float64 `json:"blood_pressure" validate:"required,gte=0,lte=200"`
	SkinThickness    *float64 `json:"skin_thickness" validate:"required,gte=0,lte=100"`
	Insulin          *float64 `json:"insulin" validate:"required,gte=0,lte=1000"`
	BMI              *float64 `json:"bmi" validate:"required,gte=10,lte=70"`
	DiabetesPedigree *float64 `json:"diabetes_pedigree" validate:"required,gte=0,lte=3"`
	Age              *int     `json:"age" validate:"required,gte=18,lte=120"`
}

// Observation dereferences the input.  Call it only after validation;
// missing fields become zero.
func (in ObservationInput) Observation() Observation {
	return Observation{
		Pregnancies:      derefInt(in.Pregnancies),
		Glucose:          derefFloat(in.Glucose),
		BloodPressure:    derefFloat(in.BloodPressure),
		SkinThickness:    derefFloat(in.SkinThickness),
		Insulin:          derefFloat(in.Insulin),
		BMI:              derefFloat(in.BMI),
		DiabetesPedigree: derefFloat(in.DiabetesPedigree),
		Age:              derefInt(in.Age),
	}
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
