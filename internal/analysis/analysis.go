// Package analysis turns a prediction into the explanation shown next to
// it: the measurements that push risk up or down, a list of lifestyle
// recommendations and a coarse risk level.
package analysis

import (
	"fmt"
	"strconv"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

// Risk level cut-offs on P(diabetes).
const (
	HighRiskAbove     = 0.50
	ModerateRiskAbove = 0.30
)

// Level buckets a diabetes probability.
func Level(pDiabetes float64) model.RiskLevel {
	switch {
	case pDiabetes > HighRiskAbove:
		return model.RiskHigh
	case pDiabetes > ModerateRiskAbove:
		return model.RiskModerate
	default:
		return model.RiskLow
	}
}

// Factors compares each measurement against clinical reference ranges.
// A measurement contributes at most one factor; values in the grey zone
// between thresholds contribute none.
func Factors(o model.Observation) (risk, protective []model.Factor) {
	add := func(dst *[]model.Factor, icon, title, detail string) {
		*dst = append(*dst, model.Factor{Icon: icon, Title: title, Detail: detail})
	}
	glucose := num(o.Glucose)
	switch {
	case o.Glucose > 140:
		add(&risk, "🍯", fmt.Sprintf("High Glucose Level (%s mg/dL)", glucose),
			"Glucose levels above 140 mg/dL indicate impaired glucose tolerance, a strong predictor of diabetes.")
	case o.Glucose > 126:
		add(&risk, "🍯", fmt.Sprintf("Elevated Glucose (%s mg/dL)", glucose),
			"Glucose levels above 126 mg/dL suggest potential insulin resistance.")
	case o.Glucose < 100:
		add(&protective, "🍯", fmt.Sprintf("Normal Glucose (%s mg/dL)", glucose),
			"Healthy glucose levels reduce diabetes risk significantly.")
	}

	bmi := num(o.BMI)
	switch {
	case o.BMI > 30:
		add(&risk, "⚖️", fmt.Sprintf("Obesity (BMI: %s)", bmi),
			"BMI above 30 significantly increases insulin resistance and diabetes risk.")
	case o.BMI > 25:
		add(&risk, "⚖️", fmt.Sprintf("Overweight (BMI: %s)", bmi),
			"BMI above 25 moderately increases diabetes risk.")
	case o.BMI >= 18.5 && o.BMI <= 24.9:
		add(&protective, "⚖️", fmt.Sprintf("Healthy Weight (BMI: %s)", bmi),
			"Normal BMI range helps maintain insulin sensitivity.")
	}

	switch {
	case o.Age > 45:
		add(&risk, "🎂", fmt.Sprintf("Advanced Age (%d years)", o.Age),
			"Age above 45 increases diabetes risk due to decreased insulin sensitivity.")
	case o.Age < 35:
		add(&protective, "🎂", fmt.Sprintf("Young Age (%d years)", o.Age),
			"Younger age is associated with better insulin sensitivity.")
	}

	switch {
	case o.Pregnancies > 4:
		add(&risk, "🤱", fmt.Sprintf("Multiple Pregnancies (%d)", o.Pregnancies),
			"Multiple pregnancies can increase insulin resistance.")
	case o.Pregnancies == 0:
		add(&protective, "🤱", "No Previous Pregnancies",
			"Lower risk factor for diabetes development.")
	}

	bp := num(o.BloodPressure)
	switch {
	case o.BloodPressure > 90:
		add(&risk, "💓", fmt.Sprintf("High Blood Pressure (%s mmHg)", bp),
			"Hypertension often accompanies insulin resistance.")
	case o.BloodPressure < 80:
		add(&protective, "💓", fmt.Sprintf("Normal Blood Pressure (%s mmHg)", bp),
			"Healthy blood pressure supports overall metabolic health.")
	}

	insulin := num(o.Insulin)
	switch {
	case o.Insulin > 200:
		add(&risk, "💉", fmt.Sprintf("High Insulin (%s μU/mL)", insulin),
			"Elevated insulin levels indicate insulin resistance.")
	case o.Insulin > 125:
		add(&risk, "💉", fmt.Sprintf("Elevated Insulin (%s μU/mL)", insulin),
			"Moderately high insulin suggests developing insulin resistance.")
	case o.Insulin < 100:
		add(&protective, "💉", fmt.Sprintf("Normal Insulin (%s μU/mL)", insulin),
			"Healthy insulin levels indicate good metabolic function.")
	}

	switch {
	case o.DiabetesPedigree > 1.0:
		add(&risk, "🧬", fmt.Sprintf("High Genetic Risk (%.2f)", o.DiabetesPedigree),
			"Strong family history significantly increases diabetes risk.")
	case o.DiabetesPedigree > 0.5:
		add(&risk, "🧬", fmt.Sprintf("Moderate Genetic Risk (%.2f)", o.DiabetesPedigree),
			"Some family history of diabetes increases risk.")
	case o.DiabetesPedigree < 0.3:
		add(&protective, "🧬", fmt.Sprintf("Low Genetic Risk (%.2f)", o.DiabetesPedigree),
			"Minimal family history reduces diabetes risk.")
	}

	skin := num(o.SkinThickness)
	switch {
	case o.SkinThickness > 35:
		add(&risk, "📐", fmt.Sprintf("Thick Skin Fold (%s mm)", skin),
			"May indicate insulin resistance and metabolic issues.")
	case o.SkinThickness < 20:
		add(&protective, "📐", fmt.Sprintf("Normal Skin Thickness (%s mm)", skin),
			"Healthy skin fold thickness.")
	}
	return risk, protective
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
