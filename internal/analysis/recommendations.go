package analysis

import (
	"fmt"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

var medicalActions = []model.Factor{
	{Icon: "🏥", Title: "Immediate Action", Detail: "Consult with an endocrinologist or diabetes specialist within 1-2 weeks"},
	{Icon: "🩸", Title: "Monitoring", Detail: "Check blood glucose levels regularly and maintain a glucose log"},
	{Icon: "💊", Title: "Medication", Detail: "Discuss potential preventive medications with your doctor"},
}

var generalAdvice = []model.Factor{
	{Icon: "🥗", Title: "Diet Plan", Detail: "Follow a low-glycemic index diet with complex carbohydrates"},
	{Icon: "🍽️", Title: "Portion Control", Detail: "Use smaller plates and practice mindful eating"},
	{Icon: "⏰", Title: "Meal Timing", Detail: "Eat regular meals every 3-4 hours to maintain stable blood sugar"},
	{Icon: "🏃", Title: "Cardio Exercise", Detail: "30 minutes of moderate activity 5 days per week"},
	{Icon: "💪", Title: "Strength Training", Detail: "2-3 sessions per week to improve insulin sensitivity"},
	{Icon: "🚶", Title: "Daily Activity", Detail: "Take at least 8,000-10,000 steps daily"},
	{Icon: "😴", Title: "Sleep Quality", Detail: "Maintain 7-8 hours of quality sleep nightly"},
	{Icon: "🧘", Title: "Stress Management", Detail: "Practice meditation, yoga, or stress-reduction techniques"},
	{Icon: "💧", Title: "Hydration", Detail: "Drink plenty of water and limit sugary beverages"},
}

// Recommendations lists lifestyle advice.  Positive predictions are led
// by the medical follow-up actions.
func Recommendations(p model.Prediction) []model.Factor {
	out := make([]model.Factor, 0, len(medicalActions)+len(generalAdvice))
	if p.Positive() {
		out = append(out, medicalActions...)
	}
	return append(out, generalAdvice...)
}

// Explain summarizes why the model landed where it did.
func Explain(p model.Prediction, risk, protective []model.Factor) string {
	if p.Positive() {
		return fmt.Sprintf("Based on your health parameters, the model detected %d significant risk factors "+
			"that increase your likelihood of developing diabetes. The combination of these factors resulted in a "+
			"%.1f%% probability of diabetes risk. This prediction is based on patterns learned from thousands of "+
			"similar health profiles in medical datasets.",
			len(risk), p.DiabetesProbability()*100)
	}
	return fmt.Sprintf("Your health parameters show %d protective factors and only %d risk factors. "+
		"This combination results in a %.1f%% probability of maintaining healthy glucose metabolism. "+
		"Your current health profile aligns with patterns associated with low diabetes risk.",
		len(protective), len(risk), p.HealthyProbability()*100)
}

// Assess runs the full analysis for one classified observation.
func Assess(o model.Observation, p model.Prediction) model.Assessment {
	risk, protective := Factors(o)
	return model.Assessment{
		Observation:       o,
		Prediction:        p,
		RiskLevel:         Level(p.DiabetesProbability()),
		RiskFactors:       risk,
		ProtectiveFactors: protective,
		Recommendations:   Recommendations(p),
		Explanation:       Explain(p, risk, protective),
	}
}
