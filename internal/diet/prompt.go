// Package diet asks a language model for a diet and workout plan and
// parses its answer into lists.  Parsing is forgiving: whatever cannot be
// recovered from the answer is filled from built-in suggestions.
package diet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

// Prompt renders the request into the instruction sent to the generator.
// The answer format it asks for is what Parse expects first.
func Prompt(r model.DietRequest) string {
	var b strings.Builder
	b.WriteString("Diet Recommendation System:\n")
	b.WriteString("Please provide exactly 6 restaurant names, 6 breakfast items, 5 dinner items, and 6 workout exercises based on the following criteria:\n\n")
	b.WriteString("Person Details:\n")
	fmt.Fprintf(&b, "- Age: %d\n", r.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", r.Gender)
	fmt.Fprintf(&b, "- Weight: %s kg\n", strconv.FormatFloat(r.Weight, 'f', -1, 64))
	fmt.Fprintf(&b, "- Height: %s m\n", strconv.FormatFloat(r.Height, 'f', -1, 64))
	fmt.Fprintf(&b, "- Diet Type: %s\n", r.VegOrNonVeg)
	fmt.Fprintf(&b, "- Health Condition: %s\n", orNone(r.Disease))
	fmt.Fprintf(&b, "- Region: %s\n", r.Region)
	fmt.Fprintf(&b, "- Allergies: %s\n", orNone(r.Allergics))
	fmt.Fprintf(&b, "- Preferred Food Type: %s\n\n", r.FoodType)
	b.WriteString("Please format your response exactly as follows:\n")
	writeSection(&b, "Restaurants", "Restaurant name", 6)
	writeSection(&b, "Breakfast", "Breakfast item", 6)
	writeSection(&b, "Dinner", "Dinner item", 5)
	writeSection(&b, "Workouts", "Workout exercise", 6)
	return strings.TrimRight(b.String(), "\n")
}

func writeSection(b *strings.Builder, title, item string, n int) {
	fmt.Fprintf(b, "\n**%s:**\n", title)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(b, "%d. %s %d\n", i, item, i)
	}
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
