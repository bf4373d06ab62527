package diet

import (
	"regexp"
	"strings"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

// fallbackLimit caps each list filled by the line scanner.
const fallbackLimit = 6

var (
	numberPrefix = regexp.MustCompile(`^\d+\.\s*`)
	bulletPrefix = regexp.MustCompile(`^(?:[-•]|\*\s)\s*`)
)

// Default suggestions used for every list the answer did not fill.
var (
	DefaultRestaurants = []string{"Local Health Restaurant", "Fresh Food Cafe", "Nutrition Hub", "Healthy Bites", "Green Garden Restaurant", "Fit Food Corner"}
	DefaultBreakfast   = []string{"Oatmeal with fruits", "Greek yogurt with nuts", "Whole grain toast", "Smoothie bowl", "Egg white omelet", "Fresh fruit salad"}
	DefaultDinner      = []string{"Grilled chicken salad", "Vegetable stir-fry", "Quinoa bowl", "Fish with vegetables", "Lentil soup"}
	DefaultWorkouts    = []string{"Morning walk", "Light jogging", "Basic stretching", "Yoga session", "Bodyweight exercises", "Swimming"}
)

type section int

const (
	sectionNone section = iota
	sectionRestaurants
	sectionBreakfast
	sectionDinner
	sectionWorkouts
)

// sectionOf maps a heading to its list.  Matching is case-insensitive on
// the singular keyword so "Restaurants:", "Workout Plan" and similar all
// resolve.
func sectionOf(heading string) section {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "restaurant"):
		return sectionRestaurants
	case strings.Contains(h, "breakfast"):
		return sectionBreakfast
	case strings.Contains(h, "dinner"):
		return sectionDinner
	case strings.Contains(h, "workout"):
		return sectionWorkouts
	}
	return sectionNone
}

// Parse extracts the four lists from a generated answer.  It first reads
// the **Heading:** layout requested by Prompt, then falls back to
// scanning lines for keywords, and finally fills empty lists with the
// defaults.  Generated is true when at least one list came from text.
func Parse(text string) model.DietPlan {
	lists := parseSections(text)
	if lists.empty() {
		lists = parseLines(text)
	}
	plan := model.DietPlan{
		Restaurants: lists[sectionRestaurants],
		Breakfast:   lists[sectionBreakfast],
		Dinner:      lists[sectionDinner],
		Workouts:    lists[sectionWorkouts],
		Generated:   !lists.empty(),
	}
	return WithDefaults(plan)
}

// WithDefaults fills every empty list of p with the built-in suggestions.
func WithDefaults(p model.DietPlan) model.DietPlan {
	if len(p.Restaurants) == 0 {
		p.Restaurants = append([]string(nil), DefaultRestaurants...)
	}
	if len(p.Breakfast) == 0 {
		p.Breakfast = append([]string(nil), DefaultBreakfast...)
	}
	if len(p.Dinner) == 0 {
		p.Dinner = append([]string(nil), DefaultDinner...)
	}
	if len(p.Workouts) == 0 {
		p.Workouts = append([]string(nil), DefaultWorkouts...)
	}
	return p
}

type sectionLists map[section][]string

func (l sectionLists) empty() bool {
	for _, items := range l {
		if len(items) > 0 {
			return false
		}
	}
	return true
}

func parseSections(text string) sectionLists {
	out := sectionLists{}
	current := sectionNone
	for _, chunk := range strings.Split(text, "**") {
		trimmed := strings.TrimSpace(chunk)
		if trimmed == "" {
			continue
		}
		// A heading is a single unlisted line between ** markers.
		if !strings.Contains(trimmed, "\n") && !listed(trimmed) {
			if s := sectionOf(trimmed); s != sectionNone {
				current = s
				continue
			}
		}
		if current == sectionNone {
			continue
		}
		for _, line := range strings.Split(trimmed, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !listed(line) && len(line) <= 2 {
				continue
			}
			if item := cleanItem(line); item != "" {
				out[current] = append(out[current], item)
			}
		}
	}
	return out
}

func parseLines(text string) sectionLists {
	out := sectionLists{}
	current := sectionNone
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !listed(line) {
			if s := sectionOf(line); s != sectionNone {
				current = s
				continue
			}
		}
		if line == "" || current == sectionNone || strings.HasPrefix(line, "**") {
			continue
		}
		if item := cleanItem(line); item != "" && len(out[current]) < fallbackLimit {
			out[current] = append(out[current], item)
		}
	}
	return out
}

func listed(line string) bool {
	return numberPrefix.MatchString(line) || bulletPrefix.MatchString(line)
}

func cleanItem(line string) string {
	item := numberPrefix.ReplaceAllString(line, "")
	item = bulletPrefix.ReplaceAllString(item, "")
	return strings.TrimSpace(item)
}
