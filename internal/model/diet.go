package model

// DietRequest carries the personal details used to ask for a diet and
// workout plan.  Disease and Allergics default to "None" when blank.
type DietRequest struct {
	Age         int     `json:"age" form:"age" validate:"gte=1,lte=120"`
	Gender      string  `json:"gender" form:"gender" validate:"required,oneof=male female other"`
	Weight      float64 `json:"weight" form:"weight" validate:"gt=0,lte=400"`
	Height      float64 `json:"height" form:"height" validate:"gt=0,lte=3"`
	VegOrNonVeg string  `json:"veg_or_nonveg" form:"veg_or_nonveg" validate:"required,oneof=veg non-veg"`
	Disease     string  `json:"disease" form:"disease" validate:"max=200"`
	Region      string  `json:"region" form:"region" validate:"required,max=100"`
	Allergics   string  `json:"allergics" form:"allergics" validate:"max=200"`
	FoodType    string  `json:"foodtype" form:"foodtype" validate:"required,max=100"`
}

// DietPlan is the parsed answer of the plan generator.
type DietPlan struct {
	Restaurants []string `json:"restaurants"`
	Breakfast   []string `json:"breakfast"`
	Dinner      []string `json:"dinner"`
	Workouts    []string `json:"workouts"`
	// Generated is false when the plan is made entirely of built-in
	// suggestions because no generator answer could be used.
	Generated bool `json:"generated"`
}
