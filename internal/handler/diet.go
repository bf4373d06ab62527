package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
	"github.com/iliyamo/diabetes-risk-predictor/internal/service"
	"github.com/iliyamo/diabetes-risk-predictor/internal/validation"
)

var (
	genders   = []string{"male", "female", "other"}
	dietTypes = []string{"veg", "non-veg"}
)

// DietHandler serves the diet and workout planner.
type DietHandler struct {
	svc service.DietService
}

// NewDietHandler constructs a DietHandler and panics if the service is nil.
func NewDietHandler(svc service.DietService) *DietHandler {
	if svc == nil {
		panic("nil service passed to NewDietHandler")
	}
	return &DietHandler{svc: svc}
}

// dietFormValues is the form as typed, echoed back on validation errors.
type dietFormValues struct {
	Age, Gender, Weight, Height, VegOrNonVeg, Disease, Region, Allergics, FoodType string
}

func (h *DietHandler) page(v dietFormValues, errs validation.FieldErrors, banner string) dietFormPage {
	return dietFormPage{
		Title:     "Diet & Workout Planner",
		Banner:    banner,
		Form:      v,
		Errors:    errs,
		Genders:   genders,
		DietTypes: dietTypes,
	}
}

// Form renders the planner form.
func (h *DietHandler) Form(c echo.Context) error {
	return c.Render(http.StatusOK, "diet.html", h.page(dietFormValues{Gender: "female", VegOrNonVeg: "veg"}, nil, ""))
}

// Submit validates the planner form and renders the plan.
func (h *DietHandler) Submit(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return c.Render(http.StatusBadRequest, "diet.html", h.page(dietFormValues{}, nil, "The form could not be read. Please try again."))
	}
	raw := dietFormFrom(values)
	req, errs := parseDietForm(raw)
	if err := c.Validate(&req); err != nil {
		msgs, ok := validation.Messages(err)
		if !ok {
			return err
		}
		for k, v := range msgs {
			errs.Add(k, v)
		}
	}
	if len(errs) > 0 {
		return c.Render(http.StatusUnprocessableEntity, "diet.html", h.page(raw, errs, "Please correct the highlighted fields."))
	}
	plan := h.svc.Plan(c.Request().Context(), req)
	return c.Render(http.StatusOK, "diet_result.html", dietResultPage{Title: "Your Diet & Workout Plan", Plan: plan})
}

// Plan is the JSON API for the planner.
func (h *DietHandler) Plan(c echo.Context) error {
	var req model.DietRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	normalizeDiet(&req)
	if err := c.Validate(&req); err != nil {
		msgs, ok := validation.Messages(err)
		if !ok {
			return err
		}
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation_failed", "fields": msgs})
	}
	return c.JSON(http.StatusOK, h.svc.Plan(c.Request().Context(), req))
}

func dietFormFrom(values url.Values) dietFormValues {
	get := func(k string) string { return strings.TrimSpace(values.Get(k)) }
	return dietFormValues{
		Age:         get("age"),
		Gender:      get("gender"),
		Weight:      get("weight"),
		Height:      get("height"),
		VegOrNonVeg: get("veg_or_nonveg"),
		Disease:     get("disease"),
		Region:      get("region"),
		Allergics:   get("allergics"),
		FoodType:    get("foodtype"),
	}
}

func parseDietForm(v dietFormValues) (model.DietRequest, validation.FieldErrors) {
	errs := validation.FieldErrors{}
	req := model.DietRequest{
		Gender:      v.Gender,
		VegOrNonVeg: v.VegOrNonVeg,
		Disease:     v.Disease,
		Region:      v.Region,
		Allergics:   v.Allergics,
		FoodType:    v.FoodType,
	}
	if v.Age != "" {
		n, err := strconv.Atoi(v.Age)
		if err != nil {
			errs.Add("age", "must be a whole number")
		}
		req.Age = n
	}
	if v.Weight != "" {
		f, err := strconv.ParseFloat(v.Weight, 64)
		if err != nil {
			errs.Add("weight", "must be a number")
		}
		req.Weight = f
	}
	if v.Height != "" {
		f, err := strconv.ParseFloat(v.Height, 64)
		if err != nil {
			errs.Add("height", "must be a number")
		}
		req.Height = f
	}
	normalizeDiet(&req)
	return req, errs
}

// normalizeDiet lower-cases the enum fields and fills the optional text
// fields the way the prompt expects them.
func normalizeDiet(r *model.DietRequest) {
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
	r.VegOrNonVeg = strings.ToLower(strings.TrimSpace(r.VegOrNonVeg))
	if strings.TrimSpace(r.Disease) == "" {
		r.Disease = "None"
	}
	if strings.TrimSpace(r.Allergics) == "" {
		r.Allergics = "None"
	}
}
