package router // package router defines how HTTP routes are registered on Echo

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/diabetes-risk-predictor/internal/handler" // handlers for pages, API and health
)

// RegisterRoutes maps every page and API endpoint onto e.  The limit
// middlewares (usually the token bucket) guard only the routes that run
// the model or call the plan generator; pages and the health check are
// never throttled.
func RegisterRoutes(e *echo.Echo, p *handler.PredictHandler, d *handler.DietHandler, limit ...echo.MiddlewareFunc) {
	// Map GET /healthz to the Health handler for load balancers.
	e.GET("/healthz", handler.Health)

	// Assessment form and its submission.  GET /predict shows the form
	// as well so a refreshed result page lands somewhere sensible.
	e.GET("/", p.Form)
	e.GET("/predict", p.Form)
	e.POST("/predict", p.Submit, limit...)

	// Diet and workout planner.
	e.GET("/recommend", d.Form)
	e.POST("/recommend", d.Submit, limit...)

	// JSON API under /v1.
	v1 := e.Group("/v1")
	v1.POST("/predictions", p.Predict, limit...)
	v1.POST("/diet-plans", d.Plan, limit...)
}
