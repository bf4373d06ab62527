package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers load balancer and uptime probes with a plain "ok".  It
// does not touch Redis or the broker; both are optional.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
