package router

import (
	"meetsync-api/core/middleware"
	"meetsync-api/modules/timezone/controller"

	"github.com/labstack/echo/v4"
)

type TimezoneRouter struct {
	TimezoneController *controller.TimezoneController
}

func NewTimezoneRouter(timezoneController *controller.TimezoneController) *TimezoneRouter {
	return &TimezoneRouter{
		TimezoneController: timezoneController,
	}
}

// Setup registers timezone routes. These are read-only lookups and stay public.
func (r *TimezoneRouter) Setup(e *echo.Echo, _ *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	tzRoutes := v1.Group("/timezones")

	tzRoutes.GET("/validate", r.TimezoneController.ValidateTimezone)
	tzRoutes.GET("/info", r.TimezoneController.GetTimezoneInfo)
}
