package router

import (
	"meetsync-api/core/middleware"
	"meetsync-api/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(controller *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{
		controller: controller,
	}
}

// Setup registers calendar routes. The OAuth callback is public because
// Google redirects the browser there without our bearer token.
func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	calendarRoutes := v1.Group("/private/calendar", mw.AuthMiddleware())
	calendarRoutes.GET("/connect", r.controller.Connect)
	calendarRoutes.GET("/connections", r.controller.GetConnections)
	calendarRoutes.DELETE("/connections/:provider", r.controller.Disconnect)
	calendarRoutes.GET("/free-busy", r.controller.GetFreeBusy)

	v1.GET("/calendar/callback", r.controller.Callback)
}
