package timezone

import (
	"meetsync-api/core/middleware"
	"meetsync-api/modules/timezone/controller"
	"meetsync-api/modules/timezone/router"
	"meetsync-api/modules/timezone/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the timezone module and registers routes
func Init(e *echo.Echo, mw *middleware.Middleware) {
	clock := service.NewClock()
	ctrl := controller.NewTimezoneController(clock)
	rtr := router.NewTimezoneRouter(ctrl)

	rtr.Setup(e, mw)
}
