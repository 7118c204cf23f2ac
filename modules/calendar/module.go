package calendar

import (
	"meetsync-api/core/database"
	"meetsync-api/core/middleware"
	"meetsync-api/modules/calendar/controller"
	"meetsync-api/modules/calendar/repository"
	"meetsync-api/modules/calendar/router"
	"meetsync-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the calendar module and returns the service so the
// booking module can merge provider busy intervals into slot generation.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.CalendarService {
	repo := repository.NewCalendarRepository(db)
	svc := service.NewCalendarService(repo)
	ctrl := controller.NewCalendarController(svc)
	rtr := router.NewCalendarRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
