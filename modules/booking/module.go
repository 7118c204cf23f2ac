package booking

import (
	"meetsync-api/core/database"
	"meetsync-api/core/middleware"
	availservice "meetsync-api/modules/availability/service"
	"meetsync-api/modules/booking/controller"
	"meetsync-api/modules/booking/repository"
	"meetsync-api/modules/booking/router"
	"meetsync-api/modules/booking/service"
	calservice "meetsync-api/modules/calendar/service"
	notifservice "meetsync-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the booking module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, availability *availservice.AvailabilityService, notifier *notifservice.NotificationService, calendars *calservice.CalendarService) {
	repo := repository.NewBookingRepository(db)
	svc := service.NewBookingService(repo, availability, notifier, calendars)
	ctrl := controller.NewBookingController(svc)
	rtr := router.NewBookingRouter(ctrl)

	rtr.Setup(e, mw)
}
