package availability

import (
	"meetsync-api/core/database"
	"meetsync-api/core/middleware"
	"meetsync-api/modules/availability/controller"
	"meetsync-api/modules/availability/repository"
	"meetsync-api/modules/availability/router"
	"meetsync-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes. The
// returned service answers the booking module's public slot queries.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.AvailabilityService {
	repo := repository.NewAvailabilityRepository(db)
	svc := service.NewAvailabilityService(repo)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
