package contact

import (
	"meetsync-api/core/cache"
	"meetsync-api/core/database"
	"meetsync-api/core/middleware"
	"meetsync-api/modules/contact/controller"
	"meetsync-api/modules/contact/repository"
	"meetsync-api/modules/contact/router"
	"meetsync-api/modules/contact/service"
	tzservice "meetsync-api/modules/timezone/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the contact module and registers routes. The returned
// service is consumed by the suggestion module to resolve participants.
func Init(e *echo.Echo, db database.Database, appCache cache.Cache, mw *middleware.Middleware) *service.ContactService {
	repo := repository.NewContactRepository(db)
	svc := service.NewContactService(repo, tzservice.NewClock(), appCache)
	ctrl := controller.NewContactController(svc)
	rtr := router.NewContactRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
