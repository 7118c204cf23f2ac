package suggestion

import (
	"meetsync-api/core/cache"
	"meetsync-api/core/database"
	"meetsync-api/core/middleware"
	contactservice "meetsync-api/modules/contact/service"
	"meetsync-api/modules/suggestion/controller"
	"meetsync-api/modules/suggestion/router"
	"meetsync-api/modules/suggestion/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the suggestion module and registers routes
func Init(e *echo.Echo, _ database.Database, appCache cache.Cache, mw *middleware.Middleware, contacts *contactservice.ContactService) {
	svc := service.NewSuggestionService(contacts, appCache)
	ctrl := controller.NewSuggestionController(svc)
	rtr := router.NewSuggestionRouter(ctrl)

	rtr.Setup(e, mw)
}
