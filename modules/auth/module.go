package auth

import (
	"meetsync-api/core/cache"
	"meetsync-api/core/middleware"
	"meetsync-api/modules/auth/controller"
	"meetsync-api/modules/auth/router"
	"meetsync-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, appCache cache.Cache, mw *middleware.Middleware) {
	svc := service.NewAuthService(appCache)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
