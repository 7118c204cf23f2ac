package router

import (
	"meetsync-api/core/middleware"
	"meetsync-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

// Setup registers auth routes. Refresh is public (the access token may
// already be expired); logout requires a valid access token.
func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.POST("/auth/refresh", r.AuthController.Refresh)

	privateRoutes := v1.Group("/private")
	authRoutes := privateRoutes.Group("/auth", mw.AuthMiddleware())
	authRoutes.POST("/logout", r.AuthController.Logout)
}
