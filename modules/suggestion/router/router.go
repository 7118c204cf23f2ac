package router

import (
	"meetsync-api/core/middleware"
	"meetsync-api/modules/suggestion/controller"

	"github.com/labstack/echo/v4"
)

type SuggestionRouter struct {
	SuggestionController *controller.SuggestionController
}

func NewSuggestionRouter(suggestionController *controller.SuggestionController) *SuggestionRouter {
	return &SuggestionRouter{
		SuggestionController: suggestionController,
	}
}

// Setup registers suggestion routes (all protected)
func (r *SuggestionRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	suggestionRoutes := privateRoutes.Group("/suggestions", mw.AuthMiddleware())
	suggestionRoutes.POST("/times", r.SuggestionController.SuggestTimes)
	suggestionRoutes.POST("/best-hours", r.SuggestionController.BestHours)
	suggestionRoutes.POST("/overlap-windows", r.SuggestionController.OverlapWindows)
}
