package router

import (
	"meetsync-api/core/middleware"
	"meetsync-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

func NewAvailabilityRouter(availabilityController *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		AvailabilityController: availabilityController,
	}
}

// Setup registers availability routes (all protected)
func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	availRoutes := privateRoutes.Group("/availability", mw.AuthMiddleware())
	availRoutes.POST("/schedules", r.AvailabilityController.CreateSchedule)
	availRoutes.GET("/schedules", r.AvailabilityController.ListSchedules)
	availRoutes.GET("/schedules/:id", r.AvailabilityController.GetSchedule)
	availRoutes.PUT("/schedules/:id", r.AvailabilityController.UpdateSchedule)
	availRoutes.DELETE("/schedules/:id", r.AvailabilityController.DeleteSchedule)
	availRoutes.PUT("/schedules/:id/default", r.AvailabilityController.SetDefault)
	availRoutes.PUT("/schedules/:id/overrides", r.AvailabilityController.PutOverride)
	availRoutes.DELETE("/schedules/:id/overrides/:date", r.AvailabilityController.DeleteOverride)
	availRoutes.GET("/schedules/:id/resolve", r.AvailabilityController.ResolveRange)
	availRoutes.POST("/schedules/:id/slots", r.AvailabilityController.PreviewSlots)
}
