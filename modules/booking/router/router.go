package router

import (
	"meetsync-api/core/middleware"
	"meetsync-api/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	BookingController *controller.BookingController
}

func NewBookingRouter(bookingController *controller.BookingController) *BookingRouter {
	return &BookingRouter{
		BookingController: bookingController,
	}
}

// Setup registers booking routes. Link management and booking listings are
// protected; the booking page itself is public.
func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	linkRoutes := privateRoutes.Group("/booking-links", mw.AuthMiddleware())
	linkRoutes.POST("", r.BookingController.CreateLink)
	linkRoutes.GET("", r.BookingController.ListLinks)
	linkRoutes.PUT("/:id", r.BookingController.UpdateLink)
	linkRoutes.DELETE("/:id", r.BookingController.DeleteLink)

	bookingRoutes := privateRoutes.Group("/bookings", mw.AuthMiddleware())
	bookingRoutes.GET("", r.BookingController.ListBookings)
	bookingRoutes.GET("/upcoming", r.BookingController.Upcoming)
	bookingRoutes.GET("/stats", r.BookingController.Stats)
	bookingRoutes.PUT("/:id/status", r.BookingController.UpdateStatus)
	bookingRoutes.PUT("/:id/cancel", r.BookingController.CancelBooking)

	// public booking page; invitee cancel is public too since invitees
	// have no account
	publicRoutes := v1.Group("/book")
	publicRoutes.GET("/:slug", r.BookingController.GetPublicLink)
	publicRoutes.GET("/:slug/slots", r.BookingController.GetPublicSlots)
	publicRoutes.POST("/:slug", r.BookingController.CreateBooking)
	publicRoutes.PUT("/bookings/:id/cancel", r.BookingController.InviteeCancel)
}
