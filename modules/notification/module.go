package notification

import (
	"meetsync-api/core/database"
	"meetsync-api/core/middleware"
	"meetsync-api/modules/notification/controller"
	"meetsync-api/modules/notification/repository"
	"meetsync-api/modules/notification/router"
	"meetsync-api/modules/notification/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes. The
// returned service is used by the booking module to queue deliveries.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, client *asynq.Client) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, client)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)

	return svc
}

// RegisterTasks binds the module's asynq handlers onto the worker mux
func RegisterTasks(mux *asynq.ServeMux, svc *service.NotificationService) {
	mux.HandleFunc(service.TaskDeliverNotification, svc.HandleDeliverTask)
}
