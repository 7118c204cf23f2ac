package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meetsync-api/core/cache"
	"meetsync-api/core/config"
	"meetsync-api/core/constants"
	"meetsync-api/core/database"
	"meetsync-api/core/logger"
	mw "meetsync-api/core/middleware"
	"meetsync-api/modules/auth"
	"meetsync-api/modules/availability"
	"meetsync-api/modules/booking"
	"meetsync-api/modules/calendar"
	"meetsync-api/modules/contact"
	"meetsync-api/modules/notification"
	"meetsync-api/modules/suggestion"
	"meetsync-api/modules/timezone"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run wires the application together and blocks until shutdown
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	appCache, err := cache.InitCache(cache.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	middleware := mw.NewMiddleware(appCache)

	// Module wiring. Order matters: later modules consume earlier services.
	auth.Init(e, appCache, middleware)
	timezone.Init(e, middleware)
	contactSvc := contact.Init(e, db, appCache, middleware)
	notifSvc := notification.Init(e, db, middleware, asynqClient)
	availabilitySvc := availability.Init(e, db, middleware)
	suggestion.Init(e, db, appCache, middleware, contactSvc)
	calendarSvc := calendar.Init(e, db, middleware)
	booking.Init(e, db, middleware, availabilitySvc, notifSvc, calendarSvc)

	// Background worker for queued notification deliveries
	asynqServer := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
	asynqMux := asynq.NewServeMux()
	notification.RegisterTasks(asynqMux, notifSvc)
	go func() {
		if err := asynqServer.Run(asynqMux); err != nil {
			logger.Error("Server:AsynqWorker", "error", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start", "error", err)
		}
	}()
	logger.Info("Server started", "host", cfg.Server.Host, "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	asynqServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// give in-flight DB work a moment to settle
	time.Sleep(100 * time.Millisecond)
	logger.Info("Server stopped")
	return nil
}
