package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/meetsync/reservation-service/config"
	"github.com/meetsync/reservation-service/internal/handler"
	"github.com/meetsync/reservation-service/internal/middleware"
	"github.com/meetsync/reservation-service/internal/notifier"
	"github.com/meetsync/reservation-service/internal/repository"
	"github.com/meetsync/reservation-service/internal/service"
	"github.com/meetsync/reservation-service/pkg/database"
	"github.com/meetsync/reservation-service/pkg/logger"
	"github.com/meetsync/reservation-service/pkg/rabbitmq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		zlog.Fatal("database setup failed", zap.Error(err))
	}

	// Reservation events are best-effort: run without a broker if none is
	// configured or reachable.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			zlog.Warn("rabbitmq unavailable, reservation events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
		}
	}

	// Repositories
	roomRepo := repository.NewRoomRepository(db)
	userRepo := repository.NewUserRepository(db)
	resvRepo := repository.NewReservationRepository(db)

	// Services
	teamsNotifier := notifier.NewTeamsNotifier(cfg.TeamsWebhookURL)
	roomSvc := service.NewRoomService(roomRepo, zlog)
	userSvc := service.NewUserService(userRepo)
	resvSvc := service.NewReservationService(resvRepo, roomRepo, userRepo, teamsNotifier, publisher, zlog)

	if err := roomSvc.SeedDefaults(context.Background()); err != nil {
		zlog.Fatal("room seeding failed", zap.Error(err))
	}

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorHandler(zlog)
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			zlog.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "reservation-service"})
	})

	handler.NewReservationHandler(resvSvc, roomSvc).RegisterRoutes(e)
	handler.NewRoomHandler(roomSvc).RegisterRoutes(e)
	handler.NewUserHandler(userSvc).RegisterRoutes(e)

	zlog.Info("reservation service starting", zap.String("port", cfg.ServerPort))
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
