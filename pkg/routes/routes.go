package routes

import (
	"context"
	"errors"
	"net/http"

	"MeetingReminder/internal/app"
	"MeetingReminder/internal/config"
	"MeetingReminder/internal/mailer"
	"MeetingReminder/internal/reminder"
	"MeetingReminder/internal/store"
	"MeetingReminder/pkg/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ReminderModules = fx.Module("reminder",
	fx.Provide(config.NewLogConfig),
	fx.Provide(app.NewLogger),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewReminderConfig),
	fx.Provide(config.NewMailConfig),
	fx.Provide(config.NewServerConfig),
	fx.Provide(config.NewMongoDatabase),
	fx.Provide(app.NewRepository),
	fx.Provide(func(r *store.Repository) reminder.Store { return r }),
	fx.Provide(func(cfg *config.MailConfig, logger *zap.Logger) (reminder.Mailer, error) {
		return mailer.New(context.Background(), cfg, logger)
	}),
	fx.Provide(app.NewService),
	fx.Provide(func(s *reminder.Service, cfg *config.ServerConfig, logger *zap.Logger) (*reminder.Scheduler, error) {
		return reminder.NewScheduler(s, cfg.Schedule, logger)
	}),
	fx.Provide(reminder.NewRunHandler),
	fx.Provide(middleware.NewEnforcer),
	fx.Provide(NewEchoServer),
	fx.Invoke(func(lc fx.Lifecycle, repo *store.Repository, logger *zap.Logger) {
		lc.Append(fx.Hook{OnStart: func(ctx context.Context) error {
			app.EnsureIndexes(ctx, repo, logger)
			return nil
		}})
	}),
	fx.Invoke((*reminder.Scheduler).StartScheduler),
	fx.Invoke(RegisterRoutes))

func NewEchoServer(lc fx.Lifecycle, cfg *config.ServerConfig, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	middleware.SetupMiddleware(e, logger)
	addr := ":" + cfg.Port
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("server listening", zap.String("addr", addr))
			go func() {
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start the server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down the server")
			return e.Shutdown(ctx)
		},
	})
	return e
}

func RegisterRoutes(e *echo.Echo, h *reminder.RunHandler, enforcer *casbin.Enforcer, cfg *config.ServerConfig, logger *zap.Logger) {
	e.GET("/healthz", h.Health)

	protected := e.Group("/api")
	protected.Use(middleware.JWT(cfg.JWTKey), middleware.Authorize(enforcer, logger))
	protected.POST("/runs", h.TriggerRun)
}
