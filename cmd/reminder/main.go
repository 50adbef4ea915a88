package main

import (
	"log"
	_ "time/tzdata"

	"MeetingReminder/internal/bootstrap"
	"MeetingReminder/pkg/routes"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	if err := bootstrap.Loadenv(); err != nil {
		log.Fatalf("loading .env: %v", err)
	}
	app := fx.New(
		routes.ReminderModules,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
	)

	app.Run()
}
