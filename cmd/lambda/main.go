package main

import (
	"context"
	"encoding/json"
	"log"
	_ "time/tzdata"

	"MeetingReminder/internal/app"
	"MeetingReminder/internal/bootstrap"
	"MeetingReminder/internal/config"
	"MeetingReminder/internal/mailer"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

func main() {
	if err := bootstrap.Loadenv(); err != nil {
		log.Fatalf("loading .env: %v", err)
	}
	logger, err := app.NewLogger(config.NewLogConfig())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	handler, err := newHandler(context.Background(), logger)
	if err != nil {
		logger.Fatal("initializing reminder handler", zap.Error(err))
	}
	lambda.Start(handler)
}

// newHandler connects to the store once per container; each invocation is one run.
func newHandler(ctx context.Context, logger *zap.Logger) (func(context.Context, json.RawMessage) (json.RawMessage, error), error) {
	reminderCfg, err := config.NewReminderConfig()
	if err != nil {
		return nil, err
	}
	mailCfg, err := config.NewMailConfig()
	if err != nil {
		return nil, err
	}
	mongoCfg, err := config.NewMongoDBConfig()
	if err != nil {
		return nil, err
	}

	client, err := config.Connect(ctx, mongoCfg)
	if err != nil {
		return nil, err
	}
	repo := app.NewRepository(client.Database(mongoCfg.Database), reminderCfg)
	app.EnsureIndexes(ctx, repo, logger)

	m, err := mailer.New(ctx, mailCfg, logger)
	if err != nil {
		return nil, err
	}
	service := app.NewService(repo, m, reminderCfg, logger)
	return service.Run, nil
}
