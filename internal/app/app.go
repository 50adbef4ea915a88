// Package app assembles the reminder service from configuration. It is shared
// by the Lambda handler and the long-running service.
package app

import (
	"context"

	"MeetingReminder/internal/bootstrap"
	"MeetingReminder/internal/config"
	"MeetingReminder/internal/reminder"
	"MeetingReminder/internal/store"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const ServiceName = "meeting-reminder"

func NewLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	return bootstrap.NewLogger(cfg.Level, cfg.Format, ServiceName)
}

func NewRepository(db *mongo.Database, cfg *config.ReminderConfig) *store.Repository {
	return store.NewRepository(store.NewClient(db), store.Collections(cfg.Tables))
}

func NewService(st reminder.Store, mailer reminder.Mailer, cfg *config.ReminderConfig, logger *zap.Logger) *reminder.Service {
	return reminder.NewService(st, mailer, nil, reminder.Options{
		Location:      cfg.Location,
		Lookahead:     cfg.Lookahead,
		BaseURL:       cfg.BaseURL,
		TeamName:      cfg.TeamName,
		Concurrency:   cfg.Concurrency,
		RemindStarter: cfg.RemindStarter,
	}, logger)
}

// EnsureIndexes creates the store indexes, logging instead of failing so a
// run can still proceed against a store managed elsewhere.
func EnsureIndexes(ctx context.Context, repo *store.Repository, logger *zap.Logger) {
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Warn("could not ensure indexes", zap.Error(err))
	}
}
