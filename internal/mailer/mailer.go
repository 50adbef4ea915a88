// Package mailer holds the mail provider implementations of reminder.Mailer.
package mailer

import (
	"context"
	"fmt"

	"MeetingReminder/internal/config"
	"MeetingReminder/internal/reminder"

	"go.uber.org/zap"
)

// New returns the mailer for the configured provider.
func New(ctx context.Context, cfg *config.MailConfig, logger *zap.Logger) (reminder.Mailer, error) {
	logger.Info("email service initialized", zap.String("provider", cfg.Provider))
	switch cfg.Provider {
	case config.MailResend:
		m, err := NewResend(cfg.ResendAPIKey, cfg.ResendAPIURL, cfg.From)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.MailSMTP:
		return NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.From), nil
	case config.MailSES:
		m, err := NewSES(ctx, cfg.Region, cfg.From)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
}
