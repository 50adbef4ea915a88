package config

import (
	"errors"
	"fmt"
)

// Supported mail providers.
const (
	MailResend = "resend"
	MailSMTP   = "smtp"
	MailSES    = "ses"
)

type MailConfig struct {
	Provider string
	From     string

	ResendAPIKey string
	ResendAPIURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	Region string
}

func NewMailConfig() (*MailConfig, error) {
	cfg := &MailConfig{
		Provider:     getenv("AR_MAIL_PROVIDER", MailResend),
		From:         getenv("AR_SOURCE_EMAIL", ""),
		ResendAPIKey: getenv("RESEND_API_KEY", ""),
		ResendAPIURL: getenv("RESEND_API_URL", ""),
		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		Region:       getenv("REGION", ""),
	}
	if cfg.From == "" {
		return nil, errors.New("AR_SOURCE_EMAIL not set")
	}
	port, err := getInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort = port

	switch cfg.Provider {
	case MailResend:
		if cfg.ResendAPIKey == "" {
			return nil, errors.New("RESEND_API_KEY not set")
		}
	case MailSMTP:
		if cfg.SMTPHost == "" {
			return nil, errors.New("SMTP_HOST not set")
		}
	case MailSES:
		if cfg.Region == "" {
			return nil, errors.New("REGION not set")
		}
	default:
		return nil, fmt.Errorf("unknown AR_MAIL_PROVIDER %q", cfg.Provider)
	}
	return cfg, nil
}
