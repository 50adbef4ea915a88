package mailer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Resend sends through the Resend API.
type Resend struct {
	client *resend.Client
	from   string
}

// NewResend builds a Resend mailer. apiURL overrides the API base URL when set.
func NewResend(apiKey, apiURL, from string) (*Resend, error) {
	client := resend.NewClient(apiKey)
	if apiURL != "" {
		u, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid Resend API URL: %w", err)
		}
		client.BaseURL = u
	}
	return &Resend{client: client, from: from}, nil
}

func (r *Resend) Send(ctx context.Context, to, subject, body string) (string, error) {
	sent, err := r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return sent.Id, nil
}
