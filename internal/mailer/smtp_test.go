package mailer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	id := messageID("Care Team <care@example.org>")
	assert.True(t, strings.HasPrefix(id, "<"))
	assert.True(t, strings.HasSuffix(id, "@example.org>"))

	var buf bytes.Buffer
	_, err := newMessage("care@example.org", "pat@example.org", "Reminder that visit starting soon", "Dear Pat", id).WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "From: care@example.org")
	assert.Contains(t, raw, "To: pat@example.org")
	assert.Contains(t, raw, "Subject: Reminder that visit starting soon")
	assert.Contains(t, raw, "Message-ID: "+id)
	assert.Contains(t, raw, "Content-Type: text/plain")
	assert.Contains(t, raw, "Dear Pat")
}

func TestMessageIDWithoutDomain(t *testing.T) {
	assert.True(t, strings.HasSuffix(messageID("care"), "@localhost>"))
}

func TestSMTPSendHonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSMTP("localhost", 2525, "", "", "care@example.org").Send(ctx, "pat@example.org", "s", "b")
	assert.ErrorIs(t, err, context.Canceled)
}
