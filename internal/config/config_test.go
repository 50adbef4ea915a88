package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("AR_BASE_URL", "https://visits.example.org")
	t.Setenv("AR_TEAM_NAME", "Care")
	t.Setenv("AR_SOURCE_EMAIL", "care@example.org")
}

func TestNewReminderConfigDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("AR_TIMEZONE", "UTC")
	t.Setenv("ENV", "")

	cfg, err := NewReminderConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://visits.example.org", cfg.BaseURL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 20*time.Minute, cfg.Lookahead)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.False(t, cfg.RemindStarter)
	assert.Equal(t, TableNames{Visits: "Meeting", Attendees: "MeetingAttendee", Roles: "StudyCaseRole", Users: "User"}, cfg.Tables)
}

func TestNewReminderConfigOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("AR_TIMEZONE", "UTC")
	t.Setenv("AR_LOOKAHEAD_MINUTES", "15")
	t.Setenv("AR_CONCURRENCY", "2")
	t.Setenv("AR_REMIND_STARTER", "true")
	t.Setenv("ENV", "prod")
	t.Setenv("API_VIDKIDS_MEETINGTABLE_NAME", "abc123:GraphQLAPIIdOutput")
	t.Setenv("API_VIDKIDS_USERTABLE_NAME", "people")

	cfg, err := NewReminderConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.Lookahead)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.True(t, cfg.RemindStarter)
	assert.Equal(t, "Meeting-abc123-prod", cfg.Tables.Visits)
	assert.Equal(t, "people", cfg.Tables.Users)
}

func TestNewReminderConfigErrors(t *testing.T) {
	t.Run("missing required", func(t *testing.T) {
		t.Setenv("AR_BASE_URL", "")
		_, err := NewReminderConfig()
		assert.Error(t, err)
	})
	t.Run("bad timezone", func(t *testing.T) {
		setRequired(t)
		t.Setenv("AR_TIMEZONE", "Mars/Olympus")
		_, err := NewReminderConfig()
		assert.ErrorContains(t, err, "AR_TIMEZONE")
	})
	t.Run("bad lookahead", func(t *testing.T) {
		setRequired(t)
		t.Setenv("AR_TIMEZONE", "UTC")
		t.Setenv("AR_LOOKAHEAD_MINUTES", "twenty")
		_, err := NewReminderConfig()
		assert.ErrorContains(t, err, "AR_LOOKAHEAD_MINUTES")
	})
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "User-xyz-dev", TableName("User", "xyz:output", "dev"))
	assert.Equal(t, "xyz:output", TableName("User", "xyz:output", ""))
	assert.Equal(t, "users", TableName("User", "users", "dev"))
}

func TestNewMailConfig(t *testing.T) {
	t.Setenv("AR_SOURCE_EMAIL", "care@example.org")

	t.Run("resend needs a key", func(t *testing.T) {
		t.Setenv("AR_MAIL_PROVIDER", "")
		t.Setenv("RESEND_API_KEY", "")
		_, err := NewMailConfig()
		assert.ErrorContains(t, err, "RESEND_API_KEY")
	})
	t.Run("smtp", func(t *testing.T) {
		t.Setenv("AR_MAIL_PROVIDER", MailSMTP)
		t.Setenv("SMTP_HOST", "smtp.example.org")
		t.Setenv("SMTP_PORT", "2525")
		cfg, err := NewMailConfig()
		require.NoError(t, err)
		assert.Equal(t, 2525, cfg.SMTPPort)
		assert.Equal(t, "care@example.org", cfg.From)
	})
	t.Run("ses needs a region", func(t *testing.T) {
		t.Setenv("AR_MAIL_PROVIDER", MailSES)
		t.Setenv("REGION", "")
		_, err := NewMailConfig()
		assert.ErrorContains(t, err, "REGION")
	})
	t.Run("unknown provider", func(t *testing.T) {
		t.Setenv("AR_MAIL_PROVIDER", "pigeon")
		_, err := NewMailConfig()
		assert.ErrorContains(t, err, "pigeon")
	})
}

func TestNewServerConfig(t *testing.T) {
	t.Setenv("JWT_KEY", "")
	_, err := NewServerConfig()
	assert.Error(t, err)

	t.Setenv("JWT_KEY", "secret")
	t.Setenv("PORT", "")
	t.Setenv("AR_SCHEDULE", "")
	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "@every 5m", cfg.Schedule)
	assert.Equal(t, []byte("secret"), cfg.JWTKey)
}

func TestNewMongoDBConfig(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	_, err := NewMongoDBConfig()
	assert.Error(t, err)

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DATABASE", "")
	cfg, err := NewMongoDBConfig()
	require.NoError(t, err)
	assert.Equal(t, "meeting_reminder", cfg.Database)
}
