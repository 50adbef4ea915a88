package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ReminderConfig holds what a reminder run needs besides its collaborators.
type ReminderConfig struct {
	BaseURL       string
	TeamName      string
	SourceEmail   string
	Location      *time.Location
	Lookahead     time.Duration
	Concurrency   int
	RemindStarter bool
	Tables        TableNames
}

// TableNames identifies the collection of each record type.
type TableNames struct {
	Visits    string
	Attendees string
	Roles     string
	Users     string
}

func NewReminderConfig() (*ReminderConfig, error) {
	cfg := &ReminderConfig{
		BaseURL:     getenv("AR_BASE_URL", ""),
		TeamName:    getenv("AR_TEAM_NAME", ""),
		SourceEmail: getenv("AR_SOURCE_EMAIL", ""),
	}
	if cfg.BaseURL == "" || cfg.TeamName == "" || cfg.SourceEmail == "" {
		return nil, errors.New("AR_BASE_URL, AR_TEAM_NAME and AR_SOURCE_EMAIL are required")
	}

	tz := getenv("AR_TIMEZONE", "US/Mountain")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("AR_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	minutes, err := getInt("AR_LOOKAHEAD_MINUTES", 20)
	if err != nil {
		return nil, err
	}
	cfg.Lookahead = time.Duration(minutes) * time.Minute

	if cfg.Concurrency, err = getInt("AR_CONCURRENCY", 8); err != nil {
		return nil, err
	}
	if cfg.RemindStarter, err = getBool("AR_REMIND_STARTER", false); err != nil {
		return nil, err
	}

	env := os.Getenv("ENV")
	cfg.Tables = TableNames{
		Visits:    TableName("Meeting", getenv("API_VIDKIDS_MEETINGTABLE_NAME", "Meeting"), env),
		Attendees: TableName("MeetingAttendee", getenv("API_VIDKIDS_MEETING_ATTENDEE_TABLE_NAME", "MeetingAttendee"), env),
		Roles:     TableName("StudyCaseRole", getenv("API_VIDKIDS_STUDYCASEROLETABLE_NAME", "StudyCaseRole"), env),
		Users:     TableName("User", getenv("API_VIDKIDS_USERTABLE_NAME", "User"), env),
	}
	return cfg, nil
}

// TableName expands an Amplify style "<tableId>:<...>" identifier into
// "<readable>-<tableId>-<env>". Other values are returned as they are.
func TableName(readable, value, env string) string {
	i := strings.Index(value, ":")
	if i <= 0 || env == "" {
		return value
	}
	return fmt.Sprintf("%s-%s-%s", readable, value[:i], env)
}

// ServerConfig configures the long-running service.
type ServerConfig struct {
	Port     string
	Schedule string
	JWTKey   []byte
}

func NewServerConfig() (*ServerConfig, error) {
	key := getenv("JWT_KEY", "")
	if key == "" {
		return nil, errors.New("JWT_KEY not set")
	}
	return &ServerConfig{
		Port:     getenv("PORT", "8080"),
		Schedule: getenv("AR_SCHEDULE", "@every 5m"),
		JWTKey:   []byte(key),
	}, nil
}

type LogConfig struct {
	Level  string
	Format string
}

func NewLogConfig() *LogConfig {
	return &LogConfig{Level: getenv("LOG_LEVEL", "info"), Format: getenv("LOG_FORMAT", "json")}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := getenv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := getenv(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
