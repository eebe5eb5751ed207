package remote

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the settings for the remote submission sink. An empty URL
// disables the sink.
type Config struct {
	URL        string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool

	// OAuth2 client-credentials; used when TokenURL and ClientID are set.
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// DefaultConfig returns a disabled sink with a 10s request timeout.
func DefaultConfig() Config {
	return Config{
		TimeoutMs:  10000,
		MaxRetries: 1,
	}
}

// Enabled reports whether submissions should be posted at all.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

// UsesOAuth reports whether requests are authorized with client credentials.
func (c Config) UsesOAuth() bool {
	return c.TokenURL != "" && c.ClientID != ""
}

// LoadConfig reads sink configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TIMESHEET_SINK_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("TIMESHEET_SINK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TIMESHEET_SINK_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("TIMESHEET_SINK_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	cfg.TokenURL = os.Getenv("TIMESHEET_SINK_TOKEN_URL")
	cfg.ClientID = os.Getenv("TIMESHEET_SINK_CLIENT_ID")
	cfg.ClientSecret = os.Getenv("TIMESHEET_SINK_CLIENT_SECRET")
	if v := os.Getenv("TIMESHEET_SINK_SCOPES"); v != "" {
		cfg.Scopes = strings.Fields(strings.ReplaceAll(v, ",", " "))
	}

	return cfg
}
