package config

import "time"

// Config holds runtime settings for the TextMatch CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - RequestTimeout: per-request HTTP timeout.
//   - NotificationPollInterval: how often the notification list is refreshed.
//   - ChatPollInterval: how often an open conversation is refreshed.
//   - DatabasePath: location of the local SQLite session database.
//   - LogLevel: minimum log level (debug, info, warn, error).
type Config struct {
	ServerBaseURL            string
	RequestTimeout           time.Duration
	NotificationPollInterval time.Duration
	ChatPollInterval         time.Duration
	DatabasePath             string
	LogLevel                 string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.NotificationPollInterval = 10 * time.Second
	c.ChatPollInterval = 3 * time.Second
	c.DatabasePath = "textmatch.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
