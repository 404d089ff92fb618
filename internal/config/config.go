// Package config loads entrywatch settings from a YAML file with
// environment-variable overrides under the ENTRYWATCH_ prefix. Flags applied
// by the CLI layer take final precedence.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file consulted when --config is not given.
const DefaultPath = "entrywatch.yaml"

// Config holds one run's settings.
type Config struct {
	BaseURL    string `yaml:"base_url" envconfig:"BASE_URL"`
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	DaysBefore int    `yaml:"days_before" envconfig:"DAYS_BEFORE"`
	Include    string `yaml:"include" envconfig:"INCLUDE"`
	Exclude    string `yaml:"exclude" envconfig:"EXCLUDE"`
	Debug      bool   `yaml:"debug" envconfig:"DEBUG"`

	Email    Email    `yaml:"email"`
	Telegram Telegram `yaml:"telegram"`
	Twitter  Twitter  `yaml:"twitter"`
}

// Email configures the SMTP notification sink.
type Email struct {
	Enabled     bool   `yaml:"enabled" envconfig:"EMAIL_ENABLED"`
	To          string `yaml:"to" envconfig:"EMAIL_TO"`
	From        string `yaml:"from" envconfig:"EMAIL_FROM"`
	SMTPServer  string `yaml:"smtp_server" envconfig:"EMAIL_SMTP_SERVER"`
	SMTPPort    int    `yaml:"smtp_port" envconfig:"EMAIL_SMTP_PORT"`
	Username    string `yaml:"username" envconfig:"EMAIL_USERNAME"`
	Password    string `yaml:"password" envconfig:"EMAIL_PASSWORD"`
	OnlyChanges bool   `yaml:"only_changes" envconfig:"EMAIL_ONLY_CHANGES"`
}

// Telegram configures the Telegram Bot API sink.
type Telegram struct {
	Enabled  bool   `yaml:"enabled" envconfig:"TELEGRAM_ENABLED"`
	BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
}

// Twitter configures the Twitter sink. Credentials come from the standard
// TWITTER_* environment variables read by the notifier itself.
type Twitter struct {
	Enabled bool `yaml:"enabled" envconfig:"TWITTER_ENABLED"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataDir:    "./data",
		DaysBefore: 7,
		Email: Email{
			SMTPServer:  "smtp.gmail.com",
			SMTPPort:    587,
			OnlyChanges: true,
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (missing file is fine, unreadable content is an error), then
// ENTRYWATCH_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file; defaults plus environment.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := envconfig.Process("entrywatch", cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that would fail at notification time.
func (c *Config) Validate() error {
	if c.DaysBefore < 0 {
		return fmt.Errorf("days_before must not be negative")
	}
	if c.Email.Enabled {
		if c.Email.To == "" {
			return fmt.Errorf("email notifications enabled but no recipient configured")
		}
		if c.Email.Username == "" || c.Email.Password == "" {
			return fmt.Errorf("email notifications enabled but SMTP credentials not configured")
		}
	}
	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram notifications enabled but bot_token or chat_id not configured")
	}
	return nil
}

const defaultConfigTemplate = `# entrywatch configuration.
# Every value can be overridden with an ENTRYWATCH_* environment variable
# (e.g. ENTRYWATCH_EMAIL_PASSWORD) or, where available, a command-line flag.

# Site root of the monitored club. Leave empty for the default.
base_url: ""

# Where per-event snapshots are stored.
data_dir: ./data

# Monitor events whose dates fall within the next N days.
days_before: 7

# Comma-separated keywords; empty means no restriction.
include: ""
exclude: ""

debug: false

email:
  enabled: false
  to: you@example.com
  from: your-address@gmail.com
  smtp_server: smtp.gmail.com
  smtp_port: 587
  username: your-address@gmail.com
  password: your-app-password
  # Send only when a run detected entry-list changes.
  only_changes: true

telegram:
  enabled: false
  bot_token: ""
  chat_id: ""

twitter:
  # Credentials come from TWITTER_API_KEY, TWITTER_API_SECRET,
  # TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_SECRET.
  enabled: false
`

// WriteDefault writes a commented starter config to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
