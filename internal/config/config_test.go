package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DataDir != "./data" || cfg.DaysBefore != 7 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Email.SMTPServer != "smtp.gmail.com" || cfg.Email.SMTPPort != 587 {
		t.Errorf("unexpected email defaults: %+v", cfg.Email)
	}
	if !cfg.Email.OnlyChanges {
		t.Error("only_changes must default to true")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrywatch.yaml")
	content := `
data_dir: /var/lib/entrywatch
days_before: 14
exclude: scholastic
telegram:
  enabled: true
  bot_token: abc
  chat_id: "42"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/var/lib/entrywatch" || cfg.DaysBefore != 14 || cfg.Exclude != "scholastic" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken != "abc" || cfg.Telegram.ChatID != "42" {
		t.Errorf("telegram section not applied: %+v", cfg.Telegram)
	}
	// Untouched values keep their defaults.
	if cfg.Email.SMTPPort != 587 {
		t.Errorf("default lost: %+v", cfg.Email)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrywatch.yaml")
	if err := os.WriteFile(path, []byte("days_before: 14\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ENTRYWATCH_DAYS_BEFORE", "3")
	t.Setenv("ENTRYWATCH_INCLUDE", "open,blitz")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DaysBefore != 3 {
		t.Errorf("environment must override the file, got %d", cfg.DaysBefore)
	}
	if cfg.Include != "open,blitz" {
		t.Errorf("environment include not applied: %q", cfg.Include)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrywatch.yaml")
	if err := os.WriteFile(path, []byte("days_before: [oops\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"negative window", func(c *Config) { c.DaysBefore = -1 }, true},
		{"email enabled without recipient", func(c *Config) {
			c.Email.Enabled = true
			c.Email.Username = "u"
			c.Email.Password = "p"
		}, true},
		{"email enabled without credentials", func(c *Config) {
			c.Email.Enabled = true
			c.Email.To = "you@example.com"
		}, true},
		{"email fully configured", func(c *Config) {
			c.Email.Enabled = true
			c.Email.To = "you@example.com"
			c.Email.Username = "u"
			c.Email.Password = "p"
		}, false},
		{"telegram enabled without token", func(c *Config) {
			c.Telegram.Enabled = true
			c.Telegram.ChatID = "42"
		}, true},
		{"telegram fully configured", func(c *Config) {
			c.Telegram.Enabled = true
			c.Telegram.BotToken = "abc"
			c.Telegram.ChatID = "42"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrywatch.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "days_before: 7") {
		t.Errorf("template missing expected content:\n%s", data)
	}

	// The written template must itself load cleanly.
	if _, err := Load(path); err != nil {
		t.Errorf("written template failed to load: %v", err)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("expected refusal to overwrite an existing file")
	}
}
