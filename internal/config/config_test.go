package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Evaluation.Cron != "@every 5s" {
		t.Errorf("evaluation cron = %q", cfg.Evaluation.Cron)
	}
	if cfg.Simulation.Volatility != 0.01 {
		t.Errorf("volatility = %v", cfg.Simulation.Volatility)
	}
	if cfg.Portfolio.Currency != "USD" {
		t.Errorf("currency = %q", cfg.Portfolio.Currency)
	}
	if cfg.Log.Level != "info" || !cfg.Log.Console {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.TelegramEnabled() {
		t.Error("telegram should be disabled without credentials")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
evaluation:
  cron: "*/10 * * * * *"
simulation:
  enabled: true
  volatility: 0.02
  seed: 7
portfolio:
  seed_file: configs/portfolio.yaml
  currency: eur
telegram:
  bot_token: from-file
  chat_id: "42"
log:
  level: debug
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("SIMULATION_VOLATILITY", "0.05")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Evaluation.Cron != "*/10 * * * * *" {
		t.Errorf("evaluation cron = %q", cfg.Evaluation.Cron)
	}
	if !cfg.Simulation.Enabled || cfg.Simulation.Seed != 7 {
		t.Errorf("simulation = %+v", cfg.Simulation)
	}
	if cfg.Simulation.Volatility != 0.05 {
		t.Errorf("volatility = %v, want env override", cfg.Simulation.Volatility)
	}
	if cfg.Portfolio.Currency != "EUR" {
		t.Errorf("currency = %q", cfg.Portfolio.Currency)
	}
	if cfg.Telegram.BotToken != "from-env" || cfg.Telegram.ChatID != "42" {
		t.Errorf("telegram = %+v", cfg.Telegram)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if !cfg.TelegramEnabled() {
		t.Error("telegram should be enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "evaluation: [")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad evaluation cron", func(c *Config) { c.Evaluation.Cron = "every now and then" }},
		{"bad simulation cron", func(c *Config) { c.Simulation.Enabled = true; c.Simulation.Cron = "* *" }},
		{"volatility too high", func(c *Config) { c.Simulation.Enabled = true; c.Simulation.Volatility = 1 }},
		{"bad snapshot cron", func(c *Config) { c.Database.SQLitePath = "x.db"; c.Database.SnapshotCron = "soon" }},
		{"token without chat", func(c *Config) { c.Telegram.BotToken = "t" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCronParserAcceptsBothForms(t *testing.T) {
	for _, expr := range []string{"@every 5s", "*/5 * * * * *", "0 9 * * 1-5"} {
		if _, err := CronParser.Parse(expr); err != nil {
			t.Errorf("%q: %v", expr, err)
		}
	}
}

func TestLoad_ExplicitZeroVolatilityKept(t *testing.T) {
	path := writeConfig(t, `
simulation:
  enabled: true
  volatility: 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.Volatility != 0 {
		t.Errorf("volatility = %v, want explicit 0", cfg.Simulation.Volatility)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg, err = Load(writeConfig(t, "simulation:\n  enabled: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.Volatility != defaultVolatility {
		t.Errorf("volatility = %v, want default", cfg.Simulation.Volatility)
	}
}
