package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"PortfolioSentinel/internal/logging"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "configs/config.yaml"

// defaultVolatility applies only when simulation.volatility is absent; an
// explicit 0 freezes simulated prices.
const defaultVolatility = 0.01

// Config holds all application configuration.
type Config struct {
	Evaluation struct {
		Cron string `yaml:"cron"`
	} `yaml:"evaluation"`
	Simulation struct {
		Enabled    bool    `yaml:"enabled"`
		Cron       string  `yaml:"cron"`
		Volatility float64 `yaml:"volatility"`
		Seed       int64   `yaml:"seed"`
	} `yaml:"simulation"`
	Portfolio struct {
		SeedFile string `yaml:"seed_file"`
		Currency string `yaml:"currency"`
	} `yaml:"portfolio"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath   string `yaml:"sqlite_path"`
		SnapshotCron string `yaml:"snapshot_cron"`
	} `yaml:"database"`
	Log   logging.Config `yaml:"log"`
	Proxy string         `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{Log: logging.DefaultConfig()}
	cfg.Simulation.Volatility = defaultVolatility

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("EVALUATION_CRON"); v != "" {
		cfg.Evaluation.Cron = v
	}
	if v := os.Getenv("SIMULATION_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Simulation.Enabled = b
		}
	}
	if v := os.Getenv("SIMULATION_VOLATILITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.Volatility = f
		}
	}
	if v := os.Getenv("PORTFOLIO_SEED_FILE"); v != "" {
		cfg.Portfolio.SeedFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Evaluation.Cron == "" {
		cfg.Evaluation.Cron = "@every 5s"
	}
	if cfg.Simulation.Cron == "" {
		cfg.Simulation.Cron = "@every 5s"
	}
	if cfg.Portfolio.Currency == "" {
		cfg.Portfolio.Currency = "USD"
	}
	cfg.Portfolio.Currency = strings.ToUpper(cfg.Portfolio.Currency)
	if cfg.Database.SnapshotCron == "" {
		cfg.Database.SnapshotCron = "0 */15 * * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// CronParser accepts five or six field specs and descriptors such as "@every 5s".
var CronParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate checks that the schedules parse and the numeric settings are sane.
func (c *Config) Validate() error {
	parser := CronParser
	if _, err := parser.Parse(c.Evaluation.Cron); err != nil {
		return fmt.Errorf("evaluation.cron: %w", err)
	}
	if c.Simulation.Enabled {
		if _, err := parser.Parse(c.Simulation.Cron); err != nil {
			return fmt.Errorf("simulation.cron: %w", err)
		}
		if c.Simulation.Volatility < 0 || c.Simulation.Volatility >= 1 {
			return fmt.Errorf("simulation.volatility must be in [0, 1)")
		}
	}
	if c.Database.SQLitePath != "" {
		if _, err := parser.Parse(c.Database.SnapshotCron); err != nil {
			return fmt.Errorf("database.snapshot_cron: %w", err)
		}
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether Telegram credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
