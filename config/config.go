package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	NATS     NATSConfig     `yaml:"nats"`
	HTTP     HTTPConfig     `yaml:"http"`
	JWT      JWTConfig      `yaml:"jwt"`
	Game     GameConfig     `yaml:"game"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the HTTP listener configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// JWTConfig holds guest session token configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// GameConfig holds the party-wide game tunables.
type GameConfig struct {
	StartingBalance     int64 `yaml:"starting_balance"`
	WagerMultiplier     int64 `yaml:"wager_multiplier"`
	KillCooldownSeconds int   `yaml:"kill_cooldown_seconds"`
	RoundDuration       int   `yaml:"round_duration_minutes"`
	BlackoutInterval    int   `yaml:"blackout_interval_minutes"`
	KillerWindowSeconds int   `yaml:"killer_window_seconds"`
	TaskBonusPercent    int   `yaml:"task_bonus_percent"`
}

// MetricsConfig holds the Prometheus metrics listener configuration.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("WAGER_MULTIPLIER"); v != "" {
		mult, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WAGER_MULTIPLIER: %w", err)
		}
		cfg.Game.WagerMultiplier = mult
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required (config file or DATABASE_URL)")
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		HTTP:    HTTPConfig{Addr: ":8080"},
		NATS:    NATSConfig{URL: "nats://localhost:4222"},
		JWT:     JWTConfig{DefaultTTL: 12 * time.Hour},
		Metrics: MetricsConfig{Addr: ":9090"},
		Game: GameConfig{
			StartingBalance:     1000,
			WagerMultiplier:     2,
			KillCooldownSeconds: 30,
			RoundDuration:       45,
			BlackoutInterval:    20,
			KillerWindowSeconds: 60,
			TaskBonusPercent:    15,
		},
	}
}
