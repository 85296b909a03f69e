package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/draftboard/go/clients/sleeper_client"
	"github.com/mcdev12/draftboard/go/internal/kvstore"
)

type Config struct {
	LeagueID      string                `yaml:"league_id"`
	DefaultRounds int                   `yaml:"default_rounds"`
	Sleeper       sleeper_client.Config `yaml:"sleeper"`
	Storage       kvstore.Config        `yaml:"storage"`
	Rankings      RankingsConfig        `yaml:"rankings"`
	Server        ServerConfig          `yaml:"server"`
	Events        EventsConfig          `yaml:"events"`
	Log           LogConfig             `yaml:"log"`
}

type RankingsConfig struct {
	// Table is a ranking table YAML file; empty uses the built-in table.
	Table string `yaml:"table"`
}

type ServerConfig struct {
	Port           string        `yaml:"port"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// EventsConfig publishes board updates to NATS when NATSURL is set.
type EventsConfig struct {
	NATSURL       string `yaml:"nats_url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func defaultConfig() Config {
	return Config{
		DefaultRounds: 5,
		Storage: kvstore.Config{
			Driver: kvstore.DriverFile,
			Path:   "data",
		},
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
			RequestTimeout: 30 * time.Second,
		},
		Events: EventsConfig{
			SubjectPrefix: "draftboard",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxAgeDays: 28,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// loadConfig reads path over the defaults, then applies environment
// overrides. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	config.applyEnv()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv() {
	c.LeagueID = getEnv("LEAGUE_ID", c.LeagueID)
	c.DefaultRounds = getEnvAsInt("DEFAULT_ROUNDS", c.DefaultRounds)
	c.Sleeper.BaseURL = getEnv("SLEEPER_BASE_URL", c.Sleeper.BaseURL)
	c.Storage.Driver = getEnv("STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.Path = getEnv("STORAGE_PATH", c.Storage.Path)
	c.Storage.DSN = getEnv("DATABASE_URL", c.Storage.DSN)
	c.Storage.NATSURL = getEnv("NATS_URL", c.Storage.NATSURL)
	c.Rankings.Table = getEnv("RANKINGS_TABLE", c.Rankings.Table)
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Events.NATSURL = getEnv("EVENTS_NATS_URL", c.Events.NATSURL)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)
}

func (c *Config) validate() error {
	if c.LeagueID == "" {
		return errors.New("league_id is required (set it in the config file or LEAGUE_ID)")
	}
	if c.DefaultRounds < 1 {
		return fmt.Errorf("default_rounds must be positive, got %d", c.DefaultRounds)
	}
	return nil
}
