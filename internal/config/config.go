// Package config loads the wurstliga configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for unusable configurations
var ErrInvalid = errors.New("invalid config")

// Config holds the settings for one season of one kicktipp group
type Config struct {
	BaseURL         string        `yaml:"base_url"`
	Group           string        `yaml:"group"`
	TippsaisonID    int           `yaml:"tippsaison_id"`
	Season          string        `yaml:"season"`
	Ladder          []int         `yaml:"ladder"` // league points by dense rank, index 0 = rank 1
	MatchesPerRound int           `yaml:"matches_per_round"`
	Timezone        string        `yaml:"timezone"`
	UserAgent       string        `yaml:"user_agent"`
	Timeout         time.Duration `yaml:"timeout"`
	Retry           int           `yaml:"retry"`
	SleepBetween    time.Duration `yaml:"sleep_between"`
	FallbackRounds  int           `yaml:"fallback_rounds"`
	DataDir         string        `yaml:"data_dir"`
	MetricsFile     string        `yaml:"metrics_file"`
	Redis           RedisConfig   `yaml:"redis"`

	location *time.Location
}

// RedisConfig holds the optional Redis storage settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Default returns the configuration of the Wurstliga 2025-26 season
func Default() Config {
	return Config{
		BaseURL:         "https://www.kicktipp.de",
		Group:           "wurstliga",
		TippsaisonID:    3944954,
		Season:          "2025-26",
		Ladder:          []int{10, 8, 6, 5, 4, 3, 2, 1},
		MatchesPerRound: 9,
		Timezone:        "Europe/Berlin",
		UserAgent:       "wurstliga-scraper/1.0 (github.com/pfrederiksen/wurstliga)",
		Timeout:         30 * time.Second,
		Retry:           2,
		SleepBetween:    time.Second,
		FallbackRounds:  34,
		DataDir:         "./data",
		Redis: RedisConfig{
			Prefix: "wurstliga",
		},
	}
}

// Load reads the configuration from a YAML file. Keys missing from the file keep their
// default value. A missing file is not an error: defaults plus environment are used.
func Load(filename string) (Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("WURSTLIGA_SEASON"); v != "" {
		cfg.Season = v
	}
	if v := os.Getenv("WURSTLIGA_TIPPSAISON_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: WURSTLIGA_TIPPSAISON_ID: %v", ErrInvalid, err)
		}
		cfg.TippsaisonID = id
	}
	if v := os.Getenv("WURSTLIGA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("WURSTLIGA_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("WURSTLIGA_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("WURSTLIGA_METRICS_FILE"); v != "" {
		cfg.MetricsFile = v
	}
	if v := os.Getenv("WURSTLIGA_LADDER"); v != "" {
		ladder, err := ParseLadder(v)
		if err != nil {
			return fmt.Errorf("%w: WURSTLIGA_LADDER: %v", ErrInvalid, err)
		}
		cfg.Ladder = ladder
	}
	return nil
}

// ParseLadder parses a comma separated list of league point values such as "10,8,6,5"
func ParseLadder(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ladder := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("ladder value %q: %w", part, err)
		}
		ladder = append(ladder, n)
	}
	return ladder, nil
}

// Validate checks the configuration and resolves the timezone
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Season) == "" {
		return fmt.Errorf("%w: season is required", ErrInvalid)
	}
	if len(c.Ladder) == 0 {
		return fmt.Errorf("%w: ladder must not be empty", ErrInvalid)
	}
	for i, pts := range c.Ladder {
		if pts < 0 {
			return fmt.Errorf("%w: ladder[%d] = %d is negative", ErrInvalid, i, pts)
		}
	}
	if c.MatchesPerRound < 1 {
		return fmt.Errorf("%w: matches_per_round must be at least 1", ErrInvalid)
	}
	if c.Retry < 0 {
		return fmt.Errorf("%w: retry must not be negative", ErrInvalid)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalid, c.Timezone, err)
	}
	c.location = loc

	return nil
}

// Location returns the configured timezone. It falls back to UTC when the
// configuration has not been validated.
func (c Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		return loc
	}
	return time.UTC
}
