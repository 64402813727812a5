// Package config reads the dashboard configuration from environment
// variables and command-line flags. Environment variables win over flags;
// a .env file is loaded when present.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/rzlpil/attendance-engine/attendance"
)

// Config holds the runtime parameters of the attendance dashboard.
type Config struct {
	RunAddress   string `env:"RUN_ADDRESS"`
	DatabasePath string `env:"DATABASE_PATH"`
	Convention   string `env:"PERIOD_CONVENTION"`
	UserA        string `env:"USER_A"`
	UserB        string `env:"USER_B"`
	GasMoneyRate string `env:"GAS_MONEY_RATE"`
	SlackToken   string `env:"SLACK_BOT_TOKEN"`
	SlackChannel string `env:"SLACK_CHANNEL_ID"`
}

// Parse reads configuration from a .env file (if any), environment
// variables, and command-line flags.
func Parse() (*Config, error) {
	return parse(flag.CommandLine, nil)
}

// parse is separated for tests, which supply their own FlagSet and args.
func parse(fs *flag.FlagSet, args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabasePath := cfg.DatabasePath
	envConvention := cfg.Convention
	envUserA := cfg.UserA
	envUserB := cfg.UserB
	envRate := cfg.GasMoneyRate

	fs.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	fs.StringVar(&cfg.DatabasePath, "db", "kehadiran.db", "SQLite database path")
	fs.StringVar(&cfg.Convention, "convention", string(attendance.ConventionDays16to15), "period boundary convention")
	fs.StringVar(&cfg.UserA, "user-a", "rizal", "first tracked user")
	fs.StringVar(&cfg.UserB, "user-b", "dinda", "second tracked user")
	fs.StringVar(&cfg.GasMoneyRate, "rate", "10000", "gas money rate per coincident day")

	if args == nil {
		flag.Parse()
	} else if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabasePath != "" {
		cfg.DatabasePath = envDatabasePath
	}
	if envConvention != "" {
		cfg.Convention = envConvention
	}
	if envUserA != "" {
		cfg.UserA = envUserA
	}
	if envUserB != "" {
		cfg.UserB = envUserB
	}
	if envRate != "" {
		cfg.GasMoneyRate = envRate
	}

	if _, err := cfg.PeriodConvention(); err != nil {
		return nil, err
	}
	if _, err := cfg.RatePerDay(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// PeriodConvention returns the validated period convention.
func (c *Config) PeriodConvention() (attendance.Convention, error) {
	return attendance.ParseConvention(c.Convention)
}

// RatePerDay returns the gas money rate as an exact decimal.
func (c *Config) RatePerDay() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.GasMoneyRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse gas money rate %q: %w", c.GasMoneyRate, err)
	}
	return rate, nil
}

// SlackEnabled reports whether Slack reporting is configured.
func (c *Config) SlackEnabled() bool {
	return c.SlackToken != "" && c.SlackChannel != ""
}
