package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		ConnString string `yaml:"conn_string"`
		Host       string `yaml:"host"`
		Port       string `yaml:"port"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		Name       string `yaml:"name"`
		Migrate    bool   `yaml:"migrate"`
	} `yaml:"database"`
	GRPC struct {
		Addr     string `yaml:"addr"`
		APIToken string `yaml:"api_token"`
	} `yaml:"grpc"`
	Quote struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"quote"`
	Schedule struct {
		PriceRefreshCron string   `yaml:"price_refresh_cron"`
		Owners           []string `yaml:"owners"` // Owners whose positions are refreshed
	} `yaml:"schedule"`
	Projection struct {
		DefaultAnnualReturn string `yaml:"default_annual_return"` // Percent per year
		SampleEveryMonths   int    `yaml:"sample_every_months"`
	} `yaml:"projection"`
}

// Load reads config from a YAML file, then a .env file, then applies environment variable overrides.
// Missing files are not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the process environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_CONN_STR"); v != "" {
		cfg.Database.ConnString = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.Database.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("DB_MIGRATE"); v != "" {
		if migrate, err := strconv.ParseBool(v); err == nil {
			cfg.Database.Migrate = migrate
		}
	}
	if v := os.Getenv("GRPC_PORT"); v != "" {
		cfg.GRPC.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("API_TOKEN"); v != "" {
		cfg.GRPC.APIToken = v
	}
	if v := os.Getenv("ALPHAVANTAGE_BASE_URL"); v != "" {
		cfg.Quote.BaseURL = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.Quote.APIKey = v
	}
	if v := os.Getenv("PRICE_REFRESH_CRON"); v != "" {
		cfg.Schedule.PriceRefreshCron = v
	}
	if v := os.Getenv("REFRESH_OWNERS"); v != "" {
		cfg.Schedule.Owners = splitList(v)
	}
	if v := os.Getenv("DEFAULT_ANNUAL_RETURN"); v != "" {
		cfg.Projection.DefaultAnnualReturn = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.Password == "" {
		cfg.Database.Password = "postgres"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "wealthtrack"
	}
	if cfg.GRPC.Addr == "" {
		cfg.GRPC.Addr = ":8080"
	}
	if cfg.GRPC.APIToken == "" {
		cfg.GRPC.APIToken = "dev-token"
	}
	if cfg.Quote.TimeoutSeconds == 0 {
		cfg.Quote.TimeoutSeconds = 15
	}
	if cfg.Schedule.PriceRefreshCron == "" {
		cfg.Schedule.PriceRefreshCron = "0 0 22 * * 1-5"
	}
	if cfg.Projection.DefaultAnnualReturn == "" {
		cfg.Projection.DefaultAnnualReturn = "7"
	}
	if cfg.Projection.SampleEveryMonths == 0 {
		cfg.Projection.SampleEveryMonths = 12
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DSN returns the Postgres connection string.
// An explicit conn_string wins over the individual parts.
func (c *Config) DSN() string {
	if c.Database.ConnString != "" {
		return c.Database.ConnString
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name)
}

// AnnualReturn returns the default annual return percent used to seed projections.
func (c *Config) AnnualReturn() decimal.Decimal {
	d, err := decimal.NewFromString(c.Projection.DefaultAnnualReturn)
	if err != nil {
		return decimal.NewFromInt(7)
	}
	return d
}

// OwnerIDs parses the configured refresh owners.
func (c *Config) OwnerIDs() ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(c.Schedule.Owners))
	for _, raw := range c.Schedule.Owners {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("schedule.owners: invalid owner %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.GRPC.APIToken == "" {
		return fmt.Errorf("grpc.api_token is required")
	}
	if _, err := decimal.NewFromString(c.Projection.DefaultAnnualReturn); err != nil {
		return fmt.Errorf("projection.default_annual_return must be a decimal: %w", err)
	}
	if c.Projection.SampleEveryMonths < 0 {
		return fmt.Errorf("projection.sample_every_months must not be negative")
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(c.Schedule.PriceRefreshCron); err != nil {
		return fmt.Errorf("schedule.price_refresh_cron is invalid: %w", err)
	}
	if _, err := c.OwnerIDs(); err != nil {
		return err
	}
	if len(c.Schedule.Owners) > 0 && c.Quote.APIKey == "" {
		return fmt.Errorf("quote.api_key is required when schedule.owners is set")
	}
	return nil
}
