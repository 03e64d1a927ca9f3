package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GRPC.Addr)
	assert.Equal(t, "dev-token", cfg.GRPC.APIToken)
	assert.Equal(t, "0 0 22 * * 1-5", cfg.Schedule.PriceRefreshCron)
	assert.Equal(t, 12, cfg.Projection.SampleEveryMonths)
	assert.True(t, decimal.NewFromInt(7).Equal(cfg.AnnualReturn()))
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=wealthtrack sslmode=disable", cfg.DSN())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  name: ledger
grpc:
  addr: ":9090"
quote:
  api_key: file-key
schedule:
  owners:
    - 6f1c1f39-9a43-4f2e-8a3b-2f0f1f0b7f11
projection:
  default_annual_return: "5.5"
`)
	t.Setenv("DB_NAME", "from-env")
	t.Setenv("GRPC_PORT", "7070")
	t.Setenv("API_TOKEN", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Name)
	assert.Equal(t, ":7070", cfg.GRPC.Addr)
	assert.Equal(t, "secret", cfg.GRPC.APIToken)
	assert.Equal(t, "file-key", cfg.Quote.APIKey)
	assert.True(t, decimal.RequireFromString("5.5").Equal(cfg.AnnualReturn()))

	owners, err := cfg.OwnerIDs()
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, "6f1c1f39-9a43-4f2e-8a3b-2f0f1f0b7f11", owners[0].String())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ConnStringWins(t *testing.T) {
	t.Setenv("DB_CONN_STR", "postgres://u:p@h/db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@h/db", cfg.DSN())
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "database: [unterminated"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestRefreshOwnersFromEnv(t *testing.T) {
	t.Setenv("REFRESH_OWNERS", " 6f1c1f39-9a43-4f2e-8a3b-2f0f1f0b7f11 , ,bad")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"6f1c1f39-9a43-4f2e-8a3b-2f0f1f0b7f11", "bad"}, cfg.Schedule.Owners)
	_, err = cfg.OwnerIDs()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectedErr string
	}{
		{name: "Empty Token", mutate: func(c *Config) { c.GRPC.APIToken = "" }, expectedErr: "grpc.api_token is required"},
		{name: "Bad Return", mutate: func(c *Config) { c.Projection.DefaultAnnualReturn = "seven" }, expectedErr: "default_annual_return"},
		{name: "Negative Interval", mutate: func(c *Config) { c.Projection.SampleEveryMonths = -1 }, expectedErr: "sample_every_months"},
		{name: "Bad Cron", mutate: func(c *Config) { c.Schedule.PriceRefreshCron = "every day" }, expectedErr: "price_refresh_cron"},
		{name: "Bad Owner", mutate: func(c *Config) { c.Schedule.Owners = []string{"nope"} }, expectedErr: "invalid owner"},
		{
			name: "Owners Without Key",
			mutate: func(c *Config) {
				c.Schedule.Owners = []string{"6f1c1f39-9a43-4f2e-8a3b-2f0f1f0b7f11"}
				c.Quote.APIKey = ""
			},
			expectedErr: "quote.api_key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}
