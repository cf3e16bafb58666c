package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/lux2ube/Customer-service-sub002/internal/ingest"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"remit-ledger"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host            string        `envconfig:"DB_HOST" default:"localhost"`
		Port            int           `envconfig:"DB_PORT" default:"5432"`
		User            string        `envconfig:"DB_USER" default:"postgres"`
		Password        string        `envconfig:"DB_PASSWORD" default:""`
		Name            string        `envconfig:"DB_NAME" default:"remit"`
		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	// Exchange rates as units of currency per US dollar. Rates change by
	// deploy, not per transaction.
	FX struct {
		YERPerUSD float64 `envconfig:"FX_YER_PER_USD" default:"500"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Rates builds the conversion table ingestion uses. USD and USDT are pegged
// at parity.
func (c *Config) Rates() ingest.Rates {
	return ingest.Rates{
		"USD":  decimal.NewFromInt(1),
		"USDT": decimal.NewFromInt(1),
		"YER":  decimal.NewFromFloat(c.FX.YERPerUSD),
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
