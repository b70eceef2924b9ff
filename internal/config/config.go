package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/pets-service/internal/logger"
)

// Storage drivers understood by the app wiring.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Storage  StorageConfig       `mapstructure:"storage"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	// Timeouts are in seconds.
	ReadTimeout     int `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    int `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

type StorageConfig struct {
	Driver      string `mapstructure:"driver" validate:"oneof=memory postgres sqlite"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"db"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

// Validate checks the fields that the rest of the wiring relies on.
// Postgres credentials are only required when Postgres is the selected driver.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c.App); err != nil {
		return fmt.Errorf("app config: %w", err)
	}
	if err := v.Struct(c.Storage); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		var missing []error
		if c.Postgres.User == "" {
			missing = append(missing, errors.New("postgres.user is required"))
		}
		if c.Postgres.Password == "" {
			missing = append(missing, errors.New("postgres.password is required"))
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, errors.New("postgres.db is required"))
		}
		if c.Postgres.Host == "" {
			missing = append(missing, errors.New("postgres.host is required"))
		}
		if len(missing) > 0 {
			return errors.Join(missing...)
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("storage.sqlite_path is required for the sqlite driver")
		}
	}
	return nil
}
