package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	Export     ExportConfig     `mapstructure:"export"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

// DatabaseConfig selects the store. sqlite uses Path; postgres uses the remaining fields.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds the connection string for the configured driver
func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverPostgres {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
	}
	return SQLiteDSN(c.Path)
}

// SQLiteDSN enables foreign keys on every connection
func SQLiteDSN(path string) string {
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig: when Textfile is set the registry is dumped there on exit
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

type CacheConfig struct {
	AirportTTLSeconds int `mapstructure:"airport_ttl_seconds"`
	CleanupSeconds    int `mapstructure:"cleanup_seconds"`
}

// SchedulingConfig: flights departing HomeBase trigger the return-flight reminder
type SchedulingConfig struct {
	HomeBase string `mapstructure:"home_base"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration. Priority: env > config file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.env", "development")

	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "flights.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "dispatch")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stderr")

	v.SetDefault("metrics.textfile", "")

	v.SetDefault("cache.airport_ttl_seconds", 300)
	v.SetDefault("cache.cleanup_seconds", 600)

	v.SetDefault("scheduling.home_base", "LHR")
	v.SetDefault("export.dir", ".")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dispatch")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DISPATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Scheduling.HomeBase = strings.ToUpper(strings.TrimSpace(cfg.Scheduling.HomeBase))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the program cannot run without
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("config validation failed: db.path must not be empty")
		}
	case DriverPostgres:
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			return fmt.Errorf("config validation failed: db.port must be between 1 and 65535")
		}
	default:
		return fmt.Errorf("config validation failed: unsupported db.driver %q", c.Database.Driver)
	}
	if c.Scheduling.HomeBase != "" && len(c.Scheduling.HomeBase) != 3 {
		return fmt.Errorf("config validation failed: scheduling.home_base must be a 3-letter IATA code")
	}
	return nil
}
