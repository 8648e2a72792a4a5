// Package config loads service settings: defaults, then an optional YAML
// file named by CONFIG_FILE, then environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/edinson0810/pruebaCasa/internal/platform/httpserver"
	"github.com/edinson0810/pruebaCasa/internal/platform/rabbitmq"
	"github.com/edinson0810/pruebaCasa/internal/platform/spanner"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverSpanner  = "spanner"
)

// Broker drivers.
const (
	BrokerNone     = "none"
	BrokerRabbitMQ = "rabbitmq"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	HTTP     httpserver.Config `yaml:"http"`
	Log      Log               `yaml:"log"`
	Store    Store             `yaml:"store"`
	Broker   Broker            `yaml:"broker"`
	Currency string            `yaml:"currency"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Store struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLite         `yaml:"sqlite"`
	Postgres Postgres       `yaml:"postgres"`
	Spanner  spanner.Config `yaml:"spanner"`
}

type SQLite struct {
	Path string `yaml:"path"`
}

type Postgres struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	Database       string        `yaml:"database"`
	SSLMode        string        `yaml:"sslmode"`
	MaxOpenConns   int           `yaml:"max_open_conns"`
	ConnectRetries int           `yaml:"connect_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
}

// DSN renders a postgres:// URL accepted by pgx.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	if p.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {p.SSLMode}}.Encode()
	}
	return u.String()
}

type Broker struct {
	Driver   string          `yaml:"driver"`
	RabbitMQ rabbitmq.Config `yaml:"rabbitmq"`
}

// Default returns a configuration that runs locally against a SQLite file
// with no broker.
func Default() Config {
	return Config{
		HTTP: httpserver.DefaultConfig(),
		Log:  Log{Level: "info", Format: "json"},
		Store: Store{
			Driver: DriverSQLite,
			SQLite: SQLite{Path: "restaurant.db"},
			Postgres: Postgres{
				Host:           "localhost",
				Port:           5432,
				User:           "restaurant",
				Database:       "restaurant",
				SSLMode:        "disable",
				MaxOpenConns:   10,
				ConnectRetries: 10,
				RetryDelay:     2 * time.Second,
			},
			Spanner: spanner.Config{
				ProjectID:  "local-project",
				InstanceID: "local-instance",
				DatabaseID: "restaurant",
			},
		},
		Broker: Broker{
			Driver: BrokerNone,
			RabbitMQ: rabbitmq.Config{
				Host:     "localhost",
				Port:     5672,
				User:     "guest",
				Password: "guest",
				Exchange: "kitchen_board",
			},
		},
		Currency: "USD",
	}
}

// Load builds the configuration and validates it.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.HTTP.Host = getEnv("HTTP_HOST", c.HTTP.Host)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Currency = getEnv("CURRENCY", c.Currency)

	c.Store.Driver = getEnv("STORE_DRIVER", c.Store.Driver)
	c.Store.SQLite.Path = getEnv("SQLITE_PATH", c.Store.SQLite.Path)

	pg := &c.Store.Postgres
	pg.Host = getEnv("POSTGRES_HOST", pg.Host)
	pg.User = getEnv("POSTGRES_USER", pg.User)
	pg.Password = getEnv("POSTGRES_PASSWORD", pg.Password)
	pg.Database = getEnv("POSTGRES_DB", pg.Database)
	pg.SSLMode = getEnv("POSTGRES_SSLMODE", pg.SSLMode)

	sp := &c.Store.Spanner
	sp.ProjectID = getEnv("SPANNER_PROJECT_ID", sp.ProjectID)
	sp.InstanceID = getEnv("SPANNER_INSTANCE_ID", sp.InstanceID)
	sp.DatabaseID = getEnv("SPANNER_DATABASE_ID", sp.DatabaseID)

	c.Broker.Driver = getEnv("BROKER_DRIVER", c.Broker.Driver)
	mq := &c.Broker.RabbitMQ
	mq.Host = getEnv("RABBITMQ_HOST", mq.Host)
	mq.User = getEnv("RABBITMQ_USER", mq.User)
	mq.Password = getEnv("RABBITMQ_PASSWORD", mq.Password)
	mq.VHost = getEnv("RABBITMQ_VHOST", mq.VHost)
	mq.Exchange = getEnv("RABBITMQ_EXCHANGE", mq.Exchange)

	var err error
	if c.HTTP.Port, err = getEnvInt("HTTP_PORT", c.HTTP.Port); err != nil {
		return err
	}
	if pg.Port, err = getEnvInt("POSTGRES_PORT", pg.Port); err != nil {
		return err
	}
	if mq.Port, err = getEnvInt("RABBITMQ_PORT", mq.Port); err != nil {
		return err
	}
	if raw := os.Getenv("HTTP_ALLOWED_ORIGINS"); raw != "" {
		c.HTTP.AllowedOrigins = splitList(raw)
	}
	return nil
}

// Validate checks the settings the selected drivers need.
func (c Config) Validate() error {
	var errs []error

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: http.port %d out of range", ErrInvalid, c.HTTP.Port))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if _, err := types.ValidateCurrency(c.Currency); err != nil {
		errs = append(errs, fmt.Errorf("%w: currency: %w", ErrInvalid, err))
	}

	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLite.Path == "" {
			errs = append(errs, fmt.Errorf("%w: store.sqlite.path is required", ErrInvalid))
		}
	case DriverPostgres:
		if c.Store.Postgres.Host == "" || c.Store.Postgres.Database == "" {
			errs = append(errs, fmt.Errorf("%w: store.postgres host and database are required", ErrInvalid))
		}
	case DriverSpanner:
		sp := c.Store.Spanner
		if sp.ProjectID == "" || sp.InstanceID == "" || sp.DatabaseID == "" {
			errs = append(errs, fmt.Errorf("%w: store.spanner needs project, instance and database", ErrInvalid))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown store driver %q", ErrInvalid, c.Store.Driver))
	}

	switch c.Broker.Driver {
	case BrokerNone, "":
	case BrokerRabbitMQ:
		if c.Broker.RabbitMQ.Host == "" || c.Broker.RabbitMQ.Exchange == "" {
			errs = append(errs, fmt.Errorf("%w: broker.rabbitmq host and exchange are required", ErrInvalid))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown broker driver %q", ErrInvalid, c.Broker.Driver))
	}

	return errors.Join(errs...)
}

// SlogLevel maps the configured level name.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
	}
	return level, nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
