package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edinson0810/pruebaCasa/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, config.BrokerNone, cfg.Broker.Driver)
	assert.Equal(t, "USD", cfg.Currency)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 9090
  shutdown_timeout: 5s
log:
  level: debug
store:
  driver: postgres
  postgres:
    host: db
    port: 5433
    user: kitchen
    password: s3cret
    database: restaurant
broker:
  driver: rabbitmq
  rabbitmq:
    host: mq
    port: 5672
    exchange: kitchen_board
currency: eur
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_PORT", "9191")
	t.Setenv("POSTGRES_PASSWORD", "from-env")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout, "unset keys keep their defaults")
	assert.Equal(t, config.DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "from-env", cfg.Store.Postgres.Password)
	assert.Equal(t, "postgres://kitchen:from-env@db:5433/restaurant?sslmode=disable", cfg.Store.Postgres.DSN())
	assert.Equal(t, "mq", cfg.Broker.RabbitMQ.Host)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store", map[string]string{"STORE_DRIVER": "oracle"}},
		{"unknown broker", map[string]string{"BROKER_DRIVER": "kafka"}},
		{"bad port", map[string]string{"HTTP_PORT": "eighty"}},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}},
		{"bad currency", map[string]string{"CURRENCY": "EURO"}},
		{"zero-decimal currency", map[string]string{"CURRENCY": "JPY"}},
		{"three-decimal currency", map[string]string{"CURRENCY": "KWD"}},
		{"missing file", map[string]string{"CONFIG_FILE": "/does/not/exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()

			assert.Error(t, err)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := config.Default()
	cfg.HTTP.Port = 0
	cfg.Store.Driver = "oracle"

	err := cfg.Validate()

	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "http.port")
	assert.Contains(t, err.Error(), "oracle")
}
