// Package spanner provides Cloud Spanner client initialization and transaction scopes.
package spanner

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/spanner"
)

// Config holds Spanner connection configuration.
type Config struct {
	ProjectID  string `yaml:"project_id"`
	InstanceID string `yaml:"instance_id"`
	DatabaseID string `yaml:"database_id"`
	// MinSessions and MaxSessions size the client session pool. Zero keeps
	// the library defaults.
	MinSessions uint64 `yaml:"min_sessions"`
	MaxSessions uint64 `yaml:"max_sessions"`
}

// DSN returns the Spanner database connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s",
		c.ProjectID, c.InstanceID, c.DatabaseID)
}

// UsesEmulator reports whether SPANNER_EMULATOR_HOST redirects the client.
func UsesEmulator() bool {
	return os.Getenv("SPANNER_EMULATOR_HOST") != ""
}

func (c Config) clientConfig() spanner.ClientConfig {
	pool := spanner.DefaultSessionPoolConfig
	if c.MinSessions > 0 {
		pool.MinOpened = c.MinSessions
	}
	if c.MaxSessions > 0 {
		pool.MaxOpened = c.MaxSessions
	}
	if pool.MinOpened > pool.MaxOpened {
		pool.MinOpened = pool.MaxOpened
	}
	return spanner.ClientConfig{SessionPoolConfig: pool}
}

// NewClient connects to the configured database. The caller closes it.
func NewClient(ctx context.Context, cfg Config) (*spanner.Client, error) {
	client, err := spanner.NewClientWithConfig(ctx, cfg.DSN(), cfg.clientConfig())
	if err != nil {
		return nil, fmt.Errorf("creating spanner client for %s: %w", cfg.DSN(), err)
	}
	return client, nil
}
