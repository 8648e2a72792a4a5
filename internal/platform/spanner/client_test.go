package spanner

import (
	"strings"
	"testing"
)

func TestConfig_DSN(t *testing.T) {
	cfg := Config{ProjectID: "p", InstanceID: "i", DatabaseID: "restaurant"}

	if got, want := cfg.DSN(), "projects/p/instances/i/databases/restaurant"; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestConfig_ClientConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantMin uint64
		wantMax uint64
	}{
		{name: "explicit pool", cfg: Config{MinSessions: 10, MaxSessions: 50}, wantMin: 10, wantMax: 50},
		{name: "min clamped to max", cfg: Config{MinSessions: 80, MaxSessions: 20}, wantMin: 20, wantMax: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := tt.cfg.clientConfig().SessionPoolConfig
			if pool.MinOpened != tt.wantMin || pool.MaxOpened != tt.wantMax {
				t.Errorf("expected %d/%d sessions, got %d/%d", tt.wantMin, tt.wantMax, pool.MinOpened, pool.MaxOpened)
			}
		})
	}
}

func TestUsesEmulator(t *testing.T) {
	t.Setenv("SPANNER_EMULATOR_HOST", "localhost:9010")
	if !UsesEmulator() {
		t.Error("expected emulator to be detected")
	}
}

func TestSchemaStatements(t *testing.T) {
	stmts := SchemaStatements()

	if len(stmts) != 13 {
		t.Fatalf("expected 13 DDL statements, got %d", len(stmts))
	}
	if !strings.HasPrefix(stmts[0], "CREATE SEQUENCE StaffSeq") {
		t.Errorf("unexpected first statement: %s", stmts[0])
	}
	for _, stmt := range stmts {
		if strings.Contains(stmt, "--") || strings.HasSuffix(stmt, ";") {
			t.Errorf("statement not cleaned: %q", stmt)
		}
	}
}
