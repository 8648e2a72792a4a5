// Package emulator provisions throwaway databases on the Cloud Spanner
// emulator for repository tests.
package emulator

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	platformspanner "github.com/edinson0810/pruebaCasa/internal/platform/spanner"
)

const setupTimeout = 2 * time.Minute

// NewDatabase creates a database with the service schema on the emulator and
// returns a client for it. The database is dropped when the test ends. The
// test is skipped unless SPANNER_EMULATOR_HOST is set.
func NewDatabase(t testing.TB) *spanner.Client {
	t.Helper()
	if !platformspanner.UsesEmulator() {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	cfg := platformspanner.Config{
		ProjectID:  getEnv("SPANNER_PROJECT_ID", "test-project"),
		InstanceID: getEnv("SPANNER_INSTANCE_ID", "test-instance"),
		DatabaseID: "t_" + uuid.NewString()[:8],
	}

	if err := ensureInstance(ctx, cfg); err != nil {
		t.Fatalf("creating emulator instance: %v", err)
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		t.Fatalf("creating database admin client: %v", err)
	}
	t.Cleanup(func() { _ = admin.Close() })

	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          fmt.Sprintf("projects/%s/instances/%s", cfg.ProjectID, cfg.InstanceID),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", cfg.DatabaseID),
		ExtraStatements: platformspanner.SchemaStatements(),
	})
	if err != nil {
		t.Fatalf("creating database %s: %v", cfg.DatabaseID, err)
	}
	if _, err := op.Wait(ctx); err != nil {
		t.Fatalf("applying schema to %s: %v", cfg.DatabaseID, err)
	}

	client, err := platformspanner.NewClient(ctx, cfg)
	if err != nil {
		t.Fatalf("connecting to %s: %v", cfg.DatabaseID, err)
	}
	t.Cleanup(func() {
		client.Close()
		_ = admin.DropDatabase(context.Background(), &databasepb.DropDatabaseRequest{Database: cfg.DSN()})
	})

	return client
}

func ensureInstance(ctx context.Context, cfg platformspanner.Config) error {
	admin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return err
	}
	defer admin.Close()

	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + cfg.ProjectID,
		InstanceId: cfg.InstanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", cfg.ProjectID),
			DisplayName: cfg.InstanceID,
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return err
	}
	// Packages run in parallel; another one may win the race.
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
