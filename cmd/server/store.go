package main

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/spanner"

	"github.com/edinson0810/pruebaCasa/internal/config"
	platformspanner "github.com/edinson0810/pruebaCasa/internal/platform/spanner"
	"github.com/edinson0810/pruebaCasa/internal/platform/sqldb"
	menudomain "github.com/edinson0810/pruebaCasa/modules/menu/domain"
	menupersistence "github.com/edinson0810/pruebaCasa/modules/menu/infrastructure/persistence"
	"github.com/edinson0810/pruebaCasa/modules/orders/application/queries"
	ordersdomain "github.com/edinson0810/pruebaCasa/modules/orders/domain"
	orderspersistence "github.com/edinson0810/pruebaCasa/modules/orders/infrastructure/persistence"
	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
	"github.com/edinson0810/pruebaCasa/modules/staff"
	staffpersistence "github.com/edinson0810/pruebaCasa/modules/staff/infrastructure/persistence"
)

// store bundles the repositories of one storage backend.
type store struct {
	menu        menudomain.MenuRepository
	staff       staff.Repository
	orders      ordersdomain.OrderRepository
	orderReader queries.OrderReader
	txScope     transaction.Scope

	ping    func(ctx context.Context) error
	version versionFunc
	close   func()
}

func openStore(ctx context.Context, cfg config.Store, logger *slog.Logger) (*store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return openSQLStore(ctx, sqldb.Config{Dialect: sqldb.DialectSQLite, DSN: cfg.SQLite.Path}, logger)
	case config.DriverPostgres:
		return openSQLStore(ctx, sqldb.Config{
			Dialect:        sqldb.DialectPostgres,
			DSN:            cfg.Postgres.DSN(),
			MaxOpenConns:   cfg.Postgres.MaxOpenConns,
			ConnectRetries: cfg.Postgres.ConnectRetries,
			RetryDelay:     cfg.Postgres.RetryDelay,
		}, logger)
	case config.DriverSpanner:
		return openSpannerStore(ctx, cfg.Spanner, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func openSQLStore(ctx context.Context, cfg sqldb.Config, logger *slog.Logger) (*store, error) {
	db, err := sqldb.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := sqldb.ApplyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("connected to database", slog.String("dialect", db.Dialect().String()))

	return &store{
		menu:        menupersistence.NewSQLRepository(db),
		staff:       staffpersistence.NewSQLRepository(db),
		orders:      orderspersistence.NewSQLRepository(db),
		orderReader: orderspersistence.NewSQLReader(db),
		txScope:     sqldb.NewReadWriteScope(db),
		ping:        db.Ping,
		version: func(ctx context.Context) (string, error) {
			v, err := sqldb.CurrentVersion(ctx, db)
			if err != nil || v == nil {
				return "", err
			}
			return v.String(), nil
		},
		close: func() { _ = db.Close() },
	}, nil
}

func openSpannerStore(ctx context.Context, cfg platformspanner.Config, logger *slog.Logger) (*store, error) {
	client, err := platformspanner.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to spanner",
		slog.String("dsn", cfg.DSN()),
		slog.Bool("emulator", platformspanner.UsesEmulator()),
	)

	return &store{
		menu:        menupersistence.NewSpannerRepository(client),
		staff:       staffpersistence.NewSpannerRepository(client),
		orders:      orderspersistence.NewSpannerRepository(client),
		orderReader: orderspersistence.NewSpannerReader(client),
		txScope:     platformspanner.NewReadWriteTransactionScope(client),
		ping: func(ctx context.Context) error {
			iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
			defer iter.Stop()
			_, err := iter.Next()
			return err
		},
		// Spanner schema is managed out of band with DDL.
		version: func(context.Context) (string, error) { return "", nil },
		close:   client.Close,
	}, nil
}
