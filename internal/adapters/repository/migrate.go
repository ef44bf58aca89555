package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-habits/migrations"
)

// OpenPostgres connects through the pgx stdlib driver and applies the pool
// limits used by the API server.
func OpenPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// Migrator applies the schema migrations. An empty path selects the
// migrations embedded in the binary; otherwise path is a directory on disk.
type Migrator struct {
	m   *migrate.Migrate
	log *logrus.Logger
}

func NewMigrator(db *sqlx.DB, path string, log *logrus.Logger) (*Migrator, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	var m *migrate.Migrate
	if path == "" {
		var src source.Driver
		src, err = iofs.New(migrations.FS, ".")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "postgres", driver)
	} else {
		m, err = migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return &Migrator{m: m, log: log}, nil
}

func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	mg.logVersion("database migrations applied")
	return nil
}

func (mg *Migrator) Down() error {
	if err := mg.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	mg.log.Info("database migrations rolled back")
	return nil
}

// Version reports the applied schema version; zero means no migration ran.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (mg *Migrator) logVersion(msg string) {
	v, dirty, err := mg.Version()
	if err != nil {
		mg.log.WithError(err).Warn("could not read schema version")
		return
	}
	mg.log.WithFields(logrus.Fields{"version": v, "dirty": dirty}).Info(msg)
}
