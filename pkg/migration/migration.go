package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// Config - источник миграций.
type Config struct {
	// MigrationsPath - каталог внутри MigrationsFS, "." для корня.
	MigrationsPath string
	MigrationsFS   fs.FS
	LockTimeout    time.Duration
}

// Migrator применяет миграции справочника.
type Migrator struct {
	config Config
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewMigrator(config Config, pool *pgxpool.Pool, logger *zap.Logger) *Migrator {
	if config.MigrationsPath == "" {
		config.MigrationsPath = "."
	}
	if config.LockTimeout <= 0 {
		config.LockTimeout = 30 * time.Second
	}
	return &Migrator{config: config, pool: pool, logger: logger.Named("Migrator")}
}

// Up применяет все доступные миграции.
func (m *Migrator) Up() error {
	return m.run("up", func(mg *migrate.Migrate) error { return mg.Up() })
}

// Down откатывает все миграции.
func (m *Migrator) Down() error {
	return m.run("down", func(mg *migrate.Migrate) error { return mg.Down() })
}

// ForceVersion выставляет версию без выполнения миграций (снимает dirty).
func (m *Migrator) ForceVersion(version int) error {
	return m.run("force", func(mg *migrate.Migrate) error { return mg.Force(version) })
}

// Version возвращает текущую версию. Для пустой базы - 0, false, nil.
func (m *Migrator) Version() (uint, bool, error) {
	mg, err := m.createMigrator()
	if err != nil {
		return 0, false, err
	}
	defer m.close(mg)

	version, dirty, err := mg.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

func (m *Migrator) run(op string, fn func(*migrate.Migrate) error) error {
	mg, err := m.createMigrator()
	if err != nil {
		return err
	}
	defer m.close(mg)

	if err := fn(mg); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("No migration changes", zap.String("op", op))
			return nil
		}
		return fmt.Errorf("migration %s failed: %w", op, err)
	}
	m.logger.Info("Migrations applied", zap.String("op", op))
	return nil
}

func (m *Migrator) createMigrator() (*migrate.Migrate, error) {
	if m.config.MigrationsFS == nil {
		return nil, errors.New("migrations FS is not set")
	}

	db := stdlib.OpenDBFromPool(m.pool)
	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable:       "schema_migrations",
		MigrationsTableQuoted: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	source, err := iofs.New(m.config.MigrationsFS, m.config.MigrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	mg, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	mg.LockTimeout = m.config.LockTimeout
	return mg, nil
}

func (m *Migrator) close(mg *migrate.Migrate) {
	srcErr, dbErr := mg.Close()
	if srcErr != nil || dbErr != nil {
		m.logger.Warn("Failed to close migrator", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
	}
}
