package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/migrations"
	"github.com/SxxMWolf/ReMadeBE/pkg/database"
	"github.com/SxxMWolf/ReMadeBE/pkg/migration"
	sharedLogger "github.com/SxxMWolf/ReMadeBE/shared/logger"
	"github.com/SxxMWolf/ReMadeBE/shared/utils"
)

// migrationRunner - операции, доступные из командной строки.
type migrationRunner interface {
	Up() error
	Down() error
	ForceVersion(version int) error
	Version() (uint, bool, error)
}

// opener создает мигратор и функцию освобождения ресурсов.
type opener func(ctx context.Context) (migrationRunner, func(), error)

type migrateConfig struct {
	Logger   sharedLogger.Config
	Database database.Config
}

func newRootCommand(open opener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Миграции справочника произведений",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(
		runnerCommand(open, "up", "Применить все миграции", func(r migrationRunner) error { return r.Up() }),
		runnerCommand(open, "down", "Откатить все миграции", func(r migrationRunner) error { return r.Down() }),
		newForceCommand(open),
		newVersionCommand(open),
	)
	return rootCmd
}

func runnerCommand(open opener, use, short string, fn func(migrationRunner) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(cmd.Context(), open, fn)
		},
	}
}

func newForceCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "force VERSION",
		Short: "Выставить версию без выполнения миграций (снимает dirty)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return withRunner(cmd.Context(), open, func(r migrationRunner) error {
				return r.ForceVersion(version)
			})
		},
	}
}

func newVersionCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать текущую версию схемы",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(cmd.Context(), open, func(r migrationRunner) error {
				version, dirty, err := r.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
				return nil
			})
		},
	}
}

func withRunner(ctx context.Context, open opener, fn func(migrationRunner) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runner, closeFn, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(runner)
}

// openMigrator подключается к базе по переменным окружения.
func openMigrator(ctx context.Context) (migrationRunner, func(), error) {
	_ = godotenv.Load()

	var cfg migrateConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	cfg.Database.Password = utils.SecretOrDefault("db_password", cfg.Database.Password)

	logger, err := sharedLogger.New(cfg.Logger)
	if err != nil {
		return nil, nil, err
	}

	pool, err := database.Connect(ctx, cfg.Database, logger, 5, 2*time.Second)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	logger.Info("Running migrations", zap.String("db", cfg.Database.MaskedDSN()))

	m := migration.NewMigrator(migration.Config{MigrationsFS: migrations.FS}, pool, logger)
	return m, func() {
		pool.Close()
		_ = logger.Sync()
	}, nil
}
