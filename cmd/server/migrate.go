package main

import (
	"fmt"
	"strings"

	"github.com/profeai/profeai-api/internal/platform/logger"
	"github.com/profeai/profeai-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func migrationCommandNames() []string {
	names := make([]string, 0, len(postgres.MigrationCommands))
	for _, c := range postgres.MigrationCommands {
		names = append(names, string(c))
	}
	return names
}

// parseMigrationCommand maps a CLI argument to a migration command; no
// argument means up.
func parseMigrationCommand(args []string) (postgres.MigrationCommand, error) {
	if len(args) == 0 {
		return postgres.MigrateUp, nil
	}
	for _, c := range postgres.MigrationCommands {
		if string(c) == args[0] {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown migration command %q (want one of %s)",
		args[0], strings.Join(migrationCommandNames(), ", "))
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [" + strings.Join(migrationCommandNames(), "|") + "]",
		Short:     "Run database migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: migrationCommandNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := parseMigrationCommand(args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log, err := logger.Setup(cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}

			db, err := postgres.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			return postgres.Migrate(cmd.Context(), db, command, log)
		},
	}
}
