package main

import (
	"errors"

	"github.com/spf13/cobra"

	pg "pet-marketplace/internal/adapters/storage/postgres"
)

func newMigrateCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea tablas e índices únicos en Postgres (DB_DSN)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}
			if cfg.DatabaseDSN == "" {
				return errors.New("DB_DSN is required")
			}

			sqlDB, err := pg.Open(cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			db, err := pg.NewGorm(sqlDB)
			if err != nil {
				return err
			}
			if err := pg.AutoMigrate(cmd.Context(), db); err != nil {
				return err
			}
			log.Info("migrations applied", map[string]any{"tables": len(pg.Models())})
			return nil
		},
	}
}
