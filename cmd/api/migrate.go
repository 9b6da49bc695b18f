package main

import (
	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}

			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}
			defer dbpkg.Close(db)

			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			log.Info().Str("driver", cfg.DBDriver).Msg("migrations applied")
			return nil
		},
	}
}
