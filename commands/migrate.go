package commands

import (
	"storefront/configs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := configs.ConnectionDB(cfg)
		if err != nil {
			return err
		}
		if err := configs.SetupDatabase(db); err != nil {
			return err
		}
		log.Info().Str("driver", cfg.DBDriver).Msg("schema migrated")
		return nil
	},
}
