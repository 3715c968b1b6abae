package commands

import (
	"github.com/Govind-619/ebook-store/config"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := config.OpenDB(cfg)
			if err != nil {
				return err
			}
			defer config.CloseDB(db)

			if err := config.Migrate(db); err != nil {
				return err
			}
			utils.LogInfo("Database migrated")
			return nil
		},
	}
}
