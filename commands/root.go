// Package commands holds the ebook-store command line.
package commands

import (
	"github.com/Govind-619/ebook-store/config"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command. Running it without a subcommand serves the API.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           utils.AppName,
		Short:         "E-book store backend",
		Long:          "E-book store backend: catalog, orders, uploads and account management over a JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newCreateAdminCmd())
	root.AddCommand(newAnalyzeLogsCmd())
	return root
}

// loadConfig reads configuration and installs the process logger
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := utils.InitLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}
