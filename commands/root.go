package commands

import (
	"fmt"
	"os"

	"storefront/configs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootCmd runs the API server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront API - catalog, cart and checkout backend",
	Long: `Storefront serves the shop's HTTP API: mobile/OTP login, the product
catalog, per-user carts and order checkout.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// loadConfig is shared by every subcommand.
func loadConfig() (*configs.Config, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	configs.SetupLogger(cfg)
	log.Debug().Str("driver", cfg.DBDriver).Msg("config loaded")
	return cfg, nil
}
