package commands

import (
	"storefront/configs"

	"github.com/spf13/cobra"
)

var staffMobile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample catalog and optionally a staff user",
	Long: `Seed migrates the schema, inserts the sample catalog when the products
table is empty and, with --staff, marks the given mobile as a staff user.

Examples:
  storefront seed
  storefront seed --staff +66812345678`,
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

		ctx := cmd.Context()
		if _, err := configs.SeedProducts(ctx, db); err != nil {
			return err
		}
		if staffMobile != "" {
			if _, err := configs.SeedStaff(ctx, db, staffMobile); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&staffMobile, "staff", "", "Mobile number to grant staff rights")
}
