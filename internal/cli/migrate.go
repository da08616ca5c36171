package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SIH-2025/edusafe-service/internal/config"
	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/pkg"
)

// NewMigrateCmd applies the database schema.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			db, err := pkg.InitDatabase(cfg)
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			if err := db.AutoMigrate(
				&models.User{},
				&models.Module{},
				&models.Quiz{},
				&models.Report{},
				&models.Story{},
			); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			slog.Info("Migrations applied")
			return nil
		},
	}
}
