package cmd

import (
	"context"
	"fmt"
	"os"

	internalApp "github.com/haierkeys/fast-note-history-service/internal/app"
	"github.com/haierkeys/fast-note-history-service/internal/dao"
	"github.com/haierkeys/fast-note-history-service/internal/upgrade"
	"github.com/haierkeys/fast-note-history-service/pkg/logger"

	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Apply pending data migrations (legacy history ids) and exit",
	Long: `Apply pending data migrations and exit.

Migrations are recorded in the schema_version table; running this command
again skips everything already applied. "run" applies the same migrations on start.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if len(configPath) <= 0 {
			configPath = "config/config.yaml"
		}

		appConfig, configRealpath, err := internalApp.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Loading config from: %s\n", configRealpath)

		lg, err := logger.NewLogger(appConfig.GetLoggerConfig())
		if err != nil {
			fmt.Printf("Failed to init logger: %v\n", err)
			os.Exit(1)
		}
		defer lg.Sync()

		db, err := dao.NewDBEngineWithConfig(appConfig.GetDatabaseConfig(), lg)
		if err != nil {
			fmt.Printf("Failed to init database: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Starting database upgrade...")

		if err := upgrade.NewMigrationManager(db, lg).Run(context.Background()); err != nil {
			fmt.Printf("Upgrade failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Database upgrade completed successfully!")
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
	upgradeCmd.Flags().StringP("config", "c", "", "config file path")
}
