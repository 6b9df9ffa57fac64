package main

import (
	"fmt"
	"os"

	"creatitube/pkg/config"
	"creatitube/pkg/kv"
	"creatitube/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the PostgreSQL schema of the key-value store",
	Long: `The postgres store backend keeps every record in the kv_records table.

Subcommands:
  up      - Create or update kv_records
  status  - Show whether kv_records exists and how many records it holds`,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update kv_records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB, log *logger.Logger) error {
			if err := kv.NewGormStore(db).Migrate(); err != nil {
				return fmt.Errorf("failed to migrate kv_records: %w", err)
			}
			log.Info("kv_records is up to date")
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show kv_records status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB, log *logger.Logger) error {
			if !db.Migrator().HasTable(&kv.Record{}) {
				log.Warn("kv_records does not exist, run 'migrate up'")
				return nil
			}
			var count int64
			if err := db.Model(&kv.Record{}).Count(&count).Error; err != nil {
				return err
			}
			log.Info("kv_records holds %d records", count)
			return nil
		})
	},
}

func withDB(fn func(db *gorm.DB, log *logger.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New().With("service", "migrate")

	db, err := kv.OpenPostgres(cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return fn(db, log)
}

func init() {
	rootCmd.AddCommand(upCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
