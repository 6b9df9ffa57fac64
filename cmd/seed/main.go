package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"creatitube/pkg/cache"
	"creatitube/pkg/config"
	"creatitube/pkg/kv"
	"creatitube/pkg/logger"
	"creatitube/pkg/seed"

	"github.com/spf13/cobra"
)

var (
	reset   bool
	backend string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalogue into the key-value store",
	Long: `Writes the demo accounts, videos, images, shorts and products.

Records that already exist are left alone unless --reset is given. Existing
user accounts are always kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().BoolVar(&reset, "reset", false, "Overwrite records that already exist")
	rootCmd.Flags().StringVar(&backend, "store", "", "Store backend (redis, postgres, badger); defaults to STORE_BACKEND")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Give up after this long")
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if backend != "" {
		cfg.StoreBackend = backend
	}

	log := logger.New().With("service", "seed")

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		if cfg.StoreBackend == "redis" {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	store, err := kv.Open(cfg, redisClient)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := seed.Apply(ctx, store, seed.Options{Reset: reset})
	if err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}

	if len(result.Written) == 0 {
		log.Info("Store already seeded, nothing written")
		return nil
	}
	log.Info("Seeded %s store: %v", cfg.StoreBackend, result.Written)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
