package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"inventorystore/inventory-service/internal/app/inventory/service"
	"inventorystore/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Clear the storage and insert sample data",
	Long: `Removes all orders, products, suppliers and users, then creates sample
suppliers, products, orders and a user through the regular services.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	repos, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close(context.Background())

	publisher := newPublisher(cfg.Kafka)
	defer publisher.Close()

	svc := newServices(repos, publisher)
	seeder := service.NewSeedService(repos, svc.products, svc.suppliers, svc.orders, svc.users)

	result, err := seeder.Seed(ctx)
	if err != nil {
		return err
	}

	logger.Info().
		Int("suppliers", result.Suppliers).
		Int("products", result.Products).
		Int("orders", result.Orders).
		Int("users", result.Users).
		Msg("Sample data inserted successfully")
	return nil
}
