package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inventorystore/inventory-service/internal/app/inventory/config"
	"inventorystore/pkg/logger"
)

const serviceName = "inventory-service"

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "Inventory Store API: products, suppliers and orders",
	Long: `Inventory Store REST service.

Without a subcommand the HTTP server is started (same as "serve").
Storage backend is selected by STORAGE_DRIVER (mongodb or postgres).`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig читает конфигурацию и настраивает логгер
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(serviceName, cfg.Log.Level)

	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.Log.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	return cfg, nil
}
