package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"inventorystore/inventory-service/internal/app/inventory/handler"
	"inventorystore/inventory-service/internal/app/inventory/infrastructure"
	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/inventory-service/internal/app/inventory/service"
	"inventorystore/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

type services struct {
	products  *service.ProductService
	suppliers *service.SupplierService
	orders    *service.OrderService
	users     *service.UserService
}

func newServices(repos *repository.Repositories, publisher infrastructure.MessagePublisher) *services {
	productService := service.NewProductService(repos.Products, publisher)
	supplierService := service.NewSupplierService(repos.Suppliers, publisher)

	return &services{
		products:  productService,
		suppliers: supplierService,
		orders:    service.NewOrderService(repos.Orders, productService, supplierService, publisher),
		users:     service.NewUserService(repos.Users),
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repos, err := openStore(cmd.Context(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to connect to storage")
	}
	defer func() {
		if err := repos.Close(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to close storage")
		}
	}()

	publisher := newPublisher(cfg.Kafka)
	defer publisher.Close()

	svc := newServices(repos, publisher)

	router := handler.SetupRoutes(handler.Handlers{
		Products:  handler.NewProductHandler(svc.products),
		Suppliers: handler.NewSupplierHandler(svc.suppliers),
		Orders:    handler.NewOrderHandler(svc.orders),
		Users:     handler.NewUserHandler(svc.users),
	}, cfg.Server.AllowOrigins)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("storage", cfg.Storage.Driver).
			Msg("Starting Inventory Service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Inventory Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	logger.Info().Msg("Inventory Service stopped gracefully")
	return nil
}
