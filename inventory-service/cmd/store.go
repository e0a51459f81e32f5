package main

import (
	"context"
	"fmt"

	"inventorystore/inventory-service/internal/app/inventory/config"
	"inventorystore/inventory-service/internal/app/inventory/infrastructure"
	"inventorystore/inventory-service/internal/app/inventory/infrastructure/messaging"
	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/inventory-service/internal/app/inventory/repository/mongodb"
	"inventorystore/inventory-service/internal/app/inventory/repository/postgres"
	"inventorystore/pkg/logger"
)

const connectAttempts = 10

// openStore подключается к выбранному хранилищу и создает репозитории
func openStore(ctx context.Context, cfg *config.Config) (*repository.Repositories, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := postgres.Open(ctx, cfg.Postgres.DSN, connectAttempts)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, err
		}
		logger.Info().Msg("Connected to PostgreSQL")
		return postgres.NewRepositories(db), nil

	case config.StorageMongoDB:
		client, err := mongodb.Connect(ctx, cfg.MongoDB.URI, connectAttempts)
		if err != nil {
			return nil, err
		}
		repos, err := mongodb.NewRepositories(ctx, client, cfg.MongoDB.Database)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		logger.Info().
			Str("database", cfg.MongoDB.Database).
			Msg("Connected to MongoDB")
		return repos, nil
	}

	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

// newPublisher создает Kafka producer или пустой publisher, если события выключены
func newPublisher(cfg config.KafkaConfig) infrastructure.MessagePublisher {
	if !cfg.Enabled {
		logger.Info().Msg("Kafka events disabled")
		return messaging.NewNoopPublisher()
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Msg("Initialized Kafka producer")
	return messaging.NewKafkaProducer(cfg.Brokers, cfg.Topic)
}
