package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/logger"
)

const (
	productsCollection  = "products"
	suppliersCollection = "suppliers"
	ordersCollection    = "orders"
	usersCollection     = "users"
)

// Connect подключается к MongoDB и проверяет соединение через ping
// Делает несколько попыток: при запуске в Docker база может быть еще не готова
func Connect(ctx context.Context, uri string, attempts int) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		client, err := connectOnce(ctx, clientOptions)
		if err == nil {
			return client, nil
		}
		lastErr = err

		logger.Warn().
			Int("attempt", i+1).
			Int("max_attempts", attempts).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(3 * time.Second):
			}
		}
	}

	return nil, fmt.Errorf("failed to connect to mongodb after %d attempts: %w", attempts, lastErr)
}

func connectOnce(ctx context.Context, clientOptions *options.ClientOptions) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// NewRepositories создает репозитории поверх базы MongoDB и индексы коллекций
// Уникальный индекс по sku обязателен: без него не работает проверка дубликатов
func NewRepositories(ctx context.Context, client *mongo.Client, database string) (*repository.Repositories, error) {
	db := client.Database(database)

	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return &repository.Repositories{
		Products:  NewProductRepository(db),
		Suppliers: NewSupplierRepository(db),
		Orders:    NewOrderRepository(db),
		Users:     NewUserRepository(db),
		Close:     client.Disconnect,
	}, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	skuIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "sku", Value: 1}},
		Options: options.Index().SetName("sku_unique_idx").SetUnique(true),
	}
	if _, err := db.Collection(productsCollection).Indexes().CreateOne(ctx, skuIndex); err != nil {
		return fmt.Errorf("failed to create unique index on sku: %w", err)
	}

	// Индексы по created_at для сортировки списков, их отсутствие не критично
	for _, name := range []string{productsCollection, suppliersCollection, ordersCollection, usersCollection} {
		createdAtIndex := mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_idx"),
		}
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, createdAtIndex); err != nil {
			logger.Warn().
				Err(err).
				Str("collection", name).
				Msg("Failed to create index on created_at")
		}
	}

	return nil
}
