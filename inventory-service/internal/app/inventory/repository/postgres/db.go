package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/logger"
	"inventorystore/pkg/metrics"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const uniqueViolation = "23505"

// newGormConfig общая конфигурация GORM
// Транзакции открываются явно только там, где пишется больше одной таблицы
func newGormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Warn),
		SkipDefaultTransaction: true,
	}
}

// Open подключается к PostgreSQL с повторными попытками
// При запуске в Docker база может быть еще не готова
func Open(ctx context.Context, dsn string, attempts int) (*gorm.DB, error) {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		var db *gorm.DB
		db, err = gorm.Open(postgres.Open(dsn), newGormConfig())
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if err = sqlDB.PingContext(ctx); err == nil {
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
			} else {
				_ = sqlDB.Close()
			}
		}

		logger.Warn().
			Int("attempt", i+1).
			Int("max_attempts", attempts).
			Err(err).
			Msg("Failed to connect to PostgreSQL, retrying...")

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(3 * time.Second):
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, err)
}

// Migrate создает или обновляет таблицы хранилища
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&productModel{},
		&supplierModel{},
		&orderModel{},
		&orderItemModel{},
		&userModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// NewRepositories создает репозитории поверх соединения GORM
func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Products:  NewProductRepository(db),
		Suppliers: NewSupplierRepository(db),
		Orders:    NewOrderRepository(db),
		Users:     NewUserRepository(db),
		Close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// parseID преобразует строковый идентификатор в UUID
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	return parsed, nil
}

func parseIDs(ids []string) ([]uuid.UUID, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		u, err := parseID(id)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, u)
	}
	return parsed, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func startTimer(op metrics.DbOperation, table string) *metrics.DbTimer {
	return metrics.NewDbTimer(repository.MetricsService, op, table)
}

// dbError учитывает ошибку в метриках и оборачивает ее
func dbError(op metrics.DbOperation, action string, err error) error {
	metrics.RecordDbError(repository.MetricsService, op)
	return fmt.Errorf("failed to %s: %w", action, err)
}

// now текущее время с точностью PostgreSQL timestamptz (микросекунды)
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
