package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/metrics"
)

// parseObjectID преобразует hex строку в ObjectID
// Некорректный формат возвращается как repository.ErrInvalidID
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	return oid, nil
}

func parseObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := parseObjectID(id)
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}
	return oids, nil
}

// newestFirst сортировка от новых к старым; _id разрешает равные created_at
func newestFirst() bson.D {
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
}

func pageOptions(offset, limit int64) *options.FindOptions {
	return options.Find().
		SetSort(newestFirst()).
		SetSkip(offset).
		SetLimit(limit)
}

func startTimer(op metrics.DbOperation, collection string) *metrics.DbTimer {
	return metrics.NewDbTimer(repository.MetricsService, op, collection)
}

// dbError учитывает ошибку в метриках и оборачивает ее
func dbError(op metrics.DbOperation, action string, err error) error {
	metrics.RecordDbError(repository.MetricsService, op)
	return fmt.Errorf("failed to %s: %w", action, err)
}

// now текущее время с точностью MongoDB (миллисекунды)
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
