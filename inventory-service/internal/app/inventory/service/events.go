package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/infrastructure"
	"inventorystore/pkg/logger"
	"inventorystore/pkg/metrics"
)

const (
	entityProduct  = "product"
	entitySupplier = "supplier"
	entityOrder    = "order"
	entityUser     = "user"

	opCreated = "created"
	opUpdated = "updated"
	opDeleted = "deleted"
)

// eventEmitter учитывает успешные записи и отправляет события в Kafka
// Ошибки отправки только логируются: запись в хранилище уже выполнена
type eventEmitter struct {
	publisher infrastructure.MessagePublisher
}

func newEventEmitter(publisher infrastructure.MessagePublisher) eventEmitter {
	return eventEmitter{publisher: publisher}
}

func (e eventEmitter) emit(ctx context.Context, entityName, operation, entityID string, payload interface{}) {
	metrics.RecordWrite(entityName, operation)

	if e.publisher == nil {
		return
	}

	event := entity.InventoryEvent{
		EventType: strings.ToUpper(entityName + "_" + operation),
		Entity:    entityName,
		EntityID:  entityID,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("Failed to marshal inventory event")
		return
	}

	if err := e.publisher.PublishMessage(ctx, entityID, data); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", event.EventType).
			Str("entity_id", entityID).
			Msg("Failed to publish inventory event")
	}
}
