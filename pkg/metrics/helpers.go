package metrics

import (
	"time"
)

// KafkaProduceTimer замеряет одну отправку события в Kafka
type KafkaProduceTimer struct {
	service, topic string
	started        time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{service: service, topic: topic, started: time.Now()}
}

func (t *KafkaProduceTimer) Success() {
	EventsPublished.WithLabelValues(t.service, t.topic).Inc()
	EventPublishDuration.WithLabelValues(t.service, t.topic).Observe(time.Since(t.started).Seconds())
}

func (t *KafkaProduceTimer) Error() {
	EventPublishErrors.WithLabelValues(t.service, t.topic).Inc()
}

// DbOperation тип операции с хранилищем для метрик
type DbOperation string

const (
	DbOpSelect DbOperation = "select"
	DbOpInsert DbOperation = "insert"
	DbOpUpdate DbOperation = "update"
	DbOpDelete DbOperation = "delete"
	DbOpCount  DbOperation = "count"
)

// DbTimer замеряет один запрос к коллекции или таблице
type DbTimer struct {
	labels  []string
	started time.Time
}

func NewDbTimer(service string, op DbOperation, table string) *DbTimer {
	return &DbTimer{labels: []string{service, string(op), table}, started: time.Now()}
}

func (t *DbTimer) ObserveDuration() {
	StoreQueryDuration.WithLabelValues(t.labels...).Observe(time.Since(t.started).Seconds())
}

func RecordDbError(service string, op DbOperation) {
	StoreErrors.WithLabelValues(service, string(op)).Inc()
}

// RecordWrite учитывает успешную запись сущности
func RecordWrite(entity, operation string) {
	InventoryWrites.WithLabelValues(entity, operation).Inc()
}

// RecordOrderCreated учитывает новый заказ и его сумму
func RecordOrderCreated(totalAmount float64) {
	OrdersCreated.Inc()
	OrdersTotalAmount.Add(totalAmount)
}

func RecordOrderStatus(status string) {
	OrderStatusChanges.WithLabelValues(status).Inc()
}
