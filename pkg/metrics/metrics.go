package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	storeBuckets   = []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
)

// HTTP
var (
	// HTTPRequestsTotal labels: service, method, route, status
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"service", "method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: latencyBuckets,
	}, []string{"service", "method", "route"})

	HTTPRequestsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	}, []string{"service"})
)

// Хранилище: MongoDB или PostgreSQL, table - коллекция или таблица
var (
	StoreQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_query_duration_seconds",
		Help:    "Duration of storage queries in seconds",
		Buckets: storeBuckets,
	}, []string{"service", "operation", "table"})

	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_errors_total",
		Help: "Total number of storage errors",
	}, []string{"service", "operation"})
)

// События склада в Kafka
var (
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_events_published_total",
		Help: "Total number of inventory events written to Kafka",
	}, []string{"service", "topic"})

	EventPublishDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_event_publish_duration_seconds",
		Help:    "Duration of Kafka writes for inventory events",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"service", "topic"})

	EventPublishErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_event_publish_errors_total",
		Help: "Total number of failed Kafka writes",
	}, []string{"service", "topic"})
)

// Бизнес-метрики
var (
	// InventoryWrites entity: product, supplier, order, user
	InventoryWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_writes_total",
		Help: "Total number of successful inventory writes",
	}, []string{"entity", "operation"})

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersTotalAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_orders_amount_total",
		Help: "Sum of totalAmount over created orders",
	})

	OrderStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_order_status_changes_total",
		Help: "Total number of order status changes",
	}, []string{"status"})
)
