package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/metrics"
)

// orderItemDocument позиция хранится внутри документа заказа
type orderItemDocument struct {
	ProductID primitive.ObjectID `bson:"product_id"`
	Quantity  int                `bson:"quantity"`
	Price     float64            `bson:"price"`
}

type orderDocument struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Items       []orderItemDocument `bson:"items"`
	SupplierID  primitive.ObjectID  `bson:"supplier_id"`
	Status      string              `bson:"status"`
	TotalAmount float64             `bson:"total_amount"`
	CreatedAt   time.Time           `bson:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}

func (d orderDocument) toEntity() entity.Order {
	items := make([]entity.OrderItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, entity.OrderItem{
			ProductID: item.ProductID.Hex(),
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return entity.Order{
		ID:          d.ID.Hex(),
		Items:       items,
		SupplierID:  d.SupplierID.Hex(),
		Status:      entity.OrderStatus(d.Status),
		TotalAmount: d.TotalAmount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toItemDocuments(items []entity.OrderItem) ([]orderItemDocument, error) {
	docs := make([]orderItemDocument, 0, len(items))
	for _, item := range items {
		productID, err := parseObjectID(item.ProductID)
		if err != nil {
			return nil, err
		}
		docs = append(docs, orderItemDocument{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return docs, nil
}

type orderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository создает репозиторий заказов в коллекции orders
func NewOrderRepository(db *mongo.Database) repository.OrderRepository {
	return &orderRepository{collection: db.Collection(ordersCollection)}
}

// Create сохраняет заказ вместе с позициями одним документом
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	items, err := toItemDocuments(order.Items)
	if err != nil {
		return err
	}
	supplierID, err := parseObjectID(order.SupplierID)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpInsert, ordersCollection).ObserveDuration()

	createdAt := now()
	doc := orderDocument{
		ID:          primitive.NewObjectID(),
		Items:       items,
		SupplierID:  supplierID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return dbError(metrics.DbOpInsert, "create order", err)
	}

	*order = doc.toEntity()
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	defer startTimer(metrics.DbOpSelect, ordersCollection).ObserveDuration()

	var doc orderDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, dbError(metrics.DbOpSelect, "get order", err)
	}

	order := doc.toEntity()
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, offset, limit int64) ([]entity.Order, error) {
	defer startTimer(metrics.DbOpSelect, ordersCollection).ObserveDuration()

	cursor, err := r.collection.Find(ctx, bson.M{}, pageOptions(offset, limit))
	if err != nil {
		return nil, dbError(metrics.DbOpSelect, "find orders", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dbError(metrics.DbOpSelect, "decode orders", err)
	}

	orders := make([]entity.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, doc.toEntity())
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpCount, ordersCollection).ObserveDuration()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, dbError(metrics.DbOpCount, "count orders", err)
	}
	return total, nil
}

// Update перезаписывает статус, позиции и сумму одним $set,
// поэтому позиции и total_amount всегда меняются атомарно
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	oid, err := parseObjectID(order.ID)
	if err != nil {
		return err
	}
	items, err := toItemDocuments(order.Items)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpUpdate, ordersCollection).ObserveDuration()

	order.UpdatedAt = now()
	update := bson.M{
		"$set": bson.M{
			"items":        items,
			"status":       string(order.Status),
			"total_amount": order.TotalAmount,
			"updated_at":   order.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return dbError(metrics.DbOpUpdate, "update order", err)
	}

	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpDelete, ordersCollection).ObserveDuration()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return dbError(metrics.DbOpDelete, "delete order", err)
	}

	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *orderRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpDelete, ordersCollection).ObserveDuration()

	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, dbError(metrics.DbOpDelete, "delete orders", err)
	}
	return result.DeletedCount, nil
}
