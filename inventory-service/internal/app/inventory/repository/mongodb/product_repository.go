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

type productDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SKU       string             `bson:"sku"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Stock     int                `bson:"stock"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d productDocument) toEntity() entity.Product {
	return entity.Product{
		ID:        d.ID.Hex(),
		SKU:       d.SKU,
		Name:      d.Name,
		Price:     d.Price,
		Stock:     d.Stock,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository создает репозиторий товаров в коллекции products
func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepository{collection: db.Collection(productsCollection)}
}

// Create сохраняет товар; дубликат sku возвращается как repository.ErrDuplicateKey
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	defer startTimer(metrics.DbOpInsert, productsCollection).ObserveDuration()

	createdAt := now()
	doc := productDocument{
		ID:        primitive.NewObjectID(),
		SKU:       product.SKU,
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateKey
		}
		return dbError(metrics.DbOpInsert, "create product", err)
	}

	*product = doc.toEntity()
	return nil
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	defer startTimer(metrics.DbOpSelect, productsCollection).ObserveDuration()

	var doc productDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, dbError(metrics.DbOpSelect, "get product", err)
	}

	product := doc.toEntity()
	return &product, nil
}

// GetByIDs получает товары по списку ID одним запросом
// Отсутствующие товары просто не попадают в результат
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	oids, err := parseObjectIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(oids) == 0 {
		return []entity.Product{}, nil
	}

	defer startTimer(metrics.DbOpSelect, productsCollection).ObserveDuration()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, dbError(metrics.DbOpSelect, "find products", err)
	}
	return decodeProducts(ctx, cursor)
}

// List получает страницу товаров от новых к старым
func (r *productRepository) List(ctx context.Context, offset, limit int64) ([]entity.Product, error) {
	defer startTimer(metrics.DbOpSelect, productsCollection).ObserveDuration()

	cursor, err := r.collection.Find(ctx, bson.M{}, pageOptions(offset, limit))
	if err != nil {
		return nil, dbError(metrics.DbOpSelect, "find products", err)
	}
	return decodeProducts(ctx, cursor)
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpCount, productsCollection).ObserveDuration()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, dbError(metrics.DbOpCount, "count products", err)
	}
	return total, nil
}

// Update сохраняет все изменяемые поля товара и обновляет updated_at
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	oid, err := parseObjectID(product.ID)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpUpdate, productsCollection).ObserveDuration()

	product.UpdatedAt = now()
	update := bson.M{
		"$set": bson.M{
			"sku":        product.SKU,
			"name":       product.Name,
			"price":      product.Price,
			"stock":      product.Stock,
			"updated_at": product.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateKey
		}
		return dbError(metrics.DbOpUpdate, "update product", err)
	}

	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete удаляет товар; заказы со ссылкой на него не затрагиваются
func (r *productRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpDelete, productsCollection).ObserveDuration()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return dbError(metrics.DbOpDelete, "delete product", err)
	}

	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *productRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpDelete, productsCollection).ObserveDuration()

	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, dbError(metrics.DbOpDelete, "delete products", err)
	}
	return result.DeletedCount, nil
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]entity.Product, error) {
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dbError(metrics.DbOpSelect, "decode products", err)
	}

	products := make([]entity.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.toEntity())
	}
	return products, nil
}
