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

type contactDocument struct {
	Email string `bson:"email"`
	Phone string `bson:"phone,omitempty"`
}

type supplierDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Contact   contactDocument    `bson:"contact"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d supplierDocument) toEntity() entity.Supplier {
	return entity.Supplier{
		ID:   d.ID.Hex(),
		Name: d.Name,
		Contact: entity.Contact{
			Email: d.Contact.Email,
			Phone: d.Contact.Phone,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type supplierRepository struct {
	collection *mongo.Collection
}

// NewSupplierRepository создает репозиторий поставщиков в коллекции suppliers
func NewSupplierRepository(db *mongo.Database) repository.SupplierRepository {
	return &supplierRepository{collection: db.Collection(suppliersCollection)}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	defer startTimer(metrics.DbOpInsert, suppliersCollection).ObserveDuration()

	createdAt := now()
	doc := supplierDocument{
		ID:   primitive.NewObjectID(),
		Name: supplier.Name,
		Contact: contactDocument{
			Email: supplier.Contact.Email,
			Phone: supplier.Contact.Phone,
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return dbError(metrics.DbOpInsert, "create supplier", err)
	}

	*supplier = doc.toEntity()
	return nil
}

func (r *supplierRepository) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	defer startTimer(metrics.DbOpSelect, suppliersCollection).ObserveDuration()

	var doc supplierDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, dbError(metrics.DbOpSelect, "get supplier", err)
	}

	supplier := doc.toEntity()
	return &supplier, nil
}

func (r *supplierRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Supplier, error) {
	oids, err := parseObjectIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(oids) == 0 {
		return []entity.Supplier{}, nil
	}

	defer startTimer(metrics.DbOpSelect, suppliersCollection).ObserveDuration()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, dbError(metrics.DbOpSelect, "find suppliers", err)
	}
	return decodeSuppliers(ctx, cursor)
}

func (r *supplierRepository) List(ctx context.Context, offset, limit int64) ([]entity.Supplier, error) {
	defer startTimer(metrics.DbOpSelect, suppliersCollection).ObserveDuration()

	cursor, err := r.collection.Find(ctx, bson.M{}, pageOptions(offset, limit))
	if err != nil {
		return nil, dbError(metrics.DbOpSelect, "find suppliers", err)
	}
	return decodeSuppliers(ctx, cursor)
}

func (r *supplierRepository) Count(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpCount, suppliersCollection).ObserveDuration()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, dbError(metrics.DbOpCount, "count suppliers", err)
	}
	return total, nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	oid, err := parseObjectID(supplier.ID)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpUpdate, suppliersCollection).ObserveDuration()

	supplier.UpdatedAt = now()
	update := bson.M{
		"$set": bson.M{
			"name":          supplier.Name,
			"contact.email": supplier.Contact.Email,
			"contact.phone": supplier.Contact.Phone,
			"updated_at":    supplier.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return dbError(metrics.DbOpUpdate, "update supplier", err)
	}

	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete удаляет поставщика; заказы со ссылкой на него не затрагиваются
func (r *supplierRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpDelete, suppliersCollection).ObserveDuration()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return dbError(metrics.DbOpDelete, "delete supplier", err)
	}

	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *supplierRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpDelete, suppliersCollection).ObserveDuration()

	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, dbError(metrics.DbOpDelete, "delete suppliers", err)
	}
	return result.DeletedCount, nil
}

func decodeSuppliers(ctx context.Context, cursor *mongo.Cursor) ([]entity.Supplier, error) {
	defer cursor.Close(ctx)

	var docs []supplierDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dbError(metrics.DbOpSelect, "decode suppliers", err)
	}

	suppliers := make([]entity.Supplier, 0, len(docs))
	for _, doc := range docs {
		suppliers = append(suppliers, doc.toEntity())
	}
	return suppliers, nil
}
