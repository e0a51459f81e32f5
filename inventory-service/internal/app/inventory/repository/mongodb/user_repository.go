package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/metrics"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Age       *int               `bson:"age,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d userDocument) toEntity() entity.User {
	return entity.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Age:       d.Age,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{collection: db.Collection(usersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	defer startTimer(metrics.DbOpInsert, usersCollection).ObserveDuration()

	createdAt := now()
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Name:      user.Name,
		Email:     user.Email,
		Age:       user.Age,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return dbError(metrics.DbOpInsert, "create user", err)
	}

	*user = doc.toEntity()
	return nil
}

// List возвращает всех пользователей от новых к старым
func (r *userRepository) List(ctx context.Context) ([]entity.User, error) {
	defer startTimer(metrics.DbOpSelect, usersCollection).ObserveDuration()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst()))
	if err != nil {
		return nil, dbError(metrics.DbOpSelect, "find users", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dbError(metrics.DbOpSelect, "decode users", err)
	}

	users := make([]entity.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toEntity())
	}
	return users, nil
}

func (r *userRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpDelete, usersCollection).ObserveDuration()

	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, dbError(metrics.DbOpDelete, "delete users", err)
	}
	return result.DeletedCount, nil
}
