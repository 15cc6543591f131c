package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"task-manager/backend/models"
)

// MongoStore is the production Store implementation: one collection per
// resource kind, every operation routed through a circuit breaker. An open
// breaker or a driver failure surfaces as models.ErrStorageUnavailable.
type MongoStore[T any] struct {
	collection *mongo.Collection
	sort       bson.D
	breaker    *gobreaker.CircuitBreaker
}

func NewMongoStore[T any](collection *mongo.Collection, sort bson.D, breaker *gobreaker.CircuitBreaker) *MongoStore[T] {
	return &MongoStore[T]{collection: collection, sort: sort, breaker: breaker}
}

// execute runs fn through the breaker and classifies failures. fn must not
// return mongo.ErrNoDocuments; a miss is not a storage fault and must not
// trip the breaker.
func (s *MongoStore[T]) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := s.breaker.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit breaker open for %s", models.ErrStorageUnavailable, s.collection.Name())
		}
		return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	return result, nil
}

func (s *MongoStore[T]) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*T, error) {
	result, err := s.execute(func() (interface{}, error) {
		cursor, err := s.collection.Find(ctx, bson.M{"user": owner}, options.Find().SetSort(s.sort))
		if err != nil {
			return nil, err
		}
		var docs []*T
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*T), nil
}

func (s *MongoStore[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	result, err := s.execute(func() (interface{}, error) {
		doc := new(T)
		err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return (*T)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	doc := result.(*T)
	if doc == nil {
		return nil, models.ErrNotFound
	}
	return doc, nil
}

func (s *MongoStore[T]) Insert(ctx context.Context, doc *T) error {
	_, err := s.execute(func() (interface{}, error) {
		return s.collection.InsertOne(ctx, doc)
	})
	return err
}

func (s *MongoStore[T]) Replace(ctx context.Context, id, owner primitive.ObjectID, doc *T) error {
	result, err := s.execute(func() (interface{}, error) {
		return s.collection.ReplaceOne(ctx, bson.M{"_id": id, "user": owner}, doc)
	})
	if err != nil {
		return err
	}
	if result.(*mongo.UpdateResult).MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *MongoStore[T]) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	result, err := s.execute(func() (interface{}, error) {
		return s.collection.DeleteOne(ctx, bson.M{"_id": id, "user": owner})
	})
	if err != nil {
		return err
	}
	if result.(*mongo.DeleteResult).DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MongoUserStore persists users with a unique email index.
type MongoUserStore struct {
	collection *mongo.Collection
	breaker    *gobreaker.CircuitBreaker
}

func NewMongoUserStore(collection *mongo.Collection, breaker *gobreaker.CircuitBreaker) *MongoUserStore {
	return &MongoUserStore{collection: collection, breaker: breaker}
}

// EnsureIndexes creates the unique email index. Called once at boot.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoUserStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := s.breaker.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit breaker open for users", models.ErrStorageUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	return result, nil
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	result, err := s.execute(func() (interface{}, error) {
		var user models.User
		err := s.collection.FindOne(ctx, filter).Decode(&user)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return (*models.User)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		return &user, nil
	})
	if err != nil {
		return nil, err
	}
	user := result.(*models.User)
	if user == nil {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.execute(func() (interface{}, error) {
		return s.collection.InsertOne(ctx, user)
	})
	return err
}
