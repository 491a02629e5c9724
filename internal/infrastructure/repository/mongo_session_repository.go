package repository

import (
	"context"
	"errors"
	"fmt"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/infrastructure/repository/entity"
	"merchant-review-shopify-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepository implements SessionRepository using MongoDB
type MongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new MongoDB session repository
func NewMongoSessionRepository(db *mongo.Database) ports.SessionRepository {
	return &MongoSessionRepository{
		collection: db.Collection(sessionsCollection),
	}
}

// FindByShop returns a session with a token for the shop, offline sessions first
func (r *MongoSessionRepository) FindByShop(ctx context.Context, shop string) (*domain.Session, error) {
	if shop == "" {
		return nil, nil
	}

	var doc entity.MongoSessionDoc
	filter := bson.M{
		"shop":        shop,
		"accessToken": bson.M{"$nin": bson.A{"", nil}},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "isOnline", Value: 1}})

	err := r.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return doc.ToDomain(), nil
}

// Save creates or replaces a session by id
func (r *MongoSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	doc := entity.MongoSessionDocFromDomain(session)

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// DeleteByShop removes every session of the shop
func (r *MongoSessionRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	if shop == "" {
		return 0, nil
	}
	result, err := r.collection.DeleteMany(ctx, bson.M{"shop": shop})
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}
	return result.DeletedCount, nil
}
