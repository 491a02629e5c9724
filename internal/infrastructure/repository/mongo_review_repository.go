package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/infrastructure/repository/entity"
	"merchant-review-shopify-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewRepository implements ReviewRepository using MongoDB
type MongoReviewRepository struct {
	collection *mongo.Collection
}

// NewMongoReviewRepository creates a new MongoDB review repository.
// EnsureMongoIndexes must have run for upserts to be unique per product.
func NewMongoReviewRepository(db *mongo.Database) ports.ReviewRepository {
	return &MongoReviewRepository{
		collection: db.Collection(reviewsCollection),
	}
}

// ListByShop retrieves all reviews of a shop
func (r *MongoReviewRepository) ListByShop(ctx context.Context, shop string) ([]*domain.Review, error) {
	if shop == "" {
		return nil, domain.ErrMissingShop
	}

	cursor, err := r.collection.Find(ctx, bson.M{"shop": shop})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]*domain.Review, 0)
	for cursor.Next(ctx) {
		var doc entity.MongoReviewDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return reviews, nil
}

// Get retrieves the review of one product
func (r *MongoReviewRepository) Get(ctx context.Context, shop, productID string) (*domain.Review, error) {
	if shop == "" || productID == "" {
		return nil, &domain.ValidationError{Message: "Missing required query parameters: 'shop' and 'productId'"}
	}

	var doc entity.MongoReviewDoc
	err := r.collection.FindOne(ctx, bson.M{"shop": shop, "productId": productID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return doc.ToDomain(), nil
}

// Upsert creates the review or overwrites its snippet. createdAt is only set on insert.
func (r *MongoReviewRepository) Upsert(ctx context.Context, shop, productID, snippet string) (*domain.Review, error) {
	if err := domain.ValidateReviewInput(shop, productID, snippet); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	filter := bson.M{"shop": shop, "productId": productID}
	update := bson.M{
		"$set":         bson.M{"snippet": snippet, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc entity.MongoReviewDoc
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// two concurrent first writes; the loser updates the row the winner inserted
		err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert review: %w", err)
	}

	return doc.ToDomain(), nil
}

// Delete removes the review of one product
func (r *MongoReviewRepository) Delete(ctx context.Context, shop, productID string) error {
	if shop == "" || productID == "" {
		return nil
	}
	if _, err := r.collection.DeleteOne(ctx, bson.M{"shop": shop, "productId": productID}); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// DeleteByShop removes every review of the shop
func (r *MongoReviewRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	if shop == "" {
		return 0, nil
	}
	result, err := r.collection.DeleteMany(ctx, bson.M{"shop": shop})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reviews: %w", err)
	}
	return result.DeletedCount, nil
}
