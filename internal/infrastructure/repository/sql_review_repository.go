package repository

import (
	"context"
	"errors"
	"fmt"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/infrastructure/repository/entity"
	"merchant-review-shopify-layer/internal/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLReviewRepository implements ReviewRepository over the Review table
type SQLReviewRepository struct {
	db *gorm.DB
}

// NewSQLReviewRepository creates a new SQL review repository
func NewSQLReviewRepository(db *gorm.DB) ports.ReviewRepository {
	return &SQLReviewRepository{db: db}
}

// ListByShop returns every review of the shop
func (r *SQLReviewRepository) ListByShop(ctx context.Context, shop string) ([]*domain.Review, error) {
	if shop == "" {
		return nil, domain.ErrMissingShop
	}

	var rows []entity.SQLReview
	if err := r.db.WithContext(ctx).Where(&entity.SQLReview{Shop: shop}).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]*domain.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, rows[i].ToDomain())
	}
	return reviews, nil
}

// Get retrieves the review of one product
func (r *SQLReviewRepository) Get(ctx context.Context, shop, productID string) (*domain.Review, error) {
	if shop == "" || productID == "" {
		return nil, &domain.ValidationError{Message: "Missing required query parameters: 'shop' and 'productId'"}
	}

	var row entity.SQLReview
	err := r.db.WithContext(ctx).
		Where(&entity.SQLReview{Shop: shop, ProductID: productID}).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return row.ToDomain(), nil
}

// Upsert inserts the review or overwrites its snippet on the (shop, productId) conflict.
// createdAt keeps the value of the first insert.
func (r *SQLReviewRepository) Upsert(ctx context.Context, shop, productID, snippet string) (*domain.Review, error) {
	if err := domain.ValidateReviewInput(shop, productID, snippet); err != nil {
		return nil, err
	}

	row := &entity.SQLReview{Shop: shop, ProductID: productID, Snippet: snippet}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shop"}, {Name: "productId"}},
			DoUpdates: clause.AssignmentColumns([]string{"snippet", "updatedAt"}),
		}).
		Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert review: %w", err)
	}

	stored, err := r.Get(ctx, shop, productID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("failed to upsert review: row missing after write")
	}
	return stored, nil
}

// Delete removes the review of one product
func (r *SQLReviewRepository) Delete(ctx context.Context, shop, productID string) error {
	if shop == "" || productID == "" {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where(&entity.SQLReview{Shop: shop, ProductID: productID}).
		Delete(&entity.SQLReview{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// DeleteByShop removes every review of the shop
func (r *SQLReviewRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	if shop == "" {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where(&entity.SQLReview{Shop: shop}).
		Delete(&entity.SQLReview{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete reviews: %w", result.Error)
	}
	return result.RowsAffected, nil
}
