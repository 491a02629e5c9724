package application

import (
	"context"
	"fmt"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// ReviewService serves single review lookups for the admin UI and the storefront widget
type ReviewService struct {
	reviews ports.ReviewRepository
	logger  zerolog.Logger
}

// NewReviewService creates a new review service
func NewReviewService(reviews ports.ReviewRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		logger:  logger,
	}
}

// Get returns the public view of a product's review, or nil when the product has none
func (s *ReviewService) Get(ctx context.Context, shop, productID string) (*domain.ReviewSummary, error) {
	if shop == "" || productID == "" {
		return nil, &domain.ValidationError{Message: "Missing required query parameters: 'shop' and 'productId'"}
	}

	review, err := s.reviews.Get(ctx, shop, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	s.logger.Debug().
		Str("shop", shop).
		Str("productId", productID).
		Bool("found", review != nil).
		Msg("Review lookup")

	return review.Summary(), nil
}
