package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// ProductHandler drops the review of a product deleted from the shop
type ProductHandler struct {
	logger  zerolog.Logger
	reviews ports.ReviewRepository
}

// NewProductHandler creates a new product webhook handler
func NewProductHandler(logger zerolog.Logger, reviews ports.ReviewRepository) *ProductHandler {
	return &ProductHandler{
		logger:  logger,
		reviews: reviews,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *ProductHandler) CanHandle(topic string) bool {
	return topic == domain.TopicProductsDelete
}

// Handle processes a products/delete event. The payload carries the numeric REST id.
func (h *ProductHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var productData struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(event.Payload, &productData); err != nil {
		return fmt.Errorf("failed to parse product webhook payload: %w", err)
	}
	if productData.ID == 0 || event.Shop == "" {
		h.logger.Warn().Str("shop", event.Shop).Msg("Product delete webhook without product id or shop")
		return nil
	}

	productID := domain.ProductGIDFromNumber(productData.ID)
	if err := h.reviews.Delete(ctx, event.Shop, productID); err != nil {
		return err
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Str("productId", productID).
		Msg("Product deleted - review removed")

	return nil
}
