package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// ComplianceHandler answers the mandatory privacy webhooks.
// No customer data is stored, so only shop/redact has anything to erase.
type ComplianceHandler struct {
	logger  zerolog.Logger
	reviews ports.ReviewRepository
}

// NewComplianceHandler creates a new privacy compliance webhook handler
func NewComplianceHandler(logger zerolog.Logger, reviews ports.ReviewRepository) *ComplianceHandler {
	return &ComplianceHandler{
		logger:  logger,
		reviews: reviews,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *ComplianceHandler) CanHandle(topic string) bool {
	return topic == domain.TopicCustomersDataRequest ||
		topic == domain.TopicCustomersRedact ||
		topic == domain.TopicShopRedact
}

// Handle processes a compliance webhook event
func (h *ComplianceHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var payload struct {
		ShopDomain string `json:"shop_domain"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse compliance webhook payload: %w", err)
	}
	shop := event.Shop
	if shop == "" {
		shop = payload.ShopDomain
	}

	switch event.Topic {
	case domain.TopicShopRedact:
		removed, err := h.reviews.DeleteByShop(ctx, shop)
		if err != nil {
			return err
		}
		h.logger.Info().Str("shop", shop).Int64("reviews", removed).Msg("Shop redacted - reviews removed")
	default:
		h.logger.Info().Str("topic", event.Topic).Str("shop", shop).Msg("Customer privacy request acknowledged, no customer data stored")
	}

	return nil
}
