package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"merchant-review-shopify-layer/internal/application"
	"merchant-review-shopify-layer/internal/domain"

	"github.com/rs/zerolog"
)

// AppUninstalledHandler handles app uninstalled webhook events
type AppUninstalledHandler struct {
	logger         zerolog.Logger
	shopifyService *application.ShopifyService
}

// NewAppUninstalledHandler creates a new app uninstalled webhook handler
func NewAppUninstalledHandler(logger zerolog.Logger, shopifyService *application.ShopifyService) *AppUninstalledHandler {
	return &AppUninstalledHandler{
		logger:         logger,
		shopifyService: shopifyService,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *AppUninstalledHandler) CanHandle(topic string) bool {
	return topic == domain.TopicAppUninstalled
}

// Handle removes the shop's sessions. Reviews stay until the shop/redact request.
func (h *AppUninstalledHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	shopDomain := event.Shop
	if shopDomain == "" {
		var shopData struct {
			Domain          string `json:"domain"`
			MyshopifyDomain string `json:"myshopify_domain"`
		}
		if err := json.Unmarshal(event.Payload, &shopData); err != nil {
			return fmt.Errorf("failed to parse app uninstalled webhook payload: %w", err)
		}
		shopDomain = shopData.MyshopifyDomain
		if shopDomain == "" {
			shopDomain = shopData.Domain
		}
	}
	if shopDomain == "" {
		return fmt.Errorf("app uninstalled webhook without shop domain")
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", shopDomain).
		Msg("Processing app uninstalled webhook event")

	if _, err := h.shopifyService.Uninstall(ctx, shopDomain); err != nil {
		return err
	}
	return nil
}
