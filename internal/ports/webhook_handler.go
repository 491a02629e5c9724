package ports

import (
	"context"

	"merchant-review-shopify-layer/internal/domain"
)

// WebhookHandler processes verified webhook events of the topics it accepts
type WebhookHandler interface {
	CanHandle(topic string) bool
	Handle(ctx context.Context, event *domain.WebhookEvent) error
}
