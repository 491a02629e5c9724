package application

import (
	"context"
	"fmt"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// WebhookDispatcher routes webhook events to the registered handlers
type WebhookDispatcher struct {
	handlers []ports.WebhookHandler
	logger   zerolog.Logger
}

// NewWebhookDispatcher creates an empty dispatcher
func NewWebhookDispatcher(logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{logger: logger}
}

// RegisterHandler adds a handler. Registration happens at start-up, before serving.
func (d *WebhookDispatcher) RegisterHandler(h ports.WebhookHandler) {
	d.handlers = append(d.handlers, h)
}

// Dispatch runs every handler accepting the event topic and returns the first failure.
// Topics nobody handles are acknowledged.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event *domain.WebhookEvent) error {
	handled := false
	for _, h := range d.handlers {
		if !h.CanHandle(event.Topic) {
			continue
		}
		handled = true
		if err := h.Handle(ctx, event); err != nil {
			return fmt.Errorf("failed to handle %s webhook: %w", event.Topic, err)
		}
	}

	if !handled {
		d.logger.Debug().Str("topic", event.Topic).Str("shop", event.Shop).Msg("No handler for webhook topic")
	}
	return nil
}
