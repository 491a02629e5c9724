package api

import (
	"encoding/json"
	"io"
	"net/http"

	"merchant-review-shopify-layer/internal/application"
	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// webhookHandler verifies and dispatches Shopify webhook requests
func webhookHandler(
	auth ports.AppAuthenticator,
	webhookDispatcher *application.WebhookDispatcher,
	logger zerolog.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Get webhook topic from header
		topic := r.Header.Get("X-Shopify-Topic")
		if topic == "" {
			logger.Warn().Msg("Missing X-Shopify-Topic header")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing X-Shopify-Topic header"})
			return
		}

		// the verifier restores the body after hashing it
		if !auth.VerifyWebhook(r) {
			logger.Warn().Str("topic", topic).Msg("Webhook signature verification failed")
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid signature"})
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to read webhook payload")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Failed to read request body"})
			return
		}
		defer r.Body.Close()

		event := &domain.WebhookEvent{
			Topic:    topic,
			Shop:     r.Header.Get("X-Shopify-Shop-Domain"),
			Payload:  payload,
			Verified: true,
		}

		if err := webhookDispatcher.Dispatch(r.Context(), event); err != nil {
			logger.Error().
				Err(err).
				Str("topic", topic).
				Str("shop", event.Shop).
				Msg("Failed to dispatch webhook event")

			// Return 500 to trigger Shopify retry
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to process webhook event"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"received": "true"})
	}
}
