package api

import (
	"net/http"

	"merchant-review-shopify-layer/internal/application"
	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

type reviewResponse struct {
	Review *domain.ReviewSummary `json:"review"`
}

// reviewHandler serves GET /review?shop=&productId=
func reviewHandler(reviews *application.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		review, err := reviews.Get(r.Context(), query.Get("shop"), query.Get("productId"))
		if err != nil {
			writeError(w, r, err, http.StatusUnauthorized)
			return
		}

		writeJSON(w, http.StatusOK, reviewResponse{Review: review})
	}
}

// proxyReviewHandler serves the storefront app proxy. When an authenticator is configured the
// proxy signature must be valid.
func proxyReviewHandler(reviews *application.ReviewService, auth ports.AppAuthenticator, logger zerolog.Logger) http.HandlerFunc {
	read := reviewHandler(reviews)
	return func(w http.ResponseWriter, r *http.Request) {
		if auth != nil && !auth.VerifyProxyRequest(r.URL) {
			logger.Warn().Str("shop", r.URL.Query().Get("shop")).Msg("App proxy signature verification failed")
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid signature"})
			return
		}
		read(w, r)
	}
}
