package api

import (
	"fmt"
	"net/http"

	"merchant-review-shopify-layer/internal/application"

	"github.com/rs/zerolog"
)

// oauthInitHandler initiates the OAuth flow
func oauthInitHandler(shopifyService *application.ShopifyService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authURL, err := shopifyService.GenerateAuthURL(r.Context(), r.URL.Query().Get("shop"))
		if err != nil {
			writeError(w, r, err, http.StatusUnauthorized)
			return
		}

		logger.Debug().Str("shop", r.URL.Query().Get("shop")).Msg("Redirecting to Shopify authorization")
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// oauthCallbackHandler completes the install and sends the merchant to the embedded app
func oauthCallbackHandler(shopifyService *application.ShopifyService, apiKey string, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := shopifyService.CompleteInstall(r.Context(), r.URL)
		if err != nil {
			writeError(w, r, err, http.StatusUnauthorized)
			return
		}

		redirectURL := fmt.Sprintf("https://%s/admin/apps/%s", session.Shop, apiKey)

		logger.Info().
			Str("shop", session.Shop).
			Str("returnURL", redirectURL).
			Msg("Redirecting to embedded app after successful OAuth")

		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}
