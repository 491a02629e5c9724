package ports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"merchant-review-shopify-layer/internal/domain"
)

// PriceUpdateResult is the payload of a successful variant price update
type PriceUpdateResult struct {
	Product  json.RawMessage `json:"product"`
	Variants json.RawMessage `json:"variants"`
}

// ProductClient defines the Admin GraphQL operations used by this service
type ProductClient interface {
	// ListProducts fetches one page of products with their first variants
	ListProducts(ctx context.Context, shop, accessToken string, page domain.PageRequest) (*domain.ProductPage, error)
	// UpdateVariantPrice changes the price of a single variant. price is forwarded as given.
	UpdateVariantPrice(ctx context.Context, shop, accessToken, productID, variantID string, price json.RawMessage) (*PriceUpdateResult, error)
}

// AppAuthenticator covers the Shopify app credentials checks and the OAuth code exchange
type AppAuthenticator interface {
	AuthorizeURL(shop, state string) (string, error)
	ExchangeToken(ctx context.Context, shop, code string) (string, error)
	VerifyCallback(u *url.URL) (bool, error)
	VerifyProxyRequest(u *url.URL) bool
	VerifyWebhook(r *http.Request) bool
	Scopes() string
}
