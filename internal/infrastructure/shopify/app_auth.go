package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

type appAuthenticator struct {
	app goshopify.App
}

// NewAppAuthenticator wraps the app credentials used for OAuth, app proxy signatures and webhook HMACs
func NewAppAuthenticator(apiKey, apiSecret, redirectURL, scopes string) ports.AppAuthenticator {
	return &appAuthenticator{
		app: goshopify.App{
			ApiKey:      apiKey,
			ApiSecret:   apiSecret,
			RedirectUrl: redirectURL,
			Scope:       scopes,
		},
	}
}

func (a *appAuthenticator) AuthorizeURL(shop, state string) (string, error) {
	authURL, err := a.app.AuthorizeUrl(domain.NormalizeShopDomain(shop), state)
	if err != nil {
		return "", fmt.Errorf("failed to build authorize url: %w", err)
	}
	return authURL, nil
}

func (a *appAuthenticator) ExchangeToken(ctx context.Context, shop, code string) (string, error) {
	token, err := a.app.GetAccessToken(ctx, domain.NormalizeShopDomain(shop), code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

func (a *appAuthenticator) VerifyCallback(u *url.URL) (bool, error) {
	return a.app.VerifyAuthorizationURL(u)
}

// VerifyProxyRequest checks the signature parameter Shopify appends to app proxy requests
func (a *appAuthenticator) VerifyProxyRequest(u *url.URL) bool {
	return a.app.VerifySignature(u)
}

func (a *appAuthenticator) VerifyWebhook(r *http.Request) bool {
	return a.app.VerifyWebhookRequest(r)
}

func (a *appAuthenticator) Scopes() string {
	return a.app.Scope
}
