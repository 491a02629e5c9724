package application

import (
	"context"
	"fmt"
	"net/url"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ShopifyService manages the app installation lifecycle: the OAuth install that stores a
// shop's offline session and the cleanup when the app is uninstalled
type ShopifyService struct {
	auth     ports.AppAuthenticator
	states   ports.StateStore
	sessions ports.SessionRepository
	logger   zerolog.Logger
}

// NewShopifyService creates a new Shopify application service
func NewShopifyService(
	auth ports.AppAuthenticator,
	states ports.StateStore,
	sessions ports.SessionRepository,
	logger zerolog.Logger,
) *ShopifyService {
	return &ShopifyService{
		auth:     auth,
		states:   states,
		sessions: sessions,
		logger:   logger,
	}
}

// GenerateAuthURL starts an install: it stores a fresh state nonce for the shop and returns
// the Shopify authorization URL to redirect the merchant to
func (s *ShopifyService) GenerateAuthURL(ctx context.Context, shop string) (string, error) {
	if shop == "" {
		return "", domain.ErrMissingShop
	}
	shop = domain.NormalizeShopDomain(shop)
	if !domain.IsValidShopDomain(shop) {
		return "", &domain.ValidationError{Message: "Invalid shop domain"}
	}

	state := uuid.NewString()
	if err := s.states.Put(ctx, state, shop); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	authURL, err := s.auth.AuthorizeURL(shop, state)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to generate auth URL")
		return "", fmt.Errorf("failed to generate auth URL: %w", err)
	}

	s.logger.Info().
		Str("shop", shop).
		Str("scopes", s.auth.Scopes()).
		Msg("Generated OAuth authorization URL")

	return authURL, nil
}

// CompleteInstall verifies an OAuth callback, exchanges the code for an offline access token
// and stores it as the shop's offline session
func (s *ShopifyService) CompleteInstall(ctx context.Context, callback *url.URL) (*domain.Session, error) {
	query := callback.Query()
	shop := query.Get("shop")
	code := query.Get("code")
	state := query.Get("state")

	if shop == "" || code == "" || state == "" {
		return nil, &domain.ValidationError{Message: "Missing required parameters"}
	}
	if !domain.IsValidShopDomain(shop) {
		return nil, &domain.ValidationError{Message: "Invalid shop domain"}
	}

	ok, err := s.auth.VerifyCallback(callback)
	if err != nil || !ok {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("OAuth callback HMAC verification failed")
		return nil, &domain.AuthError{Message: "Invalid HMAC"}
	}

	stateShop, found, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to verify oauth state: %w", err)
	}
	if !found || stateShop != shop {
		s.logger.Warn().Str("shop", shop).Bool("found", found).Msg("OAuth state mismatch")
		return nil, &domain.AuthError{Message: "Invalid session"}
	}

	accessToken, err := s.auth.ExchangeToken(ctx, shop, code)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to exchange token")
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	session := &domain.Session{
		ID:          domain.OfflineSessionID(shop),
		Shop:        shop,
		State:       state,
		IsOnline:    false,
		Scope:       s.auth.Scopes(),
		AccessToken: accessToken,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to save session")
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info().
		Str("shop", shop).
		Str("scopes", session.Scope).
		Msg("OAuth token exchange completed - offline session stored")

	return session, nil
}

// Uninstall removes every stored session of the shop so later calls fail with an auth error
func (s *ShopifyService) Uninstall(ctx context.Context, shop string) (int64, error) {
	if shop == "" {
		return 0, domain.ErrMissingShop
	}
	removed, err := s.sessions.DeleteByShop(ctx, shop)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}
	s.logger.Info().Str("shop", shop).Int64("sessions", removed).Msg("App uninstalled - sessions removed")
	return removed, nil
}
