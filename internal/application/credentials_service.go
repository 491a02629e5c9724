package application

import (
	"context"
	"fmt"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// CredentialsService resolves the Admin API access token of a shop.
// Tokens are read from the session store on every call and never cached.
type CredentialsService struct {
	sessions ports.SessionRepository
	logger   zerolog.Logger
}

// NewCredentialsService creates a new credentials service
func NewCredentialsService(sessions ports.SessionRepository, logger zerolog.Logger) *CredentialsService {
	return &CredentialsService{
		sessions: sessions,
		logger:   logger,
	}
}

// Resolve returns the access token stored for the shop.
// It fails with domain.ErrMissingShop for an empty shop and domain.ErrNoCredential when no session holds a token.
func (s *CredentialsService) Resolve(ctx context.Context, shop string) (string, error) {
	if shop == "" {
		return "", domain.ErrMissingShop
	}

	session, err := s.sessions.FindByShop(ctx, shop)
	if err != nil {
		return "", fmt.Errorf("failed to resolve credential: %w", err)
	}
	if session == nil || session.AccessToken == "" {
		s.logger.Debug().Str("shop", shop).Msg("No access token stored for shop")
		return "", domain.ErrNoCredential
	}

	return session.AccessToken, nil
}
