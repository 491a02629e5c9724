package application

import (
	"context"
	"fmt"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// DefaultPageSize is the number of products per page when none is configured
const DefaultPageSize = 10

// CatalogService serves paginated product listings annotated with review snippets
type CatalogService struct {
	credentials *CredentialsService
	products    ports.ProductClient
	reviews     ports.ReviewRepository
	pageSize    int
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	credentials *CredentialsService,
	products ports.ProductClient,
	reviews ports.ReviewRepository,
	pageSize int,
	logger zerolog.Logger,
) *CatalogService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &CatalogService{
		credentials: credentials,
		products:    products,
		reviews:     reviews,
		pageSize:    pageSize,
		logger:      logger,
	}
}

// ProductsPage fetches one page of the shop's products and overlays the stored review snippets.
// after takes precedence over before when both are given.
func (s *CatalogService) ProductsPage(ctx context.Context, shop, after, before string) (*domain.AnnotatedPage, error) {
	if shop == "" {
		return nil, domain.ErrMissingShop
	}

	token, err := s.credentials.Resolve(ctx, shop)
	if err != nil {
		return nil, err
	}

	page, err := s.products.ListProducts(ctx, shop, token, domain.NewPageRequest(after, before, s.pageSize))
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return &domain.AnnotatedPage{
		Products: Annotate(page.Edges, reviews),
		PageInfo: page.PageInfo,
	}, nil
}
