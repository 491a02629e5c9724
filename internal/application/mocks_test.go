package application

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"
)

// Common test errors
var (
	ErrMockStore    = errors.New("mock store error")
	ErrMockUpstream = errors.New("mock upstream error")
)

// MockSessionRepository implements ports.SessionRepository for testing
type MockSessionRepository struct {
	FindByShopFunc   func(ctx context.Context, shop string) (*domain.Session, error)
	SaveFunc         func(ctx context.Context, session *domain.Session) error
	DeleteByShopFunc func(ctx context.Context, shop string) (int64, error)
}

func (m *MockSessionRepository) FindByShop(ctx context.Context, shop string) (*domain.Session, error) {
	if m.FindByShopFunc != nil {
		return m.FindByShopFunc(ctx, shop)
	}
	return nil, nil
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	if m.DeleteByShopFunc != nil {
		return m.DeleteByShopFunc(ctx, shop)
	}
	return 0, nil
}

// MockReviewRepository implements ports.ReviewRepository for testing
type MockReviewRepository struct {
	ListByShopFunc   func(ctx context.Context, shop string) ([]*domain.Review, error)
	GetFunc          func(ctx context.Context, shop, productID string) (*domain.Review, error)
	UpsertFunc       func(ctx context.Context, shop, productID, snippet string) (*domain.Review, error)
	DeleteFunc       func(ctx context.Context, shop, productID string) error
	DeleteByShopFunc func(ctx context.Context, shop string) (int64, error)
}

func (m *MockReviewRepository) ListByShop(ctx context.Context, shop string) ([]*domain.Review, error) {
	if m.ListByShopFunc != nil {
		return m.ListByShopFunc(ctx, shop)
	}
	return nil, nil
}

func (m *MockReviewRepository) Get(ctx context.Context, shop, productID string) (*domain.Review, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, shop, productID)
	}
	return nil, nil
}

func (m *MockReviewRepository) Upsert(ctx context.Context, shop, productID, snippet string) (*domain.Review, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, shop, productID, snippet)
	}
	return &domain.Review{Shop: shop, ProductID: productID, Snippet: snippet}, nil
}

func (m *MockReviewRepository) Delete(ctx context.Context, shop, productID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, shop, productID)
	}
	return nil
}

func (m *MockReviewRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	if m.DeleteByShopFunc != nil {
		return m.DeleteByShopFunc(ctx, shop)
	}
	return 0, nil
}

// MockProductClient implements ports.ProductClient for testing
type MockProductClient struct {
	ListProductsFunc       func(ctx context.Context, shop, accessToken string, page domain.PageRequest) (*domain.ProductPage, error)
	UpdateVariantPriceFunc func(ctx context.Context, shop, accessToken, productID, variantID string, price json.RawMessage) (*ports.PriceUpdateResult, error)
	ListCalls              int
	UpdateCalls            int
}

func (m *MockProductClient) ListProducts(ctx context.Context, shop, accessToken string, page domain.PageRequest) (*domain.ProductPage, error) {
	m.ListCalls++
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, shop, accessToken, page)
	}
	return &domain.ProductPage{}, nil
}

func (m *MockProductClient) UpdateVariantPrice(ctx context.Context, shop, accessToken, productID, variantID string, price json.RawMessage) (*ports.PriceUpdateResult, error) {
	m.UpdateCalls++
	if m.UpdateVariantPriceFunc != nil {
		return m.UpdateVariantPriceFunc(ctx, shop, accessToken, productID, variantID, price)
	}
	return &ports.PriceUpdateResult{}, nil
}

// MockStateStore keeps OAuth states in a map
type MockStateStore struct {
	States map[string]string
	PutErr error
}

func NewMockStateStore() *MockStateStore {
	return &MockStateStore{States: make(map[string]string)}
}

func (m *MockStateStore) Put(ctx context.Context, state, shop string) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.States[state] = shop
	return nil
}

func (m *MockStateStore) Consume(ctx context.Context, state string) (string, bool, error) {
	shop, ok := m.States[state]
	delete(m.States, state)
	return shop, ok, nil
}

// MockAppAuthenticator implements ports.AppAuthenticator for testing
type MockAppAuthenticator struct {
	AuthorizeURLFunc  func(shop, state string) (string, error)
	ExchangeTokenFunc func(ctx context.Context, shop, code string) (string, error)
	CallbackValid     bool
	ProxyValid        bool
	WebhookValid      bool
	Scope             string
}

func (m *MockAppAuthenticator) AuthorizeURL(shop, state string) (string, error) {
	if m.AuthorizeURLFunc != nil {
		return m.AuthorizeURLFunc(shop, state)
	}
	return "https://" + shop + "/admin/oauth/authorize?state=" + url.QueryEscape(state), nil
}

func (m *MockAppAuthenticator) ExchangeToken(ctx context.Context, shop, code string) (string, error) {
	if m.ExchangeTokenFunc != nil {
		return m.ExchangeTokenFunc(ctx, shop, code)
	}
	return "shpat_" + code, nil
}

func (m *MockAppAuthenticator) VerifyCallback(u *url.URL) (bool, error) {
	return m.CallbackValid, nil
}

func (m *MockAppAuthenticator) VerifyProxyRequest(u *url.URL) bool {
	return m.ProxyValid
}

func (m *MockAppAuthenticator) VerifyWebhook(r *http.Request) bool {
	return m.WebhookValid
}

func (m *MockAppAuthenticator) Scopes() string {
	return m.Scope
}

// sessionsWithToken returns a session repository holding one offline token per listed shop
func sessionsWithToken(tokens map[string]string) *MockSessionRepository {
	return &MockSessionRepository{
		FindByShopFunc: func(ctx context.Context, shop string) (*domain.Session, error) {
			token, ok := tokens[shop]
			if !ok {
				return nil, nil
			}
			return &domain.Session{ID: domain.OfflineSessionID(shop), Shop: shop, AccessToken: token}, nil
		},
	}
}
