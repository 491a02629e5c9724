package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"
)

var ErrMockStore = errors.New("mock store error")

// memorySessions holds one offline token per shop
type memorySessions struct {
	tokens map[string]string
}

func (m *memorySessions) FindByShop(ctx context.Context, shop string) (*domain.Session, error) {
	token, ok := m.tokens[shop]
	if !ok {
		return nil, nil
	}
	return &domain.Session{ID: domain.OfflineSessionID(shop), Shop: shop, AccessToken: token}, nil
}

func (m *memorySessions) Save(ctx context.Context, session *domain.Session) error {
	m.tokens[session.Shop] = session.AccessToken
	return nil
}

func (m *memorySessions) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	if _, ok := m.tokens[shop]; !ok {
		return 0, nil
	}
	delete(m.tokens, shop)
	return 1, nil
}

type reviewKey struct {
	shop      string
	productID string
}

// memoryReviews is a map-backed review store
type memoryReviews struct {
	mu      sync.Mutex
	reviews map[reviewKey]*domain.Review
	listErr error
}

func newMemoryReviews() *memoryReviews {
	return &memoryReviews{reviews: make(map[reviewKey]*domain.Review)}
}

func (m *memoryReviews) ListByShop(ctx context.Context, shop string) ([]*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.Review
	for k, r := range m.reviews {
		if k.shop == shop {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryReviews) Get(ctx context.Context, shop, productID string) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reviews[reviewKey{shop, productID}], nil
}

func (m *memoryReviews) Upsert(ctx context.Context, shop, productID, snippet string) (*domain.Review, error) {
	if err := domain.ValidateReviewInput(shop, productID, snippet); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	key := reviewKey{shop, productID}
	if r, ok := m.reviews[key]; ok {
		r.Snippet = snippet
		r.UpdatedAt = now
		return r, nil
	}
	r := &domain.Review{ID: "1", Shop: shop, ProductID: productID, Snippet: snippet, CreatedAt: now, UpdatedAt: now}
	m.reviews[key] = r
	return r, nil
}

func (m *memoryReviews) Delete(ctx context.Context, shop, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reviews, reviewKey{shop, productID})
	return nil
}

func (m *memoryReviews) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.reviews {
		if k.shop == shop {
			delete(m.reviews, k)
			n++
		}
	}
	return n, nil
}

// stubProducts answers with fixed results
type stubProducts struct {
	page      *domain.ProductPage
	listErr   error
	result    *ports.PriceUpdateResult
	updateErr error
	calls     int
}

func (s *stubProducts) ListProducts(ctx context.Context, shop, accessToken string, page domain.PageRequest) (*domain.ProductPage, error) {
	s.calls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.page, nil
}

func (s *stubProducts) UpdateVariantPrice(ctx context.Context, shop, accessToken, productID, variantID string, price json.RawMessage) (*ports.PriceUpdateResult, error) {
	s.calls++
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.result, nil
}

// memoryStates is an in-process OAuth state store
type memoryStates struct {
	states map[string]string
}

func (m *memoryStates) Put(ctx context.Context, state, shop string) error {
	m.states[state] = shop
	return nil
}

func (m *memoryStates) Consume(ctx context.Context, state string) (string, bool, error) {
	shop, ok := m.states[state]
	delete(m.states, state)
	return shop, ok, nil
}

// proxyAuth accepts or rejects every signature
type proxyAuth struct {
	valid bool
}

func (a proxyAuth) AuthorizeURL(shop, state string) (string, error) {
	return "", nil
}

func (a proxyAuth) ExchangeToken(ctx context.Context, shop, code string) (string, error) {
	return "", nil
}

func (a proxyAuth) VerifyCallback(u *url.URL) (bool, error) {
	return a.valid, nil
}

func (a proxyAuth) VerifyProxyRequest(u *url.URL) bool {
	return a.valid
}

func (a proxyAuth) VerifyWebhook(r *http.Request) bool {
	return a.valid
}

func (a proxyAuth) Scopes() string {
	return ""
}
