package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

func TestDecodeMutationRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantAction string
		wantErr    bool
		check      func(t *testing.T, req *MutationRequest)
	}{
		{
			name:       "inferred review",
			body:       `{"shop":"s","productId":"p","reviewSnippet":"Great"}`,
			wantAction: ActionReview,
			check: func(t *testing.T, req *MutationRequest) {
				if req.Review.Snippet != "Great" || req.Review.Shop != "s" || req.Review.ProductID != "p" {
					t.Errorf("review = %+v", req.Review)
				}
			},
		},
		{
			name:       "inferred price",
			body:       `{"shop":"s","productId":"p","variantId":"v","price":"19.99"}`,
			wantAction: ActionPrice,
			check: func(t *testing.T, req *MutationRequest) {
				if string(req.Price.Price) != `"19.99"` || req.Price.VariantID != "v" {
					t.Errorf("price = %+v", req.Price)
				}
			},
		},
		{
			name:       "non-string snippet falls back to price",
			body:       `{"shop":"s","productId":"p","reviewSnippet":5}`,
			wantAction: ActionPrice,
		},
		{
			name:       "numeric zero price keeps its raw value",
			body:       `{"shop":"s","productId":"p","variantId":"v","price":0}`,
			wantAction: ActionPrice,
			check: func(t *testing.T, req *MutationRequest) {
				if string(req.Price.Price) != "0" {
					t.Errorf("price = %s", req.Price.Price)
				}
			},
		},
		{
			name:       "explicit price action wins over snippet",
			body:       `{"action":"price","shop":"s","productId":"p","variantId":"v","price":1,"reviewSnippet":"x"}`,
			wantAction: ActionPrice,
		},
		{
			name:       "explicit review action",
			body:       `{"action":"review","shop":"s","productId":"p","reviewSnippet":"x"}`,
			wantAction: ActionReview,
		},
		{
			name:    "unknown action",
			body:    `{"action":"delete","shop":"s"}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			body:    `{"shop":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := DecodeMutationRequest([]byte(tt.body))
			if tt.wantErr {
				var ve *domain.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("err = %v, want ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Action != tt.wantAction {
				t.Errorf("action = %q, want %q", req.Action, tt.wantAction)
			}
			if (req.Review != nil) != (tt.wantAction == ActionReview) || (req.Price != nil) != (tt.wantAction == ActionPrice) {
				t.Errorf("variant mismatch: review=%v price=%v", req.Review, req.Price)
			}
			if tt.check != nil {
				tt.check(t, req)
			}
		})
	}
}

func newMutations(products *MockProductClient, reviews *MockReviewRepository) *MutationService {
	creds := NewCredentialsService(sessionsWithToken(map[string]string{testShop: "shpat_test"}), zerolog.Nop())
	return NewMutationService(creds, products, reviews, zerolog.Nop())
}

func TestMutationServiceUpsertReview(t *testing.T) {
	var stored []string
	reviews := &MockReviewRepository{
		UpsertFunc: func(ctx context.Context, shop, productID, snippet string) (*domain.Review, error) {
			stored = append(stored, snippet)
			return &domain.Review{ID: "1", Shop: shop, ProductID: productID, Snippet: snippet}, nil
		},
	}
	svc := newMutations(&MockProductClient{}, reviews)

	review, err := svc.UpsertReview(context.Background(), ReviewUpsertRequest{Shop: testShop, ProductID: "p1", Snippet: "Great"})
	if err != nil {
		t.Fatal(err)
	}
	if review.Snippet != "Great" || review.ProductID != "p1" {
		t.Errorf("review = %+v", review)
	}

	invalid := []ReviewUpsertRequest{
		{ProductID: "p1", Snippet: "x"},
		{Shop: testShop, Snippet: "x"},
		{Shop: testShop, ProductID: "p1", Snippet: "   "},
	}
	for _, req := range invalid {
		_, err := svc.UpsertReview(context.Background(), req)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("UpsertReview(%+v) err = %v, want ValidationError", req, err)
		}
	}
	if len(stored) != 1 {
		t.Errorf("store written %d times, want 1", len(stored))
	}
}

func TestMutationServiceReviewDoesNotNeedCredential(t *testing.T) {
	svc := newMutations(&MockProductClient{}, &MockReviewRepository{})
	if _, err := svc.UpsertReview(context.Background(), ReviewUpsertRequest{Shop: "no-token.myshopify.com", ProductID: "p", Snippet: "ok"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMutationServiceUpdatePrice(t *testing.T) {
	var gotPrice json.RawMessage
	var gotToken string
	products := &MockProductClient{
		UpdateVariantPriceFunc: func(ctx context.Context, shop, accessToken, productID, variantID string, price json.RawMessage) (*ports.PriceUpdateResult, error) {
			gotPrice = price
			gotToken = accessToken
			return &ports.PriceUpdateResult{
				Product:  json.RawMessage(`{"id":"` + productID + `"}`),
				Variants: json.RawMessage(`[{"id":"` + variantID + `","price":"19.99"}]`),
			}, nil
		},
	}
	svc := newMutations(products, &MockReviewRepository{})

	result, err := svc.UpdatePrice(context.Background(), PriceUpdateRequest{
		Shop: testShop, ProductID: "gid://Product/1", VariantID: "gid://Variant/1", Price: json.RawMessage(`"19.99"`),
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotToken != "shpat_test" || string(gotPrice) != `"19.99"` {
		t.Errorf("token = %q, price = %s", gotToken, gotPrice)
	}
	if string(result.Product) != `{"id":"gid://Product/1"}` {
		t.Errorf("product = %s", result.Product)
	}
}

func TestMutationServiceUpdatePriceErrors(t *testing.T) {
	userErrors := &domain.UpstreamError{
		Operation:  "productVariantsBulkUpdate",
		Errors:     json.RawMessage(`[{"field":["price"],"message":"Price must be positive"}]`),
		UserFacing: true,
	}

	tests := []struct {
		name     string
		req      PriceUpdateRequest
		products *MockProductClient
		check    func(error) bool
	}{
		{
			name:     "missing price key",
			req:      PriceUpdateRequest{Shop: testShop, ProductID: "p", VariantID: "v"},
			products: &MockProductClient{},
			check: func(err error) bool {
				var ve *domain.ValidationError
				return errors.As(err, &ve)
			},
		},
		{
			name:     "missing variant",
			req:      PriceUpdateRequest{Shop: testShop, ProductID: "p", Price: json.RawMessage("1")},
			products: &MockProductClient{},
			check: func(err error) bool {
				var ve *domain.ValidationError
				return errors.As(err, &ve)
			},
		},
		{
			name:     "no credential",
			req:      PriceUpdateRequest{Shop: "none.myshopify.com", ProductID: "p", VariantID: "v", Price: json.RawMessage("1")},
			products: &MockProductClient{},
			check:    func(err error) bool { return errors.Is(err, domain.ErrNoCredential) },
		},
		{
			name: "user errors",
			req:  PriceUpdateRequest{Shop: testShop, ProductID: "p", VariantID: "v", Price: json.RawMessage("-1")},
			products: &MockProductClient{
				UpdateVariantPriceFunc: func(ctx context.Context, shop, accessToken, productID, variantID string, price json.RawMessage) (*ports.PriceUpdateResult, error) {
					return nil, userErrors
				},
			},
			check: func(err error) bool {
				var ue *domain.UpstreamError
				return errors.As(err, &ue) && ue.UserFacing
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newMutations(tt.products, &MockReviewRepository{}).UpdatePrice(context.Background(), tt.req)
			if err == nil || !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMutationServiceZeroPriceAccepted(t *testing.T) {
	products := &MockProductClient{}
	svc := newMutations(products, &MockReviewRepository{})
	_, err := svc.UpdatePrice(context.Background(), PriceUpdateRequest{
		Shop: testShop, ProductID: "p", VariantID: "v", Price: json.RawMessage("0"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products.UpdateCalls != 1 {
		t.Errorf("upstream called %d times, want 1", products.UpdateCalls)
	}
}
