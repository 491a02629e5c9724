package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// Mutation actions accepted by POST /mutate
const (
	ActionReview = "review"
	ActionPrice  = "price"
)

// ReviewUpsertRequest attaches or replaces the review snippet of a product
type ReviewUpsertRequest struct {
	Shop      string
	ProductID string
	Snippet   string
}

// PriceUpdateRequest changes the price of one variant. Price is the JSON value sent by the
// caller and is forwarded as is.
type PriceUpdateRequest struct {
	Shop      string
	ProductID string
	VariantID string
	Price     json.RawMessage
}

// MutationRequest is a decoded mutation body. Exactly one of Review and Price is set, matching Action.
type MutationRequest struct {
	Action string
	Review *ReviewUpsertRequest
	Price  *PriceUpdateRequest
}

type mutationPayload struct {
	Action        *string         `json:"action"`
	Shop          string          `json:"shop"`
	ProductID     string          `json:"productId"`
	VariantID     string          `json:"variantId"`
	Price         json.RawMessage `json:"price"`
	ReviewSnippet json.RawMessage `json:"reviewSnippet"`
}

// DecodeMutationRequest parses a mutation body. An explicit action must be "review" or "price";
// without one, a string reviewSnippet selects the review action and anything else the price action.
func DecodeMutationRequest(body []byte) (*MutationRequest, error) {
	var payload mutationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &domain.ValidationError{Message: "Invalid JSON body"}
	}

	snippet, snippetIsString := decodeString(payload.ReviewSnippet)

	action := ActionPrice
	if payload.Action != nil {
		action = *payload.Action
	} else if snippetIsString {
		action = ActionReview
	}

	switch action {
	case ActionReview:
		return &MutationRequest{
			Action: ActionReview,
			Review: &ReviewUpsertRequest{
				Shop:      payload.Shop,
				ProductID: payload.ProductID,
				Snippet:   snippet,
			},
		}, nil
	case ActionPrice:
		return &MutationRequest{
			Action: ActionPrice,
			Price: &PriceUpdateRequest{
				Shop:      payload.Shop,
				ProductID: payload.ProductID,
				VariantID: payload.VariantID,
				Price:     payload.Price,
			},
		}, nil
	default:
		return nil, &domain.ValidationError{Message: fmt.Sprintf("Unknown action %q: expected %q or %q", action, ActionReview, ActionPrice)}
	}
}

// decodeString reports whether raw is a JSON string and returns its value
func decodeString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// MutationService applies review upserts and variant price updates
type MutationService struct {
	credentials *CredentialsService
	products    ports.ProductClient
	reviews     ports.ReviewRepository
	logger      zerolog.Logger
}

// NewMutationService creates a new mutation service
func NewMutationService(
	credentials *CredentialsService,
	products ports.ProductClient,
	reviews ports.ReviewRepository,
	logger zerolog.Logger,
) *MutationService {
	return &MutationService{
		credentials: credentials,
		products:    products,
		reviews:     reviews,
		logger:      logger,
	}
}

// UpsertReview stores the snippet for the product, replacing any previous one
func (s *MutationService) UpsertReview(ctx context.Context, req ReviewUpsertRequest) (*domain.Review, error) {
	if req.Shop == "" || req.ProductID == "" {
		return nil, &domain.ValidationError{Message: "Missing required fields: 'shop', 'productId', or 'reviewSnippet'"}
	}
	if err := domain.ValidateReviewInput(req.Shop, req.ProductID, req.Snippet); err != nil {
		return nil, err
	}

	review, err := s.reviews.Upsert(ctx, req.Shop, req.ProductID, req.Snippet)
	if err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.logger.Info().
		Str("shop", req.Shop).
		Str("productId", req.ProductID).
		Msg("Review saved")

	return review, nil
}

// UpdatePrice sets the price of one variant through the Admin API using the shop's stored token
func (s *MutationService) UpdatePrice(ctx context.Context, req PriceUpdateRequest) (*ports.PriceUpdateResult, error) {
	if req.Shop == "" || req.VariantID == "" || req.ProductID == "" || len(req.Price) == 0 {
		return nil, &domain.ValidationError{Message: "Missing required fields: 'shop', 'variantId', 'productId', or 'price'"}
	}

	token, err := s.credentials.Resolve(ctx, req.Shop)
	if err != nil {
		return nil, err
	}

	result, err := s.products.UpdateVariantPrice(ctx, req.Shop, token, req.ProductID, req.VariantID, req.Price)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("shop", req.Shop).
		Str("productId", req.ProductID).
		Str("variantId", req.VariantID).
		RawJSON("price", req.Price).
		Msg("Variant price updated")

	return result, nil
}
