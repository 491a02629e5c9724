package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/infrastructure/metrics"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

const (
	outcomeOK        = "ok"
	outcomeUserError = "user_error"
	outcomeError     = "error"
)

// ClientConfig configures the Admin GraphQL client
type ClientConfig struct {
	APIVersion string
	Timeout    time.Duration
	// Endpoint replaces https://<shop>/admin/api/<version>/graphql.json when set
	Endpoint string
}

// Client talks to the Shopify Admin GraphQL API on behalf of any installed shop.
// It holds no per-shop state; the access token is supplied on every call.
type Client struct {
	apiVersion string
	endpoint   string
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewClient creates a new Admin GraphQL client
func NewClient(cfg ClientConfig, m *metrics.Metrics, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiVersion: cfg.APIVersion,
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
		logger:     logger,
	}
}

var _ ports.ProductClient = (*Client)(nil)

// graphQLRequest represents a GraphQL request
type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// graphQLResponse keeps data and errors undecoded so callers can surface them verbatim
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

func (c *Client) graphQLURL(shop string) string {
	if c.endpoint != "" {
		return c.endpoint
	}
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", domain.NormalizeShopDomain(shop), c.apiVersion)
}

// execute posts a document and returns the decoded envelope. Transport failures, non-2xx
// statuses and undecodable bodies are returned as *domain.UpstreamError.
func (c *Client) execute(ctx context.Context, shop, accessToken string, doc document, variables map[string]interface{}) (*graphQLResponse, error) {
	payload, err := json.Marshal(graphQLRequest{
		Query:         doc.source,
		OperationName: doc.operation,
		Variables:     variables,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphQLURL(shop), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Operation: doc.operation, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Operation: doc.operation, Status: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Operation: doc.operation,
			Status:    resp.StatusCode,
			Body:      string(body),
			Message:   fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &domain.UpstreamError{
			Operation: doc.operation,
			Status:    resp.StatusCode,
			Body:      string(body),
			Message:   "malformed GraphQL response",
			Err:       err,
		}
	}

	return &envelope, nil
}

// ListProducts fetches one page of products positioned by the page request
func (c *Client) ListProducts(ctx context.Context, shop, accessToken string, page domain.PageRequest) (*domain.ProductPage, error) {
	started := time.Now()
	resp, err := c.execute(ctx, shop, accessToken, productsDocument, pageVariables(page))
	if err != nil {
		c.observe(productsDocument, outcomeError, started)
		return nil, err
	}

	var result struct {
		Products *struct {
			PageInfo domain.PageInfo      `json:"pageInfo"`
			Edges    []domain.ProductEdge `json:"edges"`
		} `json:"products"`
	}
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			c.observe(productsDocument, outcomeError, started)
			return nil, &domain.UpstreamError{
				Operation: productsDocument.operation,
				Status:    http.StatusOK,
				Body:      string(resp.Data),
				Message:   "malformed products payload",
				Err:       err,
			}
		}
	}

	if result.Products == nil {
		c.observe(productsDocument, outcomeError, started)
		msg := "Failed to fetch products from Shopify"
		if first := firstErrorMessage(resp.Errors); first != "" {
			msg += ": " + first
		}
		return nil, &domain.UpstreamError{
			Operation: productsDocument.operation,
			Status:    http.StatusOK,
			Message:   msg,
			Errors:    resp.Errors,
		}
	}

	if hasErrors(resp.Errors) {
		c.logger.Warn().
			Str("shop", shop).
			RawJSON("errors", resp.Errors).
			Msg("Products query returned partial errors")
	}

	c.observe(productsDocument, outcomeOK, started)
	c.logger.Debug().
		Str("shop", shop).
		Str("direction", page.Direction.String()).
		Int("count", len(result.Products.Edges)).
		Msg("Fetched products page")

	return &domain.ProductPage{
		Edges:    result.Products.Edges,
		PageInfo: result.Products.PageInfo,
	}, nil
}

// pageVariables maps a page request to the first/last/after/before variables
func pageVariables(page domain.PageRequest) map[string]interface{} {
	switch page.Direction {
	case domain.DirectionForward:
		return map[string]interface{}{"first": page.PageSize, "after": page.Cursor}
	case domain.DirectionBackward:
		return map[string]interface{}{"last": page.PageSize, "before": page.Cursor}
	default:
		return map[string]interface{}{"first": page.PageSize}
	}
}

// UpdateVariantPrice sends a bulk update with a single variant entry
func (c *Client) UpdateVariantPrice(ctx context.Context, shop, accessToken, productID, variantID string, price json.RawMessage) (*ports.PriceUpdateResult, error) {
	started := time.Now()
	variables := map[string]interface{}{
		"productId": productID,
		"variants": []map[string]interface{}{
			{"id": variantID, "price": price},
		},
	}

	resp, err := c.execute(ctx, shop, accessToken, priceUpdateDocument, variables)
	if err != nil {
		c.observe(priceUpdateDocument, outcomeError, started)
		return nil, err
	}

	if hasErrors(resp.Errors) {
		c.observe(priceUpdateDocument, outcomeUserError, started)
		return nil, &domain.UpstreamError{
			Operation:  priceUpdateDocument.operation,
			Status:     http.StatusOK,
			Message:    firstErrorMessage(resp.Errors),
			Errors:     resp.Errors,
			UserFacing: true,
		}
	}

	var result struct {
		ProductVariantsBulkUpdate *struct {
			Product         json.RawMessage `json:"product"`
			ProductVariants json.RawMessage `json:"productVariants"`
			UserErrors      json.RawMessage `json:"userErrors"`
		} `json:"productVariantsBulkUpdate"`
	}
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			c.observe(priceUpdateDocument, outcomeError, started)
			return nil, &domain.UpstreamError{
				Operation: priceUpdateDocument.operation,
				Status:    http.StatusOK,
				Body:      string(resp.Data),
				Message:   "malformed mutation payload",
				Err:       err,
			}
		}
	}

	payload := result.ProductVariantsBulkUpdate
	if payload == nil {
		c.observe(priceUpdateDocument, outcomeError, started)
		return nil, &domain.UpstreamError{
			Operation: priceUpdateDocument.operation,
			Status:    http.StatusOK,
			Message:   "missing productVariantsBulkUpdate payload",
		}
	}

	if hasErrors(payload.UserErrors) {
		c.observe(priceUpdateDocument, outcomeUserError, started)
		c.logger.Info().
			Str("shop", shop).
			Str("productId", productID).
			Str("variantId", variantID).
			RawJSON("userErrors", payload.UserErrors).
			Msg("Variant price update rejected")
		return nil, &domain.UpstreamError{
			Operation:  priceUpdateDocument.operation,
			Status:     http.StatusOK,
			Message:    firstErrorMessage(payload.UserErrors),
			Errors:     payload.UserErrors,
			UserFacing: true,
		}
	}

	c.observe(priceUpdateDocument, outcomeOK, started)
	return &ports.PriceUpdateResult{
		Product:  payload.Product,
		Variants: payload.ProductVariants,
	}, nil
}

func (c *Client) observe(doc document, outcome string, started time.Time) {
	c.metrics.ObserveUpstream(doc.operation, outcome, time.Since(started))
}

// hasErrors reports whether a raw error list holds at least one entry
func hasErrors(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		// not a list; treat any non-null value as an error payload
		return string(bytes.TrimSpace(raw)) != "null"
	}
	return len(list) > 0
}

// firstErrorMessage returns the message of the first entry of an error list
func firstErrorMessage(raw json.RawMessage) string {
	var list []graphQLError
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		return ""
	}
	return list[0].Message
}
