package domain

import (
	"strconv"
	"strings"
)

// Webhook topics handled by the service
const (
	TopicAppUninstalled       = "app/uninstalled"
	TopicProductsDelete       = "products/delete"
	TopicCustomersDataRequest = "customers/data_request"
	TopicCustomersRedact      = "customers/redact"
	TopicShopRedact           = "shop/redact"
)

// WebhookEvent is a verified Shopify webhook delivery
type WebhookEvent struct {
	Topic    string `json:"topic"`
	Shop     string `json:"shop"`
	Payload  []byte `json:"payload"`
	Verified bool   `json:"verified"`
}

const productGIDPrefix = "gid://shopify/Product/"

// ProductGID converts a numeric REST product id into the Admin GraphQL global id.
// Ids that already carry the gid prefix are returned unchanged.
func ProductGID(id string) string {
	if strings.HasPrefix(id, productGIDPrefix) {
		return id
	}
	return productGIDPrefix + id
}

// ProductGIDFromNumber formats a webhook payload id as a product gid
func ProductGIDFromNumber(id int64) string {
	return productGIDPrefix + strconv.FormatInt(id, 10)
}
